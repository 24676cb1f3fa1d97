package email

// Message is one outgoing email.
type Message struct {
	To      string
	Subject string
	HTML    string
}
