package email

// Provider delivers email. Delivery is synchronous: a returned error means
// the message was not accepted and the caller decides what to do, there are
// no retries at this level.
type Provider interface {
	Send(msg *Message) error
}
