package email

import (
	"fmt"

	"contacts_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPProvider sends mail over SMTP via gomail.
type SMTPProvider struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	return &SMTPProvider{
		host:     cfg.Email.SMTPHost,
		port:     cfg.Email.SMTPPort,
		username: cfg.Email.SMTPUsername,
		password: cfg.Email.SMTPPassword,
		from:     cfg.Email.FromEmail,
		fromName: cfg.Email.FromName,
	}
}

func (p *SMTPProvider) Send(msg *Message) error {
	if p.host == "" {
		return fmt.Errorf("SMTP host is not configured")
	}

	m := gomail.NewMessage()
	if p.fromName != "" {
		m.SetAddressHeader("From", p.from, p.fromName)
	} else {
		m.SetHeader("From", p.from)
	}
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	d := gomail.NewDialer(p.host, p.port, p.username, p.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}
	return nil
}
