package app

import "contacts_backend/internal/email"

// MockEmailProvider is used for local development and tests. It records
// every message instead of delivering it.
type MockEmailProvider struct {
	Sent []email.Message
}

func (m *MockEmailProvider) Send(msg *email.Message) error {
	m.Sent = append(m.Sent, *msg)
	return nil
}
