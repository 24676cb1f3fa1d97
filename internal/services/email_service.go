package services

import (
	"fmt"

	"contacts_backend/internal/config"
	"contacts_backend/internal/email"
)

// EmailService builds and sends the application's emails through a Provider.
type EmailService struct {
	provider email.Provider
	renderer *email.TemplateManager
	baseURL  string
}

func NewEmailService(provider email.Provider, cfg *config.Config) *EmailService {
	return &EmailService{
		provider: provider,
		renderer: email.NewTemplateManager(),
		baseURL:  cfg.BaseURL,
	}
}

// SendVerificationEmail sends the confirmation link embedding token. A
// returned error means delivery failed; the caller surfaces it, nothing is
// retried here.
func (s *EmailService) SendVerificationEmail(to, name, token string) error {
	verifyURL := fmt.Sprintf("%s/api/users/verify/%s", s.baseURL, token)

	html, err := s.renderer.Render("verification", email.TemplateData{
		"Name":      name,
		"VerifyURL": verifyURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}

	return s.provider.Send(&email.Message{
		To:      to,
		Subject: "Confirm your email",
		HTML:    html,
	})
}
