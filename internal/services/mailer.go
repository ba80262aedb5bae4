package services

import (
	"context"
	"fmt"

	"github.com/madeofpendletonwool/inquiryd/internal/config"
)

// Message is a rendered email ready for a transport.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers a single message and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
	Provider() string
}

// NewMailer builds the transport selected by cfg.Provider.
func NewMailer(cfg config.EmailConfig) (Mailer, error) {
	switch cfg.Provider {
	case config.ProviderMailgun, "":
		return NewMailgunMailer(cfg.From, cfg.Mailgun)
	case config.ProviderResend:
		return NewResendMailer(cfg.From, cfg.Resend), nil
	case config.ProviderSMTP:
		return NewSMTPMailer(cfg.From, cfg.SMTP), nil
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.Provider)
	}
}
