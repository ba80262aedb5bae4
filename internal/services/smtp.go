package services

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/madeofpendletonwool/inquiryd/internal/config"
)

// SMTPMailer delivers through a plain SMTP relay. gomail has no context
// support, so the dial runs in a goroutine and Send returns when ctx ends.
type SMTPMailer struct {
	from   string
	dialer *gomail.Dialer
}

func NewSMTPMailer(from string, cfg config.SMTPConfig) *SMTPMailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.SSL
	return &SMTPMailer{from: from, dialer: d}
}

func (m *SMTPMailer) Provider() string { return config.ProviderSMTP }

func (m *SMTPMailer) Send(ctx context.Context, msg Message) (string, error) {
	message := m.buildMessage(msg)

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(message)
	}()

	select {
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("smtp send: %w", err)
		}
		return "", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (m *SMTPMailer) buildMessage(msg Message) *gomail.Message {
	message := gomail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", msg.To)
	message.SetHeader("Subject", msg.Subject)
	if msg.ReplyTo != "" {
		message.SetHeader("Reply-To", msg.ReplyTo)
	}

	switch {
	case msg.Text != "" && msg.HTML != "":
		message.SetBody("text/plain", msg.Text)
		message.AddAlternative("text/html", msg.HTML)
	case msg.HTML != "":
		message.SetBody("text/html", msg.HTML)
	default:
		message.SetBody("text/plain", msg.Text)
	}
	return message
}
