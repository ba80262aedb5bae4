package services

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/madeofpendletonwool/inquiryd/internal/config"
)

type ResendMailer struct {
	from   string
	client *resend.Client
}

func NewResendMailer(from string, cfg config.ResendConfig) *ResendMailer {
	return &ResendMailer{from: from, client: resend.NewClient(cfg.APIKey)}
}

func (m *ResendMailer) Provider() string { return config.ProviderResend }

func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resend send: %w", err)
	}
	return sent.Id, nil
}
