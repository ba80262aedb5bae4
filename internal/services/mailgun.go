package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	mailgun "github.com/mailgun/mailgun-go/v5"

	"github.com/madeofpendletonwool/inquiryd/internal/config"
)

// MailgunMailer posts messages to {APIBase}/v3/{Domain}/messages with
// Basic auth api:{APIKey}.
type MailgunMailer struct {
	from   string
	domain string
	mg     mailgun.Mailgun
}

// apiVersionSuffix matches a trailing version segment such as "/v3". The
// client appends the version itself and rejects a base that already has one.
var apiVersionSuffix = regexp.MustCompile(`/v[0-9]+/?$`)

func NewMailgunMailer(from string, cfg config.MailgunConfig) (*MailgunMailer, error) {
	client := mailgun.NewMailgun(cfg.APIKey)
	if cfg.APIBase != "" {
		base := apiVersionSuffix.ReplaceAllString(strings.TrimSpace(cfg.APIBase), "")
		if err := client.SetAPIBase(strings.TrimSuffix(base, "/")); err != nil {
			return nil, fmt.Errorf("mailgun api base: %w", err)
		}
	}
	return &MailgunMailer{from: from, domain: cfg.Domain, mg: client}, nil
}

func (m *MailgunMailer) Provider() string { return config.ProviderMailgun }

func (m *MailgunMailer) Send(ctx context.Context, msg Message) (string, error) {
	message := mailgun.NewMessage(m.domain, m.from, msg.Subject, msg.Text)
	if err := message.AddRecipient(msg.To); err != nil {
		return "", fmt.Errorf("add recipient: %w", err)
	}
	if msg.HTML != "" {
		message.SetHTML(msg.HTML)
	}
	if msg.ReplyTo != "" {
		message.SetReplyTo(msg.ReplyTo)
	}

	resp, err := m.mg.Send(ctx, message)
	if err != nil {
		return "", fmt.Errorf("mailgun send: %w", err)
	}
	return resp.ID, nil
}
