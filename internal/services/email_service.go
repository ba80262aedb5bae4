package services

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nyaruka/phonenumbers"

	"github.com/madeofpendletonwool/inquiryd/internal/config"
	"github.com/madeofpendletonwool/inquiryd/internal/logger"
	"github.com/madeofpendletonwool/inquiryd/internal/metrics"
	"github.com/madeofpendletonwool/inquiryd/internal/models"
	"github.com/madeofpendletonwool/inquiryd/internal/validation"
)

const (
	KindNotification = "notification"
	KindConfirmation = "confirmation"

	ConfirmationSubject = "Ihre Anfrage ist eingegangen - Vielen Dank!"

	defaultPhoneRegion = "DE"
)

// EmailService renders and sends the two emails of an accepted inquiry.
// Sends are best-effort: failures end up in the DispatchResult, never as errors.
type EmailService struct {
	mailer    Mailer
	notifyTo  string
	timeout   time.Duration
	site      config.SiteConfig
	metrics   *metrics.Metrics
	templates *emailTemplates
}

func NewEmailService(cfg *config.Config, mailer Mailer, m *metrics.Metrics) *EmailService {
	timeout := cfg.Email.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &EmailService{
		mailer:    mailer,
		notifyTo:  cfg.Email.NotifyTo,
		timeout:   timeout,
		site:      cfg.Site,
		metrics:   m,
		templates: parseTemplates(),
	}
}

type emailData struct {
	Inquiry          *models.ContactInquiry
	ProjectType      string
	Budget           string
	Timeline         string
	PreferredContact string
	Priority         string
	PriorityColor    string
	Phone            string
	Submitted        string
	Site             config.SiteConfig
	NextSteps        []string
}

func (es *EmailService) newEmailData(inquiry *models.ContactInquiry) emailData {
	data := emailData{
		Inquiry:          inquiry,
		ProjectType:      models.Label(models.ProjectTypeLabels, inquiry.ProjectType),
		Budget:           models.Label(models.BudgetLabels, inquiry.Budget),
		Timeline:         models.Label(models.TimelineLabels, inquiry.Timeline),
		PreferredContact: models.Label(models.ContactMethodLabels, inquiry.PreferredContact),
		Priority:         models.PriorityLabels[inquiry.Priority],
		PriorityColor:    models.PriorityColors[inquiry.Priority],
		Phone:            FormatPhone(inquiry.Phone),
		Submitted:        models.FormatDisplayTime(inquiry.SubmissionDate),
		Site:             es.site,
		NextSteps:        NextSteps,
	}
	if data.Priority == "" {
		data.Priority = string(inquiry.Priority)
	}
	if data.PriorityColor == "" {
		data.PriorityColor = models.PriorityColors[models.PriorityMedium]
	}
	return data
}

// FormatPhone renders a phone number in international format. Numbers
// without a country code are read as German; unparsable input is returned as is.
func FormatPhone(raw string) string {
	if raw == "" {
		return ""
	}
	num, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil || !phonenumbers.IsPossibleNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}

// NotificationMessage renders the operator notification. Replies go to the submitter.
func (es *EmailService) NotificationMessage(inquiry *models.ContactInquiry) (Message, error) {
	data := es.newEmailData(inquiry)

	var html, text bytes.Buffer
	if err := es.templates.notificationHTML.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("failed to render notification html: %w", err)
	}
	if err := es.templates.notificationText.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("failed to render notification text: %w", err)
	}

	return Message{
		To:      es.notifyTo,
		ReplyTo: inquiry.Email,
		Subject: validation.SingleLine(fmt.Sprintf("Neue Projektanfrage: %s von %s", data.ProjectType, inquiry.Name)),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

// ConfirmationMessage renders the receipt sent to the submitter.
func (es *EmailService) ConfirmationMessage(inquiry *models.ContactInquiry) (Message, error) {
	data := es.newEmailData(inquiry)

	var html, text bytes.Buffer
	if err := es.templates.confirmationHTML.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("failed to render confirmation html: %w", err)
	}
	if err := es.templates.confirmationText.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("failed to render confirmation text: %w", err)
	}

	return Message{
		To:      inquiry.Email,
		ReplyTo: es.site.Email,
		Subject: ConfirmationSubject,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

// SendInquiryEmails sends the notification and the confirmation concurrently,
// each bounded by the configured timeout and never retried.
func (es *EmailService) SendInquiryEmails(ctx context.Context, inquiry *models.ContactInquiry) models.DispatchResult {
	var (
		result models.DispatchResult
		wg     sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		result.Notification = es.deliver(ctx, KindNotification, inquiry, es.NotificationMessage)
	}()
	go func() {
		defer wg.Done()
		result.Confirmation = es.deliver(ctx, KindConfirmation, inquiry, es.ConfirmationMessage)
	}()
	wg.Wait()

	return result
}

func (es *EmailService) deliver(ctx context.Context, kind string, inquiry *models.ContactInquiry, render func(*models.ContactInquiry) (Message, error)) models.DeliveryResult {
	log := logger.GetLogger()
	result := models.DeliveryResult{Kind: kind, Provider: es.mailer.Provider()}

	start := time.Now()

	msg, err := render(inquiry)
	if err != nil {
		result.Error = err.Error()
		log.Errorw("Failed to render email", "kind", kind, "inquiry_id", inquiry.ID, "error", err)
		return es.finish(result, start)
	}

	sendCtx, cancel := context.WithTimeout(ctx, es.timeout)
	defer cancel()

	id, err := es.mailer.Send(sendCtx, msg)
	if err != nil {
		result.Error = err.Error()
		log.Warnw("Failed to send email",
			"kind", kind,
			"provider", result.Provider,
			"inquiry_id", inquiry.ID,
			"to", logger.MaskEmail(msg.To),
			"error", err)
		return es.finish(result, start)
	}

	result.Success = true
	result.MessageID = id
	log.Debugw("Email sent", "kind", kind, "provider", result.Provider, "inquiry_id", inquiry.ID, "message_id", id)
	return es.finish(result, start)
}

func (es *EmailService) finish(result models.DeliveryResult, start time.Time) models.DeliveryResult {
	result.Duration = time.Since(start)
	es.metrics.Email(result)
	return result
}
