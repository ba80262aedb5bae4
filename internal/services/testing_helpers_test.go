package services

import (
	"context"
	"sync"
	"time"

	"github.com/madeofpendletonwool/inquiryd/internal/config"
	"github.com/madeofpendletonwool/inquiryd/internal/logger"
	"github.com/madeofpendletonwool/inquiryd/internal/models"
)

func init() {
	logger.IsTest = true
}

// fakeMailer records messages and fails for recipients listed in failFor.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []Message
	failFor map[string]error
	block   bool
}

func (f *fakeMailer) Provider() string { return "fake" }

func (f *fakeMailer) Send(ctx context.Context, msg Message) (string, error) {
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err, ok := f.failFor[msg.To]; ok {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return "msg-" + msg.To, nil
}

func (f *fakeMailer) byRecipient(to string) (Message, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.sent {
		if m.To == to {
			return m, true
		}
	}
	return Message{}, false
}

func testConfig() *config.Config {
	return &config.Config{
		Email: config.EmailConfig{
			Provider: config.ProviderMailgun,
			From:     "Kontaktformular <kontakt@example.com>",
			NotifyTo: "owner@example.com",
			Timeout:  time.Second,
		},
		Site: config.SiteConfig{
			OwnerName: "Anna Schmidt",
			Email:     "hallo@example.com",
			Phone:     "+49 30 1234567",
			Website:   "https://example.com",
		},
	}
}

func testInquiry() *models.ContactInquiry {
	return &models.ContactInquiry{
		ContactFormData: models.ContactFormData{
			Name:           "Max Mustermann",
			Email:          "max@test.de",
			Phone:          "030 1234567",
			ProjectType:    models.ProjectStandard,
			Budget:         models.Budget5000To10000,
			Timeline:       models.TimelineOneMonth,
			Message:        "Ich benötige eine neue Website für mein Café mit Online-Reservierung.",
			PrivacyConsent: true,
		},
		ID:             "INQ-1709294400000-abc123def",
		SubmissionDate: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Status:         models.StatusNew,
		Source:         SourceWebsite,
		IPAddress:      "203.0.113.7",
		Priority:       models.PriorityUrgent,
		LeadScore:      88,
		Quality:        models.QualityResult{Score: 40},
	}
}
