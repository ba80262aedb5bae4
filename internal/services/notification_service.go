package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/madeofpendletonwool/inquiryd/internal/config"
	"github.com/madeofpendletonwool/inquiryd/internal/models"
)

// NotificationService pushes a short summary of each inquiry to ntfy.
type NotificationService struct {
	config config.NtfyConfig
	client *http.Client
}

func NewNotificationService(cfg config.NtfyConfig) *NotificationService {
	return &NotificationService{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type NtfyMessage struct {
	Topic    string       `json:"topic"`
	Message  string       `json:"message"`
	Title    string       `json:"title"`
	Tags     []string     `json:"tags,omitempty"`
	Priority int          `json:"priority,omitempty"`
	Actions  []NtfyAction `json:"actions,omitempty"`
	Click    string       `json:"click,omitempty"`
}

type NtfyAction struct {
	Action string `json:"action"`
	Label  string `json:"label"`
	URL    string `json:"url,omitempty"`
}

var ntfyPriorities = map[models.InquiryPriority]int{
	models.PriorityLow:    2,
	models.PriorityMedium: 3,
	models.PriorityHigh:   4,
	models.PriorityUrgent: 5,
}

func (ns *NotificationService) Enabled() bool {
	return ns != nil && ns.config.Enabled && ns.config.URL != ""
}

// SendInquiryNotification is a no-op when ntfy is disabled.
func (ns *NotificationService) SendInquiryNotification(ctx context.Context, inquiry *models.ContactInquiry) error {
	if !ns.Enabled() {
		return nil
	}

	tags := []string{"envelope", inquiry.ProjectType}
	if inquiry.Priority == models.PriorityUrgent {
		tags = append(tags, "rotating_light")
	}
	if inquiry.Spam.IsSpam {
		tags = append(tags, "warning")
	}

	var body strings.Builder
	fmt.Fprintf(&body, "%s (%s)\n", inquiry.Name, inquiry.Email)
	if inquiry.Company != "" {
		fmt.Fprintf(&body, "Unternehmen: %s\n", inquiry.Company)
	}
	fmt.Fprintf(&body, "Projekt: %s\n", models.Label(models.ProjectTypeLabels, inquiry.ProjectType))
	if inquiry.Budget != "" {
		fmt.Fprintf(&body, "Budget: %s\n", models.Label(models.BudgetLabels, inquiry.Budget))
	}
	fmt.Fprintf(&body, "Lead-Score: %d | Priorität: %s\n", inquiry.LeadScore, models.PriorityLabels[inquiry.Priority])
	if inquiry.Spam.IsSpam {
		fmt.Fprintf(&body, "Möglicher Spam: %s\n", strings.Join(inquiry.Spam.Reasons, "; "))
	}
	fmt.Fprintf(&body, "ID: %s", inquiry.ID)

	msg := NtfyMessage{
		Topic:    ns.config.Topic,
		Title:    fmt.Sprintf("Neue Anfrage: %s", inquiry.Name),
		Message:  body.String(),
		Tags:     tags,
		Priority: ntfyPriorities[inquiry.Priority],
		Actions: []NtfyAction{{
			Action: "view",
			Label:  "Antworten",
			URL:    "mailto:" + inquiry.Email,
		}},
	}
	if msg.Priority == 0 {
		msg.Priority = 3
	}

	return ns.sendNtfyMessage(ctx, msg)
}

func (ns *NotificationService) sendNtfyMessage(ctx context.Context, msg NtfyMessage) error {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal ntfy message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ns.config.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create ntfy request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if ns.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+ns.config.Token)
	}

	resp, err := ns.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ntfy server returned status %d", resp.StatusCode)
	}
	return nil
}
