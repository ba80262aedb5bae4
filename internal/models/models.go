package models

import (
	"time"
)

// ContactFormData is the untrusted body of POST /api/contact.
type ContactFormData struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Company          string `json:"company,omitempty"`
	Phone            string `json:"phone,omitempty"`
	ProjectType      string `json:"projectType"`
	Budget           string `json:"budget,omitempty"`
	Timeline         string `json:"timeline,omitempty"`
	Message          string `json:"message"`
	PrivacyConsent   bool   `json:"privacyConsent"`
	MarketingConsent bool   `json:"marketingConsent"`
	PreferredContact string `json:"preferredContact,omitempty"`
}

// ContactInquiry is an accepted submission plus server-computed metadata.
// It only lives for the duration of the request.
type ContactInquiry struct {
	ContactFormData

	ID             string          `json:"id"`
	SubmissionDate time.Time       `json:"submissionDate"`
	Status         InquiryStatus   `json:"status"`
	Source         string          `json:"source"`
	IPAddress      string          `json:"ipAddress"`
	UserAgent      string          `json:"userAgent"`
	Language       string          `json:"language"`
	Priority       InquiryPriority `json:"priority"`
	LeadScore      int             `json:"leadScore"`
	Tags           []string        `json:"tags"`

	Spam    SpamResult    `json:"-"`
	Quality QualityResult `json:"-"`
}

// SpamResult is the advisory verdict of the spam heuristics.
type SpamResult struct {
	IsSpam  bool     `json:"isSpam"`
	Reasons []string `json:"reasons"`
}

// QualityResult scores how substantial a message is (0-100).
type QualityResult struct {
	Score   int      `json:"score"`
	Factors []string `json:"factors"`
}

// RateLimitEntry is the fixed-window counter stored per client IP.
type RateLimitEntry struct {
	Count     int   `json:"count"`
	ResetTime int64 `json:"resetTime"` // epoch ms
}

// RateLimitDecision is the outcome of a rate limit check.
type RateLimitDecision struct {
	Allowed   bool
	ResetTime time.Time
}

// DeliveryResult reports the outcome of a single outbound notification.
type DeliveryResult struct {
	Kind      string        `json:"kind"`
	Provider  string        `json:"provider"`
	Success   bool          `json:"success"`
	MessageID string        `json:"messageId,omitempty"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// DispatchResult groups both emails sent for an inquiry.
type DispatchResult struct {
	Notification DeliveryResult `json:"notification"`
	Confirmation DeliveryResult `json:"confirmation"`
}

// ContactResponse is the JSON shape of every /api/contact response.
type ContactResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
	InquiryID string            `json:"inquiryId,omitempty"`
	NextSteps []string          `json:"nextSteps,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}
