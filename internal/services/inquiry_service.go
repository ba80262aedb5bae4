package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/madeofpendletonwool/inquiryd/internal/models"
	"github.com/madeofpendletonwool/inquiryd/internal/scoring"
	"github.com/madeofpendletonwool/inquiryd/internal/validation"
)

const (
	SourceWebsite   = "website"
	DefaultLanguage = "de"
)

// NextSteps is shown in the success response and in the confirmation mail.
var NextSteps = []string{
	"Ich prüfe Ihre Anfrage innerhalb von 24 Stunden.",
	"Sie erhalten eine persönliche Rückmeldung mit ersten Fragen oder Ideen.",
	"Gemeinsam besprechen wir Ihr Projekt in einem kostenlosen Erstgespräch.",
	"Anschließend erhalten Sie ein individuelles Angebot.",
}

// RequestMeta is what the HTTP layer knows about the submitter.
type RequestMeta struct {
	IPAddress string
	UserAgent string
	Language  string
	Source    string
}

// InquiryService turns validated form data into a scored ContactInquiry.
type InquiryService struct {
	now func() time.Time
}

func NewInquiryService() *InquiryService {
	return &InquiryService{now: time.Now}
}

// WithClock replaces the time source. Intended for tests.
func (s *InquiryService) WithClock(now func() time.Time) *InquiryService {
	s.now = now
	return s
}

// Build assumes data was sanitized and validated. It assigns the id and
// metadata, then computes lead score, priority, spam verdict, message quality
// and tags.
func (s *InquiryService) Build(data models.ContactFormData, meta RequestMeta) *models.ContactInquiry {
	now := s.now().UTC()

	data.Name = strings.TrimSpace(data.Name)
	data.Email = strings.ToLower(strings.TrimSpace(data.Email))
	data.Company = strings.TrimSpace(data.Company)
	data.Phone = strings.TrimSpace(data.Phone)
	data.Message = strings.TrimSpace(data.Message)

	inquiry := &models.ContactInquiry{
		ContactFormData: data,
		ID:              NewInquiryID(now),
		SubmissionDate:  now,
		Status:          models.StatusNew,
		Source:          orDefault(meta.Source, SourceWebsite),
		IPAddress:       orDefault(meta.IPAddress, "unknown"),
		UserAgent:       meta.UserAgent,
		Language:        orDefault(meta.Language, DefaultLanguage),
		Priority:        models.PriorityMedium,
	}

	inquiry.LeadScore = scoring.LeadScore(inquiry.ContactFormData)
	inquiry.Priority = scoring.DeterminePriority(inquiry.LeadScore, inquiry.ContactFormData)
	inquiry.Spam = validation.DetectSpam(inquiry.ContactFormData)
	inquiry.Quality = validation.MessageQuality(inquiry.Message)
	inquiry.Tags = buildTags(inquiry)

	return inquiry
}

// NewInquiryID returns "INQ-<unix ms>-<9 hex chars>".
func NewInquiryID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return "INQ-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix
}

func buildTags(inquiry *models.ContactInquiry) []string {
	tags := []string{inquiry.ProjectType}
	if inquiry.Budget != "" {
		tags = append(tags, "budget:"+inquiry.Budget)
	}
	if inquiry.Timeline == models.TimelineASAP {
		tags = append(tags, "urgent-timeline")
	}
	if inquiry.MarketingConsent {
		tags = append(tags, "marketing-opt-in")
	}
	if inquiry.Spam.IsSpam {
		tags = append(tags, "possible-spam")
	}
	tags = append(tags, fmt.Sprintf("quality:%d", inquiry.Quality.Score))
	return tags
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
