package handlers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/madeofpendletonwool/inquiryd/internal/apperrors"
	"github.com/madeofpendletonwool/inquiryd/internal/logger"
	"github.com/madeofpendletonwool/inquiryd/internal/metrics"
	"github.com/madeofpendletonwool/inquiryd/internal/models"
	"github.com/madeofpendletonwool/inquiryd/internal/services"
	"github.com/madeofpendletonwool/inquiryd/internal/validation"
)

const (
	msgSuccess = "Vielen Dank für Ihre Anfrage! Ich melde mich innerhalb von 24 Stunden bei Ihnen."

	defaultMaxBodyBytes = 64 << 10
)

// submitContact handles POST /api/contact. Steps run in a fixed order and
// the first failing step decides the response.
func (s *Server) submitContact(c *gin.Context) {
	log := logger.GetLogger()

	if s.configErr != nil {
		s.respondError(c, apperrors.ConfigError(s.configErr))
		return
	}

	ip := clientIP(c)
	if s.limiter != nil {
		decision, err := s.limiter.Check(c.Request.Context(), ip)
		switch {
		case err != nil:
			// Store failures fail open.
			log.Warnw("Rate limit check failed, allowing request", "client_ip", ip, "error", err)
		case !decision.Allowed:
			appErr := apperrors.RateLimited(decision.ResetTime)
			c.Header("Retry-After", strconv.Itoa(appErr.RetryAfter(s.now())))
			s.respondError(c, appErr)
			return
		}
	}

	maxBody := s.config.Server.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)

	var data models.ContactFormData
	if err := c.ShouldBindJSON(&data); err != nil {
		s.respondError(c, apperrors.InvalidInput(err))
		return
	}

	data = validation.SanitizeForm(data)
	if fieldErrors := validation.ValidateForm(data); len(fieldErrors) > 0 {
		s.respondError(c, apperrors.ValidationFailed(fieldErrors))
		return
	}

	inquiry := s.inquiryService.Build(data, services.RequestMeta{
		IPAddress: ip,
		UserAgent: c.Request.UserAgent(),
		Language:  primaryLanguage(c.GetHeader("Accept-Language")),
	})
	s.metrics.Inquiry(inquiry)

	// Sends outlive a client that hangs up early.
	ctx := context.WithoutCancel(c.Request.Context())
	dispatch := s.emailService.SendInquiryEmails(ctx, inquiry)

	if s.notificationService.Enabled() {
		go func() {
			err := s.notificationService.SendInquiryNotification(ctx, inquiry)
			s.metrics.Notification(err)
			if err != nil {
				log.Warnw("Failed to send ntfy notification", "inquiry_id", inquiry.ID, "error", err)
			}
		}()
	}

	log.Infow("Contact inquiry accepted",
		"inquiry_id", inquiry.ID,
		"project_type", inquiry.ProjectType,
		"priority", inquiry.Priority,
		"lead_score", inquiry.LeadScore,
		"possible_spam", inquiry.Spam.IsSpam,
		"quality", inquiry.Quality.Score,
		"email", logger.MaskEmail(inquiry.Email),
		"notification_sent", dispatch.Notification.Success,
		"confirmation_sent", dispatch.Confirmation.Success,
		"request_id", c.GetString("request_id"))

	s.metrics.Submission(metrics.OutcomeAccepted)
	c.JSON(http.StatusOK, models.ContactResponse{
		Success:   true,
		Message:   msgSuccess,
		InquiryID: inquiry.ID,
		NextSteps: services.NextSteps,
	})
}

// contactPreflight answers OPTIONS requests the CORS middleware lets through,
// which are those without an Origin header.
func (s *Server) contactPreflight(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Status(http.StatusOK)
}

func (s *Server) respondError(c *gin.Context, appErr *apperrors.AppError) {
	log := logger.GetLogger()
	fields := []any{
		"type", appErr.Type,
		"status", appErr.HTTPStatus,
		"request_id", c.GetString("request_id"),
	}
	if appErr.Raw != nil {
		fields = append(fields, "error", appErr.Raw)
	}
	if len(appErr.Fields) > 0 {
		fields = append(fields, "fields", fieldNames(appErr.Fields))
	}

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Errorw("Contact request failed", fields...)
	} else {
		log.Infow("Contact request rejected", fields...)
	}

	s.metrics.Submission(outcomeFor(appErr))
	c.JSON(appErr.HTTPStatus, models.ContactResponse{
		Success: false,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}

func outcomeFor(appErr *apperrors.AppError) string {
	switch appErr.Type {
	case apperrors.ConfigurationError:
		return metrics.OutcomeConfigError
	case apperrors.RateLimitError:
		return metrics.OutcomeRateLimited
	case apperrors.InvalidInputError, apperrors.ValidationError:
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

func fieldNames(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	return names
}

// clientIP prefers the first X-Forwarded-For entry, then X-Real-IP, then the
// peer address.
func clientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(c.GetHeader("X-Real-IP")); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	var addrErr *net.AddrError
	if errors.As(err, &addrErr) && c.Request.RemoteAddr != "" {
		return c.Request.RemoteAddr
	}
	return "unknown"
}

// primaryLanguage returns the primary subtag of the first Accept-Language entry.
func primaryLanguage(header string) string {
	first, _, _ := strings.Cut(header, ",")
	first, _, _ = strings.Cut(first, ";")
	lang, _, _ := strings.Cut(strings.TrimSpace(first), "-")
	return strings.ToLower(lang)
}
