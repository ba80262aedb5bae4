package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madeofpendletonwool/inquiryd/internal/models"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return New(reg), reg
}

func TestSubmission(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.Submission(OutcomeAccepted)
	m.Submission(OutcomeAccepted)
	m.Submission(OutcomeRateLimited)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues(OutcomeAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues(OutcomeRateLimited)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimited))
}

func TestEmail(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.Email(models.DeliveryResult{Kind: "notification", Provider: "mailgun", Success: true, Duration: 120 * time.Millisecond})
	m.Email(models.DeliveryResult{Kind: "confirmation", Provider: "mailgun", Success: false, Duration: time.Second})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.emails.WithLabelValues("notification", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emails.WithLabelValues("confirmation", "failure")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.emailDuration))
}

func TestInquiryAndNotification(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.Inquiry(&models.ContactInquiry{Priority: models.PriorityHigh, LeadScore: 72})
	m.Notification(nil)
	m.Notification(errors.New("ntfy down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.priorities.WithLabelValues("high")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("failure")))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Submission(OutcomeAccepted)
		m.Inquiry(&models.ContactInquiry{})
		m.Email(models.DeliveryResult{})
		m.Notification(nil)
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m, reg := newTestMetrics(t)

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(Handler(reg)))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `inquiryd_http_requests_total{method="GET",route="/health",status="200"} 3`), body)
}
