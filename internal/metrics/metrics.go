// Package metrics holds the Prometheus collectors of the contact service.
// Collectors are registered on an injected registry so tests can use a
// private one.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/madeofpendletonwool/inquiryd/internal/models"
)

const namespace = "inquiryd"

// Submission outcomes.
const (
	OutcomeAccepted    = "accepted"
	OutcomeInvalid     = "invalid"
	OutcomeRateLimited = "rate_limited"
	OutcomeConfigError = "config_error"
	OutcomeError       = "error"
)

type Metrics struct {
	submissions   *prometheus.CounterVec
	rateLimited   prometheus.Counter
	priorities    *prometheus.CounterVec
	leadScore     prometheus.Histogram
	emails        *prometheus.CounterVec
	emailDuration *prometheus.HistogramVec
	notifications *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	inFlight     prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "contact",
			Name:      "submissions_total",
			Help:      "Contact form submissions by outcome",
		}, []string{"outcome"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "contact",
			Name:      "rate_limited_total",
			Help:      "Submissions rejected by the per-IP rate limit",
		}),
		priorities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "contact",
			Name:      "inquiries_total",
			Help:      "Accepted inquiries by priority",
		}, []string{"priority"}),
		leadScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "contact",
			Name:      "lead_score",
			Help:      "Lead score of accepted inquiries",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "email",
			Name:      "sent_total",
			Help:      "Outbound emails by kind and result",
		}, []string{"kind", "result"}),
		emailDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "email",
			Name:      "send_duration_seconds",
			Help:      "Time spent sending a single email",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"kind", "provider"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ntfy",
			Name:      "notifications_total",
			Help:      "Push notifications by result",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		}),
	}

	reg.MustRegister(
		m.submissions,
		m.rateLimited,
		m.priorities,
		m.leadScore,
		m.emails,
		m.emailDuration,
		m.notifications,
		m.httpRequests,
		m.httpDuration,
		m.inFlight,
	)
	return m
}

// The recording methods accept a nil receiver so callers can run without metrics.

func (m *Metrics) Submission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
	if outcome == OutcomeRateLimited {
		m.rateLimited.Inc()
	}
}

func (m *Metrics) Inquiry(inquiry *models.ContactInquiry) {
	if m == nil {
		return
	}
	m.priorities.WithLabelValues(string(inquiry.Priority)).Inc()
	m.leadScore.Observe(float64(inquiry.LeadScore))
}

func (m *Metrics) Email(result models.DeliveryResult) {
	if m == nil {
		return
	}
	outcome := "success"
	if !result.Success {
		outcome = "failure"
	}
	m.emails.WithLabelValues(result.Kind, outcome).Inc()
	m.emailDuration.WithLabelValues(result.Kind, result.Provider).Observe(result.Duration.Seconds())
}

func (m *Metrics) Notification(err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.notifications.WithLabelValues(outcome).Inc()
}

// Middleware records request count, latency and in-flight requests. Routes
// are labelled by their registered pattern; unmatched paths share one label.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
