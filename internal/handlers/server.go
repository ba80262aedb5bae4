package handlers

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/madeofpendletonwool/inquiryd/internal/apperrors"
	"github.com/madeofpendletonwool/inquiryd/internal/config"
	"github.com/madeofpendletonwool/inquiryd/internal/logger"
	"github.com/madeofpendletonwool/inquiryd/internal/metrics"
	"github.com/madeofpendletonwool/inquiryd/internal/models"
	"github.com/madeofpendletonwool/inquiryd/internal/ratelimit"
	"github.com/madeofpendletonwool/inquiryd/internal/services"
)

// Version is reported by /health. Overridden at build time with -ldflags.
var Version = "1.0.0"

const (
	requestIDHeader = "X-Request-ID"
	sweepInterval   = time.Hour
)

type Server struct {
	config              *config.Config
	router              *gin.Engine
	httpServer          *http.Server
	limiter             *ratelimit.Limiter
	memoryStore         *ratelimit.MemoryStore
	inquiryService      *services.InquiryService
	emailService        *services.EmailService
	notificationService *services.NotificationService
	metrics             *metrics.Metrics
	gatherer            prometheus.Gatherer

	// configErr is set when the email configuration is unusable. Every
	// contact request is then answered with a configuration error.
	configErr error

	now       func() time.Time
	stopSweep context.CancelFunc
	mailer    services.Mailer
	store     ratelimit.Store
	registry  *prometheus.Registry
}

type Option func(*Server)

// WithMailer replaces the transport built from the email configuration.
func WithMailer(m services.Mailer) Option {
	return func(s *Server) { s.mailer = m }
}

// WithRateLimitStore replaces the in-memory rate limit store.
func WithRateLimitStore(store ratelimit.Store) Option {
	return func(s *Server) { s.store = store }
}

// WithRegistry registers metrics on reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithClock replaces the time source of the rate limiter and inquiry ids.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func NewServer(cfg *config.Config, opts ...Option) *Server {
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &Server{
		config: cfg,
		router: gin.New(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(server)
	}

	log := logger.GetLogger()

	server.configErr = cfg.Email.Validate()
	if server.configErr != nil {
		log.Errorw("Email configuration invalid, contact requests will be rejected", "error", server.configErr)
	}
	if server.mailer == nil && server.configErr == nil {
		mailer, err := services.NewMailer(cfg.Email)
		if err != nil {
			server.configErr = err
		} else {
			server.mailer = mailer
		}
	}

	if server.registry == nil {
		server.registry = prometheus.NewRegistry()
		server.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	server.gatherer = server.registry
	server.metrics = metrics.New(server.registry)

	if cfg.RateLimit.Enabled {
		if server.store == nil {
			server.memoryStore = ratelimit.NewMemoryStore()
			server.store = server.memoryStore
		}
		server.limiter = ratelimit.NewLimiter(server.store, cfg.RateLimit.Limit, cfg.RateLimit.Window).WithClock(server.now)
	}

	server.inquiryService = services.NewInquiryService().WithClock(server.now)
	if server.mailer != nil {
		server.emailService = services.NewEmailService(cfg, server.mailer, server.metrics)
	}
	server.notificationService = services.NewNotificationService(cfg.Notifications.Ntfy)

	server.setupMiddleware()
	server.setupRoutes()

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(requestID())
	s.router.Use(requestLogger())
	s.router.Use(s.metrics.Middleware())
	s.router.Use(gin.CustomRecovery(s.recoverPanic))

	corsConfig := cors.Config{
		AllowMethods:              []string{http.MethodPost, http.MethodOptions},
		AllowHeaders:              []string{"Content-Type"},
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}
	if len(s.config.Server.CORSOrigins) == 0 || slices.Contains(s.config.Server.CORSOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.config.Server.CORSOrigins
	}
	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	if s.config.Metrics.Enabled {
		path := s.config.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		s.router.GET(path, gin.WrapH(metrics.Handler(s.gatherer)))
	}

	api := s.router.Group("/api")
	{
		api.POST("/contact", s.submitContact)
		api.OPTIONS("/contact", s.contactPreflight)
	}
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	if s.memoryStore != nil {
		ctx, cancel := context.WithCancel(context.Background())
		s.stopSweep = cancel
		go s.memoryStore.RunSweeper(ctx, sweepInterval, func(removed int) {
			if removed > 0 {
				logger.GetLogger().Debugw("Swept expired rate limit windows", "removed", removed)
			}
		})
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown() error {
	if s.stopSweep != nil {
		s.stopSweep()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Version:   Version,
	})
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := logger.GetLogger()
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", clientIP(c),
			"request_id", c.GetString("request_id"),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Errorw("Request failed", fields...)
		case status >= 400:
			log.Infow("Request rejected", fields...)
		default:
			log.Debugw("Request handled", fields...)
		}
	}
}

func (s *Server) recoverPanic(c *gin.Context, recovered any) {
	logger.GetLogger().Errorw("Panic while handling request",
		"panic", recovered,
		"path", c.Request.URL.Path,
		"request_id", c.GetString("request_id"))

	err, ok := recovered.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", recovered)
	}
	s.respondError(c, apperrors.From(err))
	c.Abort()
}
