package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProviderMailgun = "mailgun"
	ProviderResend  = "resend"
	ProviderSMTP    = "smtp"

	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Server        ServerConfig       `yaml:"server"`
	Email         EmailConfig        `yaml:"email"`
	Site          SiteConfig         `yaml:"site"`
	RateLimit     RateLimitConfig    `yaml:"rate_limit"`
	Redis         RedisConfig        `yaml:"redis"`
	Notifications NotificationConfig `yaml:"notifications"`
	Metrics       MetricsConfig      `yaml:"metrics"`
	Logging       LoggingConfig      `yaml:"logging"`
}

type ServerConfig struct {
	Port         string   `yaml:"port" env:"PORT"`
	Host         string   `yaml:"host" env:"HOST"`
	Debug        bool     `yaml:"debug" env:"DEBUG"`
	CORSOrigins  []string `yaml:"cors_origins" env:"CORS_ORIGINS"`
	MaxBodyBytes int64    `yaml:"max_body_bytes"`
}

type EmailConfig struct {
	Provider string        `yaml:"provider" env:"EMAIL_PROVIDER" validate:"oneof=mailgun resend smtp"`
	From     string        `yaml:"from" env:"CONTACT_FROM_EMAIL"`
	NotifyTo string        `yaml:"notify_to" env:"CONTACT_NOTIFY_EMAIL" validate:"omitempty,email"`
	Timeout  time.Duration `yaml:"timeout" env:"EMAIL_TIMEOUT"`
	Mailgun  MailgunConfig `yaml:"mailgun" validate:"-"`
	Resend   ResendConfig  `yaml:"resend" validate:"-"`
	SMTP     SMTPConfig    `yaml:"smtp" validate:"-"`
}

type MailgunConfig struct {
	APIKey  string `yaml:"api_key" env:"MAILGUN_API_KEY" validate:"required"`
	Domain  string `yaml:"domain" env:"MAILGUN_DOMAIN" validate:"required,hostname"`
	APIBase string `yaml:"api_base" env:"MAILGUN_API_BASE" validate:"omitempty,url"`
}

type ResendConfig struct {
	APIKey string `yaml:"api_key" env:"RESEND_API_KEY" validate:"required"`
}

type SMTPConfig struct {
	Host     string `yaml:"host" env:"SMTP_HOST" validate:"required"`
	Port     int    `yaml:"port" env:"SMTP_PORT" validate:"required,min=1,max=65535"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	SSL      bool   `yaml:"ssl" env:"SMTP_SSL"`
}

// SiteConfig holds the operator details repeated in the confirmation mail.
type SiteConfig struct {
	OwnerName string `yaml:"owner_name" env:"SITE_OWNER_NAME"`
	Email     string `yaml:"email" env:"SITE_EMAIL"`
	Phone     string `yaml:"phone" env:"SITE_PHONE"`
	Website   string `yaml:"website" env:"SITE_WEBSITE"`
}

type RateLimitConfig struct {
	Enabled bool          `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
	Limit   int           `yaml:"limit" env:"RATE_LIMIT_LIMIT"`
	Window  time.Duration `yaml:"window" env:"RATE_LIMIT_WINDOW"`
	Backend string        `yaml:"backend" env:"RATE_LIMIT_BACKEND"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

type NotificationConfig struct {
	Ntfy NtfyConfig `yaml:"ntfy"`
}

type NtfyConfig struct {
	Enabled bool   `yaml:"enabled" env:"NTFY_ENABLED"`
	URL     string `yaml:"url" env:"NTFY_URL"`
	Topic   string `yaml:"topic" env:"NTFY_TOPIC"`
	Token   string `yaml:"token" env:"NTFY_TOKEN"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
	Path    string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string     `yaml:"level" env:"LOG_LEVEL"`
	Format string     `yaml:"format" env:"LOG_FORMAT"`
	File   FileConfig `yaml:"file"`
}

type FileConfig struct {
	Path       string `yaml:"path" env:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.loadFromEnv()
	config.fillEmailFallbacks()

	return config, nil
}

// Default returns a Config with every default applied and nothing read from
// the environment.
func Default() *Config {
	config := &Config{}
	config.setDefaults()
	return config
}

func (c *Config) setDefaults() {
	c.Server.Port = "8080"
	c.Server.Host = "0.0.0.0"
	c.Server.Debug = false
	c.Server.CORSOrigins = []string{"*"}
	c.Server.MaxBodyBytes = 64 << 10

	c.Email.Provider = ProviderMailgun
	c.Email.Timeout = 10 * time.Second
	c.Email.SMTP.Port = 587

	c.RateLimit.Enabled = true
	c.RateLimit.Limit = 5
	c.RateLimit.Window = time.Hour
	c.RateLimit.Backend = BackendMemory

	c.Redis.Addr = "localhost:6379"

	c.Metrics.Enabled = true
	c.Metrics.Path = "/metrics"

	c.Logging.Level = "info"
	c.Logging.Format = "json"
	c.Logging.File.MaxSizeMB = 50
	c.Logging.File.MaxBackups = 5
	c.Logging.File.MaxAgeDays = 30
}

// fillEmailFallbacks derives the sender from the Mailgun domain and the
// notification recipient from the site address when they are not set.
func (c *Config) fillEmailFallbacks() {
	if c.Email.From == "" && c.Email.Mailgun.Domain != "" {
		c.Email.From = "noreply@" + c.Email.Mailgun.Domain
	}
	if c.Email.NotifyTo == "" {
		c.Email.NotifyTo = c.Site.Email
	}
}

func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}
	if debug := os.Getenv("DEBUG"); debug == "true" {
		c.Server.Debug = true
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.Server.CORSOrigins = splitList(origins)
	}

	// Email env vars
	if provider := os.Getenv("EMAIL_PROVIDER"); provider != "" {
		c.Email.Provider = strings.ToLower(provider)
	}
	if from := os.Getenv("CONTACT_FROM_EMAIL"); from != "" {
		c.Email.From = from
	}
	if notifyTo := os.Getenv("CONTACT_NOTIFY_EMAIL"); notifyTo != "" {
		c.Email.NotifyTo = notifyTo
	}
	if timeout := os.Getenv("EMAIL_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Email.Timeout = d
		}
	}
	if apiKey := os.Getenv("MAILGUN_API_KEY"); apiKey != "" {
		c.Email.Mailgun.APIKey = apiKey
	}
	if domain := os.Getenv("MAILGUN_DOMAIN"); domain != "" {
		c.Email.Mailgun.Domain = domain
	}
	if apiBase := os.Getenv("MAILGUN_API_BASE"); apiBase != "" {
		c.Email.Mailgun.APIBase = apiBase
	}
	if apiKey := os.Getenv("RESEND_API_KEY"); apiKey != "" {
		c.Email.Resend.APIKey = apiKey
	}
	if smtpHost := os.Getenv("SMTP_HOST"); smtpHost != "" {
		c.Email.SMTP.Host = smtpHost
	}
	if smtpPort := os.Getenv("SMTP_PORT"); smtpPort != "" {
		if port, err := strconv.Atoi(smtpPort); err == nil {
			c.Email.SMTP.Port = port
		}
	}
	if smtpUser := os.Getenv("SMTP_USERNAME"); smtpUser != "" {
		c.Email.SMTP.Username = smtpUser
	}
	if smtpPass := os.Getenv("SMTP_PASSWORD"); smtpPass != "" {
		c.Email.SMTP.Password = smtpPass
	}
	if smtpSSL := os.Getenv("SMTP_SSL"); smtpSSL == "true" {
		c.Email.SMTP.SSL = true
	}

	// Site env vars
	if owner := os.Getenv("SITE_OWNER_NAME"); owner != "" {
		c.Site.OwnerName = owner
	}
	if email := os.Getenv("SITE_EMAIL"); email != "" {
		c.Site.Email = email
	}
	if phone := os.Getenv("SITE_PHONE"); phone != "" {
		c.Site.Phone = phone
	}
	if website := os.Getenv("SITE_WEBSITE"); website != "" {
		c.Site.Website = website
	}

	// Rate limit env vars
	if enabled := os.Getenv("RATE_LIMIT_ENABLED"); enabled != "" {
		c.RateLimit.Enabled = enabled == "true"
	}
	if limit := os.Getenv("RATE_LIMIT_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			c.RateLimit.Limit = n
		}
	}
	if window := os.Getenv("RATE_LIMIT_WINDOW"); window != "" {
		if d, err := time.ParseDuration(window); err == nil {
			c.RateLimit.Window = d
		}
	}
	if backend := os.Getenv("RATE_LIMIT_BACKEND"); backend != "" {
		c.RateLimit.Backend = strings.ToLower(backend)
	}

	// Redis env vars
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		c.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		c.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			c.Redis.DB = n
		}
	}

	// Ntfy env vars
	if ntfyEnabled := os.Getenv("NTFY_ENABLED"); ntfyEnabled == "true" {
		c.Notifications.Ntfy.Enabled = true
	}
	if ntfyURL := os.Getenv("NTFY_URL"); ntfyURL != "" {
		c.Notifications.Ntfy.URL = ntfyURL
	}
	if ntfyTopic := os.Getenv("NTFY_TOPIC"); ntfyTopic != "" {
		c.Notifications.Ntfy.Topic = ntfyTopic
	}
	if ntfyToken := os.Getenv("NTFY_TOKEN"); ntfyToken != "" {
		c.Notifications.Ntfy.Token = ntfyToken
	}

	if metrics := os.Getenv("METRICS_ENABLED"); metrics != "" {
		c.Metrics.Enabled = metrics == "true"
	}

	// Logging env vars
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
	if file := os.Getenv("LOG_FILE"); file != "" {
		c.Logging.File.Path = file
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
