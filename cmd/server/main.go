package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/madeofpendletonwool/inquiryd/internal/config"
	"github.com/madeofpendletonwool/inquiryd/internal/handlers"
	"github.com/madeofpendletonwool/inquiryd/internal/logger"
	"github.com/madeofpendletonwool/inquiryd/internal/ratelimit"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/config.yaml", "Path to configuration file")
	flag.Parse()

	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.GetLogger().Fatalw("Failed to load configuration", "error", err)
	}

	if err := logger.Init(cfg.Logging); err != nil {
		logger.GetLogger().Fatalw("Failed to initialize logger", "error", err)
	}
	defer logger.Close()
	log := logger.GetLogger()

	var opts []handlers.Option
	if cfg.RateLimit.Enabled && cfg.RateLimit.Backend == config.BackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Fatalw("Failed to connect to Redis", "addr", cfg.Redis.Addr, "error", err)
		}
		opts = append(opts, handlers.WithRateLimitStore(ratelimit.NewRedisStore(client)))
		log.Infow("Using Redis rate limit store", "addr", cfg.Redis.Addr)
	}

	server := handlers.NewServer(cfg, opts...)

	go func() {
		log.Infow("Starting server",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
			"email_provider", cfg.Email.Provider,
			"rate_limit", cfg.RateLimit.Enabled)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		log.Errorw("Server shutdown error", "error", err)
	}
	log.Info("Server stopped")
}
