package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lookingup/lookingup-api/internal/api"
	"github.com/lookingup/lookingup-api/internal/config"
	"github.com/lookingup/lookingup-api/internal/pkg/logger"
	"github.com/lookingup/lookingup-api/internal/repository/postgres"
	"github.com/lookingup/lookingup-api/internal/service/auth"
	"github.com/lookingup/lookingup-api/internal/service/usage"
	"github.com/lookingup/lookingup-api/internal/service/verification"
	"github.com/lookingup/lookingup-api/internal/verifier"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"
)

// checkPortAvailable verifies that the target port is not already in use.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	configPath := "config/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := checkPortAvailable(cfg.Server.Host, cfg.Server.Port); err != nil {
		logger.Error("pre-flight check failed", "error", err)
		os.Exit(1)
	}

	if cfg.Database.URL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		cancel()
		logger.Error("database unreachable", "error", err)
		os.Exit(1)
	}
	cancel()
	logger.Info("connected to database")

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unreachable, rate limiting disabled", "error", err)
			redisClient = nil
		} else {
			logger.Info("connected to redis", "addr", cfg.Redis.Addr)
		}
	}

	engine := verifier.New(
		verifier.WithHELODomain(cfg.Verifier.HELODomain),
		verifier.WithTimeouts(
			time.Duration(cfg.Verifier.LookupTimeoutSecs)*time.Second,
			time.Duration(cfg.Verifier.SMTPTimeoutSecs)*time.Second,
		),
	)

	authSvc := auth.NewService(postgres.NewAccountRepo(db))
	usageSvc := usage.NewService(postgres.NewUsageRepo(db))
	verificationSvc := verification.NewService(engine, usageSvc)

	handlers := api.NewHandlers(verificationSvc, usageSvc, cfg.RateLimit.RequestsPerMinute)
	limiter := api.NewRateLimiter(redisClient, cfg.RateLimit.RequestsPerMinute)
	health := api.NewHealthChecker(db, redisClient)
	router := api.SetupRoutes(handlers, authSvc, limiter, health, cfg.Server.AllowedOrigins)

	server := api.NewServer(router)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		errCh <- server.ListenAndServe(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("server exited", "error", err)
		os.Exit(1)
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}
}
