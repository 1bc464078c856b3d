package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"balkan-spine-wellness/config"
	_ "balkan-spine-wellness/docs" // Important for Swagger
	"balkan-spine-wellness/internal/delivery/http/middleware"
	v1 "balkan-spine-wellness/internal/delivery/http/v1"
	"balkan-spine-wellness/internal/usecase"
	"balkan-spine-wellness/pkg/email"
	"balkan-spine-wellness/pkg/logger"
	"balkan-spine-wellness/pkg/redis"
	"balkan-spine-wellness/pkg/security"
	"balkan-spine-wellness/pkg/validation"
	"balkan-spine-wellness/web"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const (
	sweepInterval   = time.Minute
	cleanupInterval = time.Minute
	shutdownTimeout = 5 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting site", "port", cfg.Port)
	audit := security.InitSecurityLogger("balkan-spine-wellness", cfg.GinMode)
	defer func() { _ = audit.Sync() }()

	// 3. Request validation
	binder, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}
	validation.RegisterValidators(binder)

	// 4. Site content
	content, err := loadContent(cfg, validator.New())
	if err != nil {
		return err
	}

	// 5. Contact sessions
	composer, err := email.NewComposer(cfg.ContactEmailTo, cfg.BrandName)
	if err != nil {
		return err
	}
	sessions := usecase.NewContactSessionRegistry(
		usecase.NewContactControllerFactory(usecase.ContactOptions{
			Composer:    composer,
			Handoff:     email.NewLinkHandoff(cfg.MailtoMaxLength),
			RevertAfter: time.Duration(cfg.StatusRevertSeconds) * time.Second,
		}),
		time.Duration(cfg.SessionTTLMinutes)*time.Minute,
	)
	sessionsDone := make(chan struct{})
	runCtx, cancelRun := context.WithCancel(context.Background())
	go func() {
		defer close(sessionsDone)
		sessions.Run(runCtx, sweepInterval)
	}()

	// 6. Redis (optional)
	redisClient := connectRedis(ctx, cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}
	limiter := middleware.NewRateLimiter(redisClient)
	go limiter.RunCleanup(runCtx, cleanupInterval)

	// 7. Templates
	templates, err := web.Templates()
	if err != nil {
		cancelRun()
		return err
	}

	// 8. Setup Router
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	router := v1.NewRouter(v1.RouterDeps{
		PageUC: usecase.NewPageUsecase(content, usecase.PageOptions{
			ContactEmail:   cfg.ContactEmailTo,
			PhoneNumber:    cfg.PhoneNumber,
			WhatsAppNumber: cfg.WhatsAppNumber,
			SiteURL:        cfg.SiteURL,
		}),
		Sessions:    sessions,
		HealthUC:    usecase.NewHealthUsecase(sessions, redis.HealthCheck(redisClient)),
		RateLimiter: limiter,
		Templates:   templates,
		Static:      web.Static(),
		Config:      cfg,
	})

	// 9. Start Server
	srv := newServer(runCtx, cancelRun, ":"+cfg.Port, router)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful Shutdown
	select {
	case <-ctx.Done():
		logger.Log.Info("Shutting down server...")
	case err := <-serveErr:
		logger.Log.Error("Listen failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	<-sessionsDone

	logger.Log.Info("Server exiting")
	return nil
}

// newServer derives every request context from runCtx and cancels it when
// Shutdown starts, so open status streams and the session janitor stop before
// Shutdown waits for connections.
func newServer(runCtx context.Context, stop context.CancelFunc, addr string, handler http.Handler) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return runCtx
		},
	}
	srv.RegisterOnShutdown(stop)
	return srv
}

// connectRedis returns nil when Redis is not configured or unreachable; the
// rate limiter then falls back to in-memory counters.
func connectRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.New(ctx, redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		return nil
	case err != nil:
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		return nil
	}
	logger.Log.Info("Connected to Redis")
	return client
}
