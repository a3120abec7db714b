package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"karkandu/database"
	"karkandu/internal/cache"
	"karkandu/internal/config"
	"karkandu/internal/httpapi"
	"karkandu/internal/httpapi/handler"
	"karkandu/internal/httpapi/repository"
	"karkandu/internal/httpapi/service"
	"karkandu/internal/mailer"
	"karkandu/internal/notify"
	"karkandu/internal/translate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		return err
	}

	// Redis is a fast path only; the API serves without it.
	likeCache, err := cache.NewLikeCache(cfg.RedisAddr, cfg.RedisPassword, time.Duration(cfg.CacheTTL)*time.Second)
	if err != nil {
		logger.Warn("redis unavailable, like counts served from postgres", "error", err)
		likeCache = nil
	} else {
		defer likeCache.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	contactRepo := repository.NewContactRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)
	loginLogRepo := repository.NewLoginLogRepository(db)

	// Notification fan-out workers
	outbox := notify.NewOutbox(notificationRepo, userRepo, cfg.OutboxWorkers, cfg.OutboxQueue, logger)
	outbox.Start()
	defer outbox.Shutdown()

	translator := translate.NewClient(cfg.TranslateAPIURL, cfg.TranslateAPIKey, logger)
	newsletter := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, logger)

	// Services
	authService := service.NewAuthService(userRepo, loginLogRepo, cfg)
	blogService := service.NewBlogService(blogRepo, userRepo, subscriberRepo, translator, outbox, newsletter, logger)
	commentService := service.NewCommentService(commentRepo, blogRepo, userRepo, outbox)
	likeService := service.NewLikeService(likeRepo, blogRepo, likeCache)
	interactionService := service.NewInteractionService(interactionRepo, blogRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	statsService := service.NewStatsService(interactionRepo, blogRepo, userRepo)
	contactService := service.NewContactService(contactRepo, subscriberRepo)

	// Handlers
	handlers := httpapi.Handlers{
		Auth:         handler.NewAuthHandler(authService, cfg.TokenTTL, cfg.IsProduction()),
		Blog:         handler.NewBlogHandler(blogService, likeService),
		Comment:      handler.NewCommentHandler(commentService),
		Interaction:  handler.NewInteractionHandler(interactionService),
		Notification: handler.NewNotificationHandler(notificationService),
		Contact:      handler.NewContactHandler(contactService),
		Admin: handler.NewAdminHandler(
			blogService, commentService, statsService, contactService, userRepo, loginLogRepo),
	}

	router := httpapi.SetupRouter(cfg, authService, handlers)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", cfg.HTTPPort, "env", cfg.GoEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
