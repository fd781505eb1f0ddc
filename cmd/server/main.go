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

	"github.com/joho/godotenv"
	"github.com/nexora/backend/internal/config"
	"github.com/nexora/backend/internal/handler"
	"github.com/nexora/backend/internal/logging"
	"github.com/nexora/backend/internal/repository"
	"github.com/nexora/backend/internal/service"
	"github.com/nexora/backend/pkg/auth"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	db, messageRepo, closeStore := openStore(cfg)
	defer closeStore()

	sessionSecret := auth.SessionSecretBytes(cfg.SessionSecret)
	if cfg.SessionSecret == "" {
		sessionSecret, err = auth.RandomSecret()
		if err != nil {
			logging.Fatal("failed to generate session secret", "error", err)
		}
		slog.Warn("SESSION_SECRET not set; using a random secret, admin sessions will not survive a restart")
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		slog.Warn("ADMIN_USERNAME or ADMIN_PASSWORD not set; admin login is disabled")
	}
	sessions := auth.NewSessionManager(sessionSecret, cfg.SessionTTL)

	messageService := service.NewMessageService(messageRepo)
	adminAuthService := service.NewAdminAuthService(service.AdminCredentials{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	}, sessions)

	router := handler.NewRouter(handler.RouterConfig{
		DB:             db,
		Messages:       messageService,
		AdminAuth:      adminAuthService,
		Sessions:       sessions,
		AllowedOrigins: cfg.AllowedOrigins,
		SessionTTL:     cfg.SessionTTL,
		Production:     cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "env", cfg.Environment, "store", cfg.StoreBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}

// openStore connects the configured message store. The returned func
// releases its resources.
func openStore(cfg *config.Config) (repository.DB, repository.MessageRepository, func()) {
	if cfg.StoreBackend == config.StoreBackendMemory {
		repo := repository.NewMemoryMessageRepository()
		slog.Warn("using in-memory message store; messages are lost on restart")
		return repo, repo, func() {}
	}

	pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	return pool, repository.NewPgMessageRepository(pool), pool.Close
}
