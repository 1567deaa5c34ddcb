package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slack-bridge/internal/config"
	"slack-bridge/internal/database"
	"slack-bridge/internal/notify"
	"slack-bridge/internal/observability"
	"slack-bridge/internal/repository"
	"slack-bridge/internal/server"
	"slack-bridge/internal/slack"
	"slack-bridge/internal/todos"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Connect(cmd.Context(), cfg.MongoURI, cfg.DBName, logger)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Disconnect(ctx, db); err != nil {
			logger.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()

	todoRepo := repository.NewTodoRepo(db, cfg.MongoTransactions)
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	if err := todoRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn("failed to create todo indexes", zap.Error(err))
	}
	cancel()

	observability.MustRegister(prometheus.DefaultRegisterer)

	newClient := clientFactory(cfg.DevMode(), cfg.SlackAPIURL, logger)
	if cfg.DevMode() {
		logger.Warn("SLACK_TOKEN not set, Slack messages are logged instead of sent")
	}

	todoService := todos.NewService(todoRepo)
	notify.NewTodoNotifier(cfg.SlackToken, cfg.TodoChannel, newClient, logger).Register(todoService)

	router := server.NewRouter(server.Deps{
		Config:      cfg,
		Logger:      logger,
		Todos:       todoService,
		NewClient:   newClient,
		NewVerifier: slack.NewSignatureVerifier,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("slack bridge starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("signal received, shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

// clientFactory picks the log-only poster when no token is configured.
func clientFactory(devMode bool, apiURL string, logger *zap.Logger) slack.ClientFactory {
	if devMode {
		return slack.NewLogPosterFactory(logger)
	}
	return slack.NewClientFactory(apiURL, nil)
}
