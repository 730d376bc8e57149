// Package main provides the CLI entrypoint for lingotutor.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"

	"lingotutor/internal/auth"
	"lingotutor/internal/config"
	"lingotutor/internal/database"
	"lingotutor/internal/handler"
	"lingotutor/internal/httpapi"
	"lingotutor/internal/repository/sqlstore"
	"lingotutor/internal/service"
	"lingotutor/internal/tutor"
)

const shutdownTimeout = 10 * time.Second

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "lingotutor",
		Short:        "Language tutoring backend with an HTTP API and a Telegram bot",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newBotCmd())
	rootCmd.AddCommand(newMigrateCmd())

	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		Args:  cobra.NoArgs,
		RunE:  runBot,
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}
}

// app holds what every command needs once configuration and the store are up
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *sql.DB
}

type services struct {
	auth         *service.AuthService
	vocabulary   *service.VocabularyService
	conversation *service.ConversationService
	stats        *service.StatsService
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("Configuration loaded successfully",
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("tutor_mode", cfg.Tutor.Mode),
	)

	if cfg.Database.Driver == config.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
	}

	db, err := database.Connect(ctx, cfg.Database.Driver, cfg.DSN(), logger)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return nil, err
	}
	logger.Info("Database connection established")

	if err := database.Migrate(db, cfg.Database.Driver, logger); err != nil {
		db.Close()
		logger.Error("Failed to run migrations", zap.Error(err))
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, db: db}, nil
}

func (a *app) close() {
	a.db.Close()
	_ = a.logger.Sync()
}

func (a *app) services() (*services, error) {
	userRepo := sqlstore.NewUserRepo(a.db)
	vocabRepo := sqlstore.NewVocabularyRepo(a.db)
	convRepo := sqlstore.NewConversationRepo(a.db)

	t, err := tutor.New(a.cfg.Tutor)
	if err != nil {
		return nil, err
	}

	return &services{
		auth: service.NewAuthService(
			userRepo,
			auth.NewPasswordHasher(a.cfg.Auth.BcryptCost),
			auth.NewTokenCodec(a.cfg.Auth.JWTSecret, a.cfg.Auth.TokenTTL),
			a.logger,
		),
		vocabulary:   service.NewVocabularyService(vocabRepo, a.logger),
		conversation: service.NewConversationService(convRepo, t, a.logger),
		stats:        service.NewStatsService(vocabRepo, convRepo, a.logger),
	}, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	svcs, err := a.services()
	if err != nil {
		return err
	}

	h := httpapi.NewHandler(svcs.auth, svcs.vocabulary, svcs.conversation, svcs.stats, a.logger)
	srv := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           httpapi.NewRouter(h, a.cfg.HTTP.GinMode, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("Shutdown signal received, stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	a.logger.Info("HTTP server stopped gracefully")
	return nil
}

func runBot(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if a.cfg.BotToken == "" {
		return errors.New("BOT_TOKEN is required")
	}

	svcs, err := a.services()
	if err != nil {
		return err
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:  a.cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			a.logger.Error("Bot handler failed", zap.Error(err))
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}
	a.logger.Info("Telegram bot initialized")

	h := handler.NewHandler(bot, svcs.auth, svcs.vocabulary, svcs.conversation, svcs.stats, a.logger)
	h.RegisterHandlers()
	a.logger.Info("Handlers registered")

	go func() {
		a.logger.Info("Bot started successfully")
		bot.Start()
	}()

	<-ctx.Done()

	a.logger.Info("Shutdown signal received, stopping bot...")
	bot.Stop()
	a.logger.Info("Bot stopped gracefully")
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	a.logger.Info("Database migrations completed")
	return nil
}

// newLogger builds a production logger, or a development one for LOG_LEVEL=debug
func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
