package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordtrainer/internal/config"
	"wordtrainer/internal/handler"
	"wordtrainer/internal/middleware"
	"wordtrainer/internal/repository/postgres"
	"wordtrainer/internal/scheduler"
	"wordtrainer/internal/seed"
	"wordtrainer/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	content, err := config.LoadContent(cfg.ContentFile)
	if err != nil {
		return fmt.Errorf("failed to load bot content: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting word trainer bot",
		zap.Int("mastery_threshold", content.CorrectAnswers),
		zap.Duration("state_ttl", cfg.StateTTL),
	)

	// Connect to database with retries
	db, err := connectDatabase(ctx, cfg.DSN(), logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := postgres.Migrate(db.DB, cfg.MigrationsPath, logger); err != nil {
		return err
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	wordRepo := postgres.NewWordRepo(db)
	txManager := postgres.NewTxManager(db)

	if cfg.SeedFile != "" {
		importer := seed.NewImporter(txManager, wordRepo, logger)
		if _, err := importer.ImportFile(ctx, cfg.SeedFile); err != nil {
			return fmt.Errorf("failed to import seed file: %w", err)
		}
	}

	// Initialize services
	policy := service.NewVisibilityPolicy(wordRepo)
	userService := service.NewUserService(userRepo)
	quizService := service.NewQuizService(txManager, wordRepo, policy, content.CorrectAnswers, logger)
	wordService := service.NewWordService(txManager, wordRepo, content.SourcePattern(), content.TargetPattern(), logger)
	statsService := service.NewStatsService(wordRepo, content.CorrectAnswers, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Sender() != nil {
				fields = append(fields, zap.Int64("tg_id", c.Sender().ID))
			}
			logger.Error("Update handling failed", fields...)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Telegram bot initialized")

	locks := middleware.NewUserLocks()
	bot.Use(
		middleware.Serialize(locks),
		middleware.RegisterUser(userService, content.Errors.Internal, logger),
	)

	// Initialize handler
	h := handler.NewHandler(bot, quizService, wordService, statsService, content, logger)
	if err := h.RegisterHandlers(); err != nil {
		logger.Warn("Failed to publish bot commands", zap.Error(err))
	}

	logger.Info("Handlers registered")

	sched := scheduler.New(h, locks, cfg.StateTTL, logger)
	if err := sched.Start(scheduler.DefaultSweepInterval); err != nil {
		return err
	}
	defer sched.Stop()

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()

	logger.Info("Bot stopped gracefully")
	return nil
}
