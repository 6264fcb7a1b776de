// Package main is the entry point for the RPS duel bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"rps-duel-bot/internal/bot"
	"rps-duel-bot/internal/config"
	"rps-duel-bot/internal/match"
	"rps-duel-bot/internal/pkg/db"
	"rps-duel-bot/internal/repository"
	"rps-duel-bot/internal/service"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Run database migrations
	if err := runMigrations(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	playerRepo := repository.NewPlayerRepository(dbPool.Pool)
	matchRepo := repository.NewMatchRepository(dbPool.Pool)

	// Initialize services
	accountService := service.NewAccountService(playerRepo, matchRepo)

	// Create the Telegram client first: the match engine delivers all its
	// notifications through it.
	teleBot, err := bot.NewClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	notifier := bot.NewNotifier(teleBot, accountService)

	// Initialize the match engine
	engine := match.NewEngine(&match.Config{
		QueueWait: cfg.Match.QueueWait,
		RoundWait: cfg.Match.RoundWait,
		Notifier:  notifier,
	})

	// Wire handlers and middleware
	telegramBot := bot.New(teleBot, &bot.Dependencies{
		Config:         cfg,
		Engine:         engine,
		AccountService: accountService,
	})

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start bot in a goroutine
	go func() {
		log.Info().Msg("Bot is starting...")
		telegramBot.Start()
	}()

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	// Graceful shutdown
	telegramBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}

// runMigrations executes database migrations.
func runMigrations(ctx context.Context, pool *db.Pool) error {
	log.Info().Msg("Running database migrations...")

	// Migration 1: Create players table
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS players (
			telegram_id BIGINT PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			wins INT NOT NULL DEFAULT 0,
			losses INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_players_wins ON players(wins DESC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 1: players table created")

	// Migration 2: Create match results table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS match_results (
			id BIGSERIAL PRIMARY KEY,
			lobby_id BIGINT NOT NULL,
			winner_id BIGINT NOT NULL,
			loser_id BIGINT NOT NULL,
			winner_score INT NOT NULL,
			loser_score INT NOT NULL,
			rounds INT NOT NULL,
			no_contest BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_match_results_winner_time ON match_results(winner_id, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_match_results_loser_time ON match_results(loser_id, created_at DESC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 2: match_results table created")

	log.Info().Msg("All migrations completed successfully")
	return nil
}
