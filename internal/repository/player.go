// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rps-duel-bot/internal/model"
)

// Common errors for repository operations.
var (
	ErrPlayerNotFound = errors.New("player not found")
)

// PlayerRepository handles player identity persistence.
type PlayerRepository struct {
	pool *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository instance.
func NewPlayerRepository(pool *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{pool: pool}
}

// Create registers a new player with the given Telegram ID and username.
func (r *PlayerRepository) Create(ctx context.Context, telegramID int64, username string) (*model.Player, error) {
	const query = `
		INSERT INTO players (telegram_id, username, wins, losses, created_at, updated_at)
		VALUES ($1, $2, 0, 0, NOW(), NOW())
		RETURNING telegram_id, username, wins, losses, created_at, updated_at
	`

	var p model.Player
	err := r.pool.QueryRow(ctx, query, telegramID, username).Scan(
		&p.TelegramID,
		&p.Username,
		&p.Wins,
		&p.Losses,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return &p, nil
}

// GetByID retrieves a player by their Telegram ID.
// Returns ErrPlayerNotFound if the player does not exist.
func (r *PlayerRepository) GetByID(ctx context.Context, telegramID int64) (*model.Player, error) {
	const query = `
		SELECT telegram_id, username, wins, losses, created_at, updated_at
		FROM players
		WHERE telegram_id = $1
	`

	var p model.Player
	err := r.pool.QueryRow(ctx, query, telegramID).Scan(
		&p.TelegramID,
		&p.Username,
		&p.Wins,
		&p.Losses,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return &p, nil
}

// GetOrCreate retrieves a player by Telegram ID, registering one if it
// doesn't exist. The bool reports whether a new row was created.
func (r *PlayerRepository) GetOrCreate(ctx context.Context, telegramID int64, username string) (*model.Player, bool, error) {
	// Try to get existing player first
	p, err := r.GetByID(ctx, telegramID)
	if err == nil {
		return p, false, nil
	}
	if !errors.Is(err, ErrPlayerNotFound) {
		return nil, false, err
	}

	// Player doesn't exist, create new one
	p, err = r.Create(ctx, telegramID, username)
	if err != nil {
		// Handle race condition: another request might have created the row
		p, err = r.GetByID(ctx, telegramID)
		if err != nil {
			return nil, false, err
		}
		return p, false, nil
	}

	return p, true, nil
}

// UpdateUsername refreshes a player's display name.
func (r *PlayerRepository) UpdateUsername(ctx context.Context, telegramID int64, username string) error {
	const query = `
		UPDATE players
		SET username = $2, updated_at = NOW()
		WHERE telegram_id = $1
	`

	tag, err := r.pool.Exec(ctx, query, telegramID, username)
	if err != nil {
		return fmt.Errorf("failed to update username: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// RecordResult bumps the winner's and loser's tallies in one statement pair.
func (r *PlayerRepository) RecordResult(ctx context.Context, winnerID, loserID int64) error {
	const winQuery = `
		UPDATE players SET wins = wins + 1, updated_at = NOW() WHERE telegram_id = $1
	`
	const lossQuery = `
		UPDATE players SET losses = losses + 1, updated_at = NOW() WHERE telegram_id = $1
	`

	if _, err := r.pool.Exec(ctx, winQuery, winnerID); err != nil {
		return fmt.Errorf("failed to record win: %w", err)
	}
	if _, err := r.pool.Exec(ctx, lossQuery, loserID); err != nil {
		return fmt.Errorf("failed to record loss: %w", err)
	}
	return nil
}

// Top returns up to limit players ordered by win count.
func (r *PlayerRepository) Top(ctx context.Context, limit int) ([]model.Player, error) {
	const query = `
		SELECT telegram_id, username, wins, losses, created_at, updated_at
		FROM players
		ORDER BY wins DESC, losses ASC, telegram_id ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top players: %w", err)
	}
	defer rows.Close()

	var players []model.Player
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(
			&p.TelegramID,
			&p.Username,
			&p.Wins,
			&p.Losses,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read top players: %w", err)
	}

	return players, nil
}
