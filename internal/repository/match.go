package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"rps-duel-bot/internal/model"
)

// MatchRepository persists finished matches.
type MatchRepository struct {
	pool *pgxpool.Pool
}

// NewMatchRepository creates a new MatchRepository instance.
func NewMatchRepository(pool *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{pool: pool}
}

// Create inserts a finished match. For no-contest matches winner and loser
// ids record the two seats without crediting either.
func (r *MatchRepository) Create(ctx context.Context, rec *model.MatchRecord) (*model.MatchRecord, error) {
	const query = `
		INSERT INTO match_results (lobby_id, winner_id, loser_id, winner_score, loser_score, rounds, no_contest, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	out := *rec
	err := r.pool.QueryRow(ctx, query,
		rec.LobbyID,
		rec.WinnerID,
		rec.LoserID,
		rec.WinnerScore,
		rec.LoserScore,
		rec.Rounds,
		rec.NoContest,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create match record: %w", err)
	}

	return &out, nil
}

// RecentByPlayer returns a player's most recent matches, newest first.
func (r *MatchRepository) RecentByPlayer(ctx context.Context, telegramID int64, limit int) ([]model.MatchRecord, error) {
	const query = `
		SELECT id, lobby_id, winner_id, loser_id, winner_score, loser_score, rounds, no_contest, created_at
		FROM match_results
		WHERE winner_id = $1 OR loser_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, telegramID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var recs []model.MatchRecord
	for rows.Next() {
		var m model.MatchRecord
		if err := rows.Scan(
			&m.ID,
			&m.LobbyID,
			&m.WinnerID,
			&m.LoserID,
			&m.WinnerScore,
			&m.LoserScore,
			&m.Rounds,
			&m.NoContest,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match record: %w", err)
		}
		recs = append(recs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read matches: %w", err)
	}

	return recs, nil
}
