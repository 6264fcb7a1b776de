// Package service provides business logic implementations.
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"rps-duel-bot/internal/match"
	"rps-duel-bot/internal/model"
	"rps-duel-bot/internal/repository"
)

// AccountService handles player registration, profiles, and the leaderboard.
type AccountService struct {
	playerRepo *repository.PlayerRepository
	matchRepo  *repository.MatchRepository
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(
	playerRepo *repository.PlayerRepository,
	matchRepo *repository.MatchRepository,
) *AccountService {
	return &AccountService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
	}
}

// Register ensures a player row exists, creating one if necessary.
// Returns the player and whether it was newly created.
func (s *AccountService) Register(ctx context.Context, telegramID int64, username string) (*model.Player, bool, error) {
	p, created, err := s.playerRepo.GetOrCreate(ctx, telegramID, username)
	if err != nil {
		return nil, false, fmt.Errorf("failed to register player: %w", err)
	}

	// Refresh the display name if it changed
	if !created && username != "" && p.Username != username {
		if err := s.playerRepo.UpdateUsername(ctx, telegramID, username); err != nil {
			// Non-fatal, the row still exists
			log.Warn().Err(err).Int64("user_id", telegramID).Msg("failed to refresh username")
		}
		p.Username = username
	}

	return p, created, nil
}

// Profile returns a player's stats together with their recent matches.
func (s *AccountService) Profile(ctx context.Context, telegramID int64) (*model.Player, []model.MatchRecord, error) {
	p, err := s.playerRepo.GetByID(ctx, telegramID)
	if err != nil {
		return nil, nil, err
	}

	recent, err := s.matchRepo.RecentByPlayer(ctx, telegramID, 5)
	if err != nil {
		return nil, nil, err
	}

	return p, recent, nil
}

// Top returns the leaderboard, best first.
func (s *AccountService) Top(ctx context.Context, limit int) ([]model.Player, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.playerRepo.Top(ctx, limit)
}

// RecordMatch persists a completed match and updates both players' tallies.
// Failures are logged, never propagated to the caller's state transition:
// the match already finished by the time this runs.
func (s *AccountService) RecordMatch(ctx context.Context, p match.Payload) {
	rec := &model.MatchRecord{
		LobbyID:   int64(p.Lobby),
		Rounds:    p.Round,
		NoContest: p.NoContest,
	}

	winner, loser := p.Players[0], p.Players[1]
	winScore, loseScore := p.Scores[0], p.Scores[1]
	if p.Winner != 0 && p.Winner != winner {
		winner, loser = loser, winner
		winScore, loseScore = loseScore, winScore
	}
	rec.WinnerID = int64(winner)
	rec.LoserID = int64(loser)
	rec.WinnerScore = winScore
	rec.LoserScore = loseScore

	if _, err := s.matchRepo.Create(ctx, rec); err != nil {
		log.Error().Err(err).Int64("lobby_id", rec.LobbyID).Msg("failed to persist match result")
		return
	}

	if !p.NoContest {
		if err := s.playerRepo.RecordResult(ctx, rec.WinnerID, rec.LoserID); err != nil {
			log.Error().Err(err).Int64("lobby_id", rec.LobbyID).Msg("failed to update player tallies")
		}
	}
}
