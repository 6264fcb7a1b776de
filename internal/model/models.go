// Package model defines the data models for the RPS duel bot.
package model

import "time"

// Player represents a registered participant identity. The match engine
// never touches these rows; they back the /register, /stats, and /top
// surface and the match history.
type Player struct {
	TelegramID int64     `db:"telegram_id"`
	Username   string    `db:"username"`
	Wins       int       `db:"wins"`
	Losses     int       `db:"losses"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// MatchRecord is one finished match. NoContest marks double-forfeit matches,
// which credit neither player.
type MatchRecord struct {
	ID          int64     `db:"id"`
	LobbyID     int64     `db:"lobby_id"`
	WinnerID    int64     `db:"winner_id"`
	LoserID     int64     `db:"loser_id"`
	WinnerScore int       `db:"winner_score"`
	LoserScore  int       `db:"loser_score"`
	Rounds      int       `db:"rounds"`
	NoContest   bool      `db:"no_contest"`
	CreatedAt   time.Time `db:"created_at"`
}
