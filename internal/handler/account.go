package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"rps-duel-bot/internal/repository"
	"rps-duel-bot/internal/service"
)

// AccountHandler handles registration and stats commands.
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func handlerContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// HandleRegister handles the /register command.
func (h *AccountHandler) HandleRegister(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	ctx, cancel := handlerContext()
	defer cancel()

	p, created, err := h.accounts.Register(ctx, sender.ID, sender.Username)
	if err != nil {
		log.Error().Err(err).Int64("user_id", sender.ID).Msg("registration failed")
		return c.Reply("Registration failed, please try again later.")
	}

	if created {
		return c.Reply(fmt.Sprintf("✅ Registered! Welcome, %s.", p.Username))
	}
	return c.Reply("You are already registered.")
}

// HandleStats handles the /stats command.
func (h *AccountHandler) HandleStats(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	ctx, cancel := handlerContext()
	defer cancel()

	p, recent, err := h.accounts.Profile(ctx, sender.ID)
	if err != nil {
		if errors.Is(err, repository.ErrPlayerNotFound) {
			return c.Reply("You are not registered yet. Use /register first.")
		}
		log.Error().Err(err).Int64("user_id", sender.ID).Msg("stats lookup failed")
		return c.Reply("Could not load your stats, please try again later.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s - %d wins / %d losses\n", p.Username, p.Wins, p.Losses)
	for _, m := range recent {
		switch {
		case m.NoContest:
			fmt.Fprintf(&b, "• Lobby #%d: no contest\n", m.LobbyID)
		case m.WinnerID == sender.ID:
			fmt.Fprintf(&b, "• Lobby #%d: won %d:%d\n", m.LobbyID, m.WinnerScore, m.LoserScore)
		default:
			fmt.Fprintf(&b, "• Lobby #%d: lost %d:%d\n", m.LobbyID, m.LoserScore, m.WinnerScore)
		}
	}
	return c.Reply(b.String())
}

// HandleTop handles the /top command.
func (h *AccountHandler) HandleTop(c tele.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()

	players, err := h.accounts.Top(ctx, 10)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard lookup failed")
		return c.Reply("Could not load the leaderboard, please try again later.")
	}
	if len(players) == 0 {
		return c.Reply("No registered players yet.")
	}

	var b strings.Builder
	b.WriteString("🏆 Leaderboard\n")
	for i, p := range players {
		fmt.Fprintf(&b, "%d. %s - %d wins / %d losses\n", i+1, p.Username, p.Wins, p.Losses)
	}
	return c.Reply(b.String())
}
