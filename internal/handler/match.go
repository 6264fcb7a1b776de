// Package handler provides Telegram bot command and callback handlers.
package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"rps-duel-bot/internal/match"
	"rps-duel-bot/internal/presenter"
)

// MatchHandler handles queueing, leaving, and the choice/ban callbacks.
type MatchHandler struct {
	engine *match.Engine
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(engine *match.Engine) *MatchHandler {
	return &MatchHandler{engine: engine}
}

// HandleQueue handles the /rps command.
// Usage: /rps [minutes] - minutes bounds the queue wait (1-60).
func (h *MatchHandler) HandleQueue(c tele.Context) error {
	sender := c.Sender()
	chat := c.Chat()
	if sender == nil || chat == nil {
		return nil
	}

	var wait time.Duration
	if args := c.Args(); len(args) > 0 {
		minutes, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || minutes < 1 || minutes > 60 {
			return c.Reply("Usage: /rps [minutes 1-60]")
		}
		wait = time.Duration(minutes) * time.Minute
	}

	origin := match.Origin{
		ChatID:  chat.ID,
		Private: chat.Type == tele.ChatPrivate,
	}

	lobbyID, count, err := h.engine.Join(match.UserID(sender.ID), origin, wait)
	if err != nil {
		if errors.Is(err, match.ErrAlreadyQueued) {
			return c.Reply("You are already in a lobby.")
		}
		log.Error().Err(err).Int64("user_id", sender.ID).Msg("join failed")
		return c.Reply("❌ Could not join the queue, please try again later")
	}

	p := match.Payload{Lobby: lobbyID, Waiting: count}
	return c.Reply(presenter.Render(match.KindQueueJoined, p), tele.ModeMarkdown)
}

// HandleLeave handles the /leave command.
func (h *MatchHandler) HandleLeave(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	err := h.engine.Leave(match.UserID(sender.ID))
	switch {
	case err == nil:
		return c.Reply("👋 You left the queue.")
	case errors.Is(err, match.ErrNotQueued):
		return c.Reply("You are not in a lobby.")
	case errors.Is(err, match.ErrAlreadyMatched):
		return c.Reply("You are already in a match.")
	default:
		log.Error().Err(err).Int64("user_id", sender.ID).Msg("leave failed")
		return c.Reply("❌ Could not leave the queue, please try again later")
	}
}

// HandleCallback routes decoded choice/ban button presses into the engine.
// Rejections come back as callback alerts, never silence.
func (h *MatchHandler) HandleCallback(c tele.Context, action, param string) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	switch action {
	case "choice":
		choice, ok := match.ParseChoice(param)
		if !ok {
			return c.Respond(&tele.CallbackResponse{Text: "Unknown choice"})
		}
		return h.respond(c, h.engine.SubmitChoice(match.UserID(sender.ID), choice))

	case "ban":
		value, err := strconv.Atoi(param)
		if err != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Unknown ban value"})
		}
		return h.respond(c, h.engine.SubmitBan(match.UserID(sender.ID), value))

	default:
		log.Debug().Str("action", action).Msg("unhandled callback")
		return c.Respond(&tele.CallbackResponse{})
	}
}

// respond maps an engine rejection to a callback alert.
func (h *MatchHandler) respond(c tele.Context, err error) error {
	switch {
	case err == nil:
		return c.Respond(&tele.CallbackResponse{})
	case errors.Is(err, match.ErrNotQueued):
		return c.Respond(&tele.CallbackResponse{Text: "You are not in a lobby."})
	case errors.Is(err, match.ErrNoBanPhase):
		return c.Respond(&tele.CallbackResponse{Text: "No ban negotiation in progress."})
	case errors.Is(err, match.ErrNoActiveRound):
		return c.Respond(&tele.CallbackResponse{Text: "No round in progress."})
	case errors.Is(err, match.ErrInvalidBan):
		return c.Respond(&tele.CallbackResponse{Text: "Ban must be 3, 4, or 5."})
	case errors.Is(err, match.ErrInvalidChoice):
		return c.Respond(&tele.CallbackResponse{Text: "Pick rock, paper, or scissors."})
	default:
		log.Error().Err(err).Msg("callback handling failed")
		return c.Respond(&tele.CallbackResponse{Text: "Something went wrong."})
	}
}
