package bot

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"rps-duel-bot/internal/match"
	"rps-duel-bot/internal/presenter"
	"rps-duel-bot/internal/service"
)

// Notifier delivers match engine notifications over Telegram. Delivery is
// best-effort: send errors are logged and dropped, the engine's state is
// already final. Completed matches are additionally handed to the account
// service for persistence, off the send path.
type Notifier struct {
	bot      *tele.Bot
	accounts *service.AccountService
}

// NewNotifier creates a Notifier. accounts may be nil when match history is
// not wired up (tests).
func NewNotifier(bot *tele.Bot, accounts *service.AccountService) *Notifier {
	return &Notifier{bot: bot, accounts: accounts}
}

// SendToParticipant delivers a rendered payload by direct message, attaching
// the keyboard the prompt kind requires.
func (n *Notifier) SendToParticipant(id match.UserID, kind match.PayloadKind, p match.Payload) {
	n.record(id, kind, p)

	to := &tele.User{ID: int64(id)}
	text := presenter.Render(kind, p)
	if text == "" {
		return
	}

	opts := []interface{}{tele.ModeMarkdown}
	switch {
	case kind == match.KindRoundPrompt:
		opts = append(opts, ChoiceKeyboard())
	case kind == match.KindBanPrompt && !p.AwaitingOpponent:
		opts = append(opts, BanKeyboard())
	}

	if _, err := n.bot.Send(to, text, opts...); err != nil {
		log.Warn().
			Err(err).
			Int64("user_id", int64(id)).
			Stringer("kind", kind).
			Msg("failed to deliver participant notification")
	}
}

// SendToOrigin posts a rendered payload back to the chat a participant
// queued from.
func (n *Notifier) SendToOrigin(origin match.Origin, kind match.PayloadKind, p match.Payload) {
	text := presenter.Render(kind, p)
	if text == "" {
		return
	}

	if _, err := n.bot.Send(&tele.Chat{ID: origin.ChatID}, text, tele.ModeMarkdown); err != nil {
		log.Warn().
			Err(err).
			Int64("chat_id", origin.ChatID).
			Stringer("kind", kind).
			Msg("failed to deliver origin notification")
	}
}

// record persists match results asynchronously. A finished match notifies
// both seats with the same payload, so only the first seat's delivery
// triggers the recorder.
func (n *Notifier) record(id match.UserID, kind match.PayloadKind, p match.Payload) {
	if n.accounts == nil || kind != match.KindMatchResult || id != p.Players[0] {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		n.accounts.RecordMatch(ctx, p)
	}()
}
