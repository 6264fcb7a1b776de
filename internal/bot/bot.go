package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"rps-duel-bot/internal/config"
	"rps-duel-bot/internal/handler"
	"rps-duel-bot/internal/match"
	"rps-duel-bot/internal/service"
)

// Bot wraps the telebot instance with application dependencies.
type Bot struct {
	bot    *tele.Bot
	cfg    *config.Config
	engine *match.Engine

	// Handlers
	matchHandler   *handler.MatchHandler
	accountHandler *handler.AccountHandler
}

// Dependencies holds all the dependencies needed by the bot handlers.
type Dependencies struct {
	Config         *config.Config
	Engine         *match.Engine
	AccountService *service.AccountService
}

// NewClient creates the underlying telebot instance. It is separate from New
// so the match notifier can wrap it before the engine is constructed.
func NewClient(cfg *config.Config) (*tele.Bot, error) {
	if cfg.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	pref := tele.Settings{
		Token:  cfg.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	teleBot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return teleBot, nil
}

// New wires handlers and middleware onto an existing telebot instance.
func New(teleBot *tele.Bot, deps *Dependencies) *Bot {
	b := &Bot{
		bot:    teleBot,
		cfg:    deps.Config,
		engine: deps.Engine,
	}

	// Initialize handlers
	b.matchHandler = handler.NewMatchHandler(deps.Engine)
	b.accountHandler = handler.NewAccountHandler(deps.AccountService)

	// Register middleware
	b.registerMiddleware()

	// Register handlers
	b.registerHandlers()

	return b
}

// registerMiddleware registers all middleware.
func (b *Bot) registerMiddleware() {
	b.bot.Use(WhitelistMiddleware(b.cfg))
	b.bot.Use(LoggingMiddleware())
	b.bot.Use(RecoveryMiddleware())
}

// registerHandlers registers all command and callback handlers.
func (b *Bot) registerHandlers() {
	// Matchmaking
	b.bot.Handle("/rps", b.matchHandler.HandleQueue)
	b.bot.Handle("/leave", b.matchHandler.HandleLeave)

	// Account
	b.bot.Handle("/register", b.accountHandler.HandleRegister)
	b.bot.Handle("/stats", b.accountHandler.HandleStats)
	b.bot.Handle("/top", b.accountHandler.HandleTop)

	// Admin
	b.bot.Handle("/lobbies", b.handleLobbies)

	// Choice and ban buttons
	b.bot.Handle(tele.OnCallback, b.handleCallback)
}

// handleCallback decodes callback data and routes it to the match handler.
func (b *Bot) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}

	// Telebot v3 may add a \f prefix to callback data
	data := strings.TrimPrefix(callback.Data, "\f")
	action, param := DecodeCallback(data)
	if action == "" {
		log.Debug().Str("raw_data", callback.Data).Msg("ignoring foreign callback")
		return c.Respond(&tele.CallbackResponse{})
	}

	return b.matchHandler.HandleCallback(c, action, param)
}

// handleLobbies reports the number of active lobbies. Admin-only; silently
// ignored for everyone else.
func (b *Bot) handleLobbies(c tele.Context) error {
	sender := c.Sender()
	if sender == nil || !b.cfg.IsAdmin(sender.ID) {
		return nil
	}
	return c.Reply(fmt.Sprintf("Active lobbies: %d", b.engine.Registry().Len()))
}

// Start starts the bot polling.
func (b *Bot) Start() {
	log.Info().Msg("Starting bot...")
	b.bot.Start()
}

// Stop stops the bot gracefully.
func (b *Bot) Stop() {
	log.Info().Msg("Stopping bot...")
	b.bot.Stop()
}
