// Package bot provides the Telegram bot initialization, middleware, and the
// match notifier.
package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"rps-duel-bot/internal/match"
)

const (
	// CallbackPrefix is the prefix for all match callback data
	CallbackPrefix = "rps_"
)

// EncodeCallback encodes an action and parameter into callback data.
func EncodeCallback(action string, param string) string {
	if param != "" {
		return fmt.Sprintf("%s%s_%s", CallbackPrefix, action, param)
	}
	return fmt.Sprintf("%s%s", CallbackPrefix, action)
}

// DecodeCallback decodes callback data into action and parameter.
func DecodeCallback(data string) (action string, param string) {
	if !strings.HasPrefix(data, CallbackPrefix) {
		return "", ""
	}

	content := strings.TrimPrefix(data, CallbackPrefix)
	parts := strings.SplitN(content, "_", 2)
	action = parts[0]
	if len(parts) > 1 {
		param = parts[1]
	}
	return action, param
}

// ChoiceKeyboard builds the rock/paper/scissors prompt row.
func ChoiceKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.InlineKeyboard = [][]tele.InlineButton{{
		{Text: "🪨 Rock", Data: EncodeCallback("choice", "rock")},
		{Text: "📄 Paper", Data: EncodeCallback("choice", "paper")},
		{Text: "✂️ Scissors", Data: EncodeCallback("choice", "scissors")},
	}}
	return markup
}

// BanKeyboard builds the ban-phase row. Values outside match.BanValues are
// never offered.
func BanKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	row := make([]tele.InlineButton, 0, len(match.BanValues))
	for _, v := range match.BanValues {
		row = append(row, tele.InlineButton{
			Text: fmt.Sprintf("%d", v),
			Data: EncodeCallback("ban", fmt.Sprintf("%d", v)),
		})
	}
	markup.InlineKeyboard = [][]tele.InlineButton{row}
	return markup
}
