// Package presenter renders match notifications into human-facing message
// text. It is stateless: same kind and payload, same string.
package presenter

import (
	"fmt"
	"strings"

	"rps-duel-bot/internal/match"
)

// Mention formats a participant as a Telegram text-mention link.
func Mention(id match.UserID) string {
	return fmt.Sprintf("[player %d](tg://user?id=%d)", int64(id), int64(id))
}

func choiceEmoji(c match.Choice) string {
	switch c {
	case match.ChoiceRock:
		return "🪨"
	case match.ChoicePaper:
		return "📄"
	case match.ChoiceScissors:
		return "✂️"
	default:
		return "⌛"
	}
}

// Render produces the message body for a notification.
func Render(kind match.PayloadKind, p match.Payload) string {
	switch kind {
	case match.KindQueueJoined:
		if p.Waiting >= 2 {
			return fmt.Sprintf("⚔️ Lobby #%d is full - the match is starting!", p.Lobby)
		}
		return fmt.Sprintf("🕐 Joined lobby #%d. Waiting for an opponent... (%d/2)", p.Lobby, p.Waiting)

	case match.KindQueueLeft:
		return fmt.Sprintf("👋 Lobby #%d closed - the queue entry lapsed.", p.Lobby)

	case match.KindBanPrompt:
		if p.AwaitingOpponent {
			return "⏳ Waiting for the other player to ban..."
		}
		if p.OpponentBan != 0 {
			return fmt.Sprintf(
				"🚫 Your opponent banned %d. Pick your ban (3, 4, or 5) to set the match length.",
				p.OpponentBan)
		}
		return "🚫 Ban phase! Pick 3, 4, or 5 - together your picks decide how many wins the match takes."

	case match.KindRoundPrompt:
		var b strings.Builder
		if p.Round == 1 {
			fmt.Fprintf(&b, "🎮 The match begins! First to %d wins.\n", p.BestOf)
		}
		fmt.Fprintf(&b, "__Lobby #%d - Game %d__\n", p.Lobby, p.Round)
		fmt.Fprintf(&b, "%s  %d  |  %d  %s\n", Mention(p.Players[0]), p.Scores[0], p.Scores[1], Mention(p.Players[1]))
		b.WriteString("Make your choice!")
		return b.String()

	case match.KindChoiceConfirmed:
		if p.AwaitingOpponent {
			return fmt.Sprintf("You selected %s! Waiting for opponent...", p.Choice)
		}
		return fmt.Sprintf("You selected %s!", p.Choice)

	case match.KindRoundResult:
		return scoreline(p)

	case match.KindTimeout:
		if p.Phase == match.PhaseWaiting {
			return fmt.Sprintf("⌛ Lobby #%d expired - nobody joined in time.", p.Lobby)
		}
		return "⌛ Time ran out!\n" + scoreline(p)

	case match.KindMatchResult:
		if p.NoContest {
			return fmt.Sprintf("🏳️ Lobby #%d ends with no contest - neither player responded.", p.Lobby)
		}
		return fmt.Sprintf("🏆 Lobby #%d - %s wins the match %d:%d!",
			p.Lobby, Mention(p.Winner), maxScore(p), minScore(p))

	default:
		return ""
	}
}

// scoreline renders a per-round result with choices and running scores,
// bolding the winner.
func scoreline(p match.Payload) string {
	left := fmt.Sprintf("%s  %s  %d", Mention(p.Players[0]), choiceEmoji(p.Choices[0]), p.Scores[0])
	right := fmt.Sprintf("%d  %s  %s", p.Scores[1], choiceEmoji(p.Choices[1]), Mention(p.Players[1]))
	switch {
	case p.Outcome.Kind == match.OutcomeDraw:
		// no emphasis on a draw
	case p.Outcome.Winner == match.SideA:
		left = "**" + left + "**"
	case p.Outcome.Winner == match.SideB:
		right = "**" + right + "**"
	}
	head := fmt.Sprintf("__Lobby #%d - Game %d__", p.Lobby, p.Round)
	if p.Outcome.Kind == match.OutcomeForfeit {
		head += " (forfeit)"
	}
	return head + "\n" + left + "  |  " + right
}

func maxScore(p match.Payload) int {
	if p.Scores[0] > p.Scores[1] {
		return p.Scores[0]
	}
	return p.Scores[1]
}

func minScore(p match.Payload) int {
	if p.Scores[0] < p.Scores[1] {
		return p.Scores[0]
	}
	return p.Scores[1]
}
