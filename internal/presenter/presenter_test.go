package presenter

import (
	"strings"
	"testing"

	"rps-duel-bot/internal/match"
)

func TestRender(t *testing.T) {
	base := match.Payload{
		Lobby:   7,
		Round:   2,
		BestOf:  5,
		Players: [2]match.UserID{100, 200},
		Scores:  [2]int{1, 3},
		Choices: [2]match.Choice{match.ChoiceRock, match.ChoicePaper},
	}

	tests := []struct {
		name     string
		kind     match.PayloadKind
		mutate   func(p *match.Payload)
		contains []string
		excludes []string
	}{
		{
			name:     "queue joined waiting",
			kind:     match.KindQueueJoined,
			mutate:   func(p *match.Payload) { p.Waiting = 1 },
			contains: []string{"#7", "1/2"},
		},
		{
			name:     "queue joined full",
			kind:     match.KindQueueJoined,
			mutate:   func(p *match.Payload) { p.Waiting = 2 },
			contains: []string{"#7", "starting"},
		},
		{
			name:     "ban prompt first banner",
			kind:     match.KindBanPrompt,
			contains: []string{"3", "4", "5"},
			excludes: []string{"Waiting"},
		},
		{
			name:     "ban prompt shows standing ban",
			kind:     match.KindBanPrompt,
			mutate:   func(p *match.Payload) { p.OpponentBan = 4 },
			contains: []string{"banned 4"},
		},
		{
			name:     "ban prompt awaiting",
			kind:     match.KindBanPrompt,
			mutate:   func(p *match.Payload) { p.AwaitingOpponent = true },
			contains: []string{"Waiting"},
		},
		{
			name:     "first round prompt announces length",
			kind:     match.KindRoundPrompt,
			mutate:   func(p *match.Payload) { p.Round = 1 },
			contains: []string{"First to 5", "Game 1"},
		},
		{
			name:     "later round prompt skips the banner",
			kind:     match.KindRoundPrompt,
			contains: []string{"Game 2"},
			excludes: []string{"First to"},
		},
		{
			name:     "choice confirmed awaiting",
			kind:     match.KindChoiceConfirmed,
			mutate:   func(p *match.Payload) { p.Choice = match.ChoiceRock; p.AwaitingOpponent = true },
			contains: []string{"Rock", "Waiting"},
		},
		{
			name: "round result bolds the winner",
			kind: match.KindRoundResult,
			mutate: func(p *match.Payload) {
				p.Outcome = match.Outcome{Kind: match.OutcomeWin, Winner: match.SideB}
			},
			contains: []string{"**", "Game 2"},
		},
		{
			name: "draw result stays plain",
			kind: match.KindRoundResult,
			mutate: func(p *match.Payload) {
				p.Outcome = match.Outcome{Kind: match.OutcomeDraw, Winner: match.SideNone}
			},
			excludes: []string{"**"},
		},
		{
			name: "forfeit round is labelled",
			kind: match.KindTimeout,
			mutate: func(p *match.Payload) {
				p.Phase = match.PhaseRound
				p.Outcome = match.Outcome{Kind: match.OutcomeForfeit, Winner: match.SideA}
			},
			contains: []string{"forfeit", "Time ran out"},
		},
		{
			name:     "queue expiry",
			kind:     match.KindTimeout,
			mutate:   func(p *match.Payload) { p.Phase = match.PhaseWaiting },
			contains: []string{"expired"},
		},
		{
			name: "match result names winner and score",
			kind: match.KindMatchResult,
			mutate: func(p *match.Payload) {
				p.Winner = 200
				p.Scores = [2]int{1, 5}
			},
			contains: []string{"wins the match 5:1", "tg://user?id=200"},
		},
		{
			name:     "no contest",
			kind:     match.KindMatchResult,
			mutate:   func(p *match.Payload) { p.NoContest = true },
			contains: []string{"no contest"},
			excludes: []string{"wins"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			if tt.mutate != nil {
				tt.mutate(&p)
			}
			got := Render(tt.kind, p)
			if got == "" {
				t.Fatal("Render returned an empty message")
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Render(%v) = %q, missing %q", tt.kind, got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("Render(%v) = %q, must not contain %q", tt.kind, got, bad)
				}
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	p := match.Payload{Lobby: 3, Round: 1, BestOf: 3, Players: [2]match.UserID{1, 2}}
	if Render(match.KindRoundPrompt, p) != Render(match.KindRoundPrompt, p) {
		t.Error("same payload rendered differently")
	}
}

func TestMention(t *testing.T) {
	got := Mention(42)
	if !strings.Contains(got, "tg://user?id=42") {
		t.Errorf("Mention(42) = %q, missing the user link", got)
	}
}
