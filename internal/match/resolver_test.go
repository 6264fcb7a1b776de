package match

import "testing"

// TestResolveRound tests round adjudication across the full rule table.
func TestResolveRound(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Choice
		expected Outcome
	}{
		{"rock beats scissors", ChoiceRock, ChoiceScissors, Outcome{OutcomeWin, SideA}},
		{"scissors lose to rock", ChoiceScissors, ChoiceRock, Outcome{OutcomeWin, SideB}},
		{"scissors beat paper", ChoiceScissors, ChoicePaper, Outcome{OutcomeWin, SideA}},
		{"paper loses to scissors", ChoicePaper, ChoiceScissors, Outcome{OutcomeWin, SideB}},
		{"paper beats rock", ChoicePaper, ChoiceRock, Outcome{OutcomeWin, SideA}},
		{"rock loses to paper", ChoiceRock, ChoicePaper, Outcome{OutcomeWin, SideB}},
		{"rock draw", ChoiceRock, ChoiceRock, Outcome{OutcomeDraw, SideNone}},
		{"paper draw", ChoicePaper, ChoicePaper, Outcome{OutcomeDraw, SideNone}},
		{"scissors draw", ChoiceScissors, ChoiceScissors, Outcome{OutcomeDraw, SideNone}},
		{"only A responded", ChoiceRock, ChoiceNone, Outcome{OutcomeForfeit, SideA}},
		{"only B responded", ChoiceNone, ChoiceScissors, Outcome{OutcomeForfeit, SideB}},
		{"neither responded", ChoiceNone, ChoiceNone, Outcome{OutcomeDoubleForfeit, SideNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResolveRound(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("ResolveRound(%v, %v) = %v, want %v", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

// TestDefaultBestOf tests the ban sum lookup.
func TestDefaultBestOf(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int
		expected int
	}{
		{"3+4 plays first to 5", 3, 4, 5},
		{"4+3 plays first to 5", 4, 3, 5},
		{"4+4 plays first to 4", 4, 4, 4},
		{"3+5 plays first to 4", 3, 5, 4},
		{"3+3 plays first to 3", 3, 3, 3},
		{"5+3 plays first to 4", 5, 3, 4},
		{"5+4 plays first to 3", 5, 4, 3},
		{"5+5 plays first to 3", 5, 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultBestOf(tt.a, tt.b); got != tt.expected {
				t.Errorf("DefaultBestOf(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

// TestValidBan tests the accepted ban submissions.
func TestValidBan(t *testing.T) {
	for _, v := range BanValues {
		if !ValidBan(v) {
			t.Errorf("ValidBan(%d) = false, want true", v)
		}
	}
	for _, v := range []int{0, 1, 2, 6, -3, 100} {
		if ValidBan(v) {
			t.Errorf("ValidBan(%d) = true, want false", v)
		}
	}
}
