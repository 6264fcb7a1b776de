package match

// beats maps each choice to the choice it defeats.
var beats = map[Choice]Choice{
	ChoiceRock:     ChoiceScissors,
	ChoiceScissors: ChoicePaper,
	ChoicePaper:    ChoiceRock,
}

// ResolveRound adjudicates one round from the two seats' choices.
// Rock beats Scissors, Scissors beats Paper, Paper beats Rock; identical
// choices draw. If exactly one side is empty the other side wins by forfeit,
// and if both are empty the round is a double forfeit.
func ResolveRound(a, b Choice) Outcome {
	switch {
	case a == ChoiceNone && b == ChoiceNone:
		return Outcome{Kind: OutcomeDoubleForfeit, Winner: SideNone}
	case b == ChoiceNone:
		return Outcome{Kind: OutcomeForfeit, Winner: SideA}
	case a == ChoiceNone:
		return Outcome{Kind: OutcomeForfeit, Winner: SideB}
	case a == b:
		return Outcome{Kind: OutcomeDraw, Winner: SideNone}
	case beats[a] == b:
		return Outcome{Kind: OutcomeWin, Winner: SideA}
	default:
		return Outcome{Kind: OutcomeWin, Winner: SideB}
	}
}

// BanValues are the submissions accepted during the ban phase.
var BanValues = []int{3, 4, 5}

// ValidBan reports whether v is an accepted ban submission.
func ValidBan(v int) bool {
	return v >= 3 && v <= 5
}

// BestOfTable computes the winning score from both ban submissions. It is
// injected into the engine so the mapping can change without touching the
// state machine.
type BestOfTable func(banA, banB int) int

// DefaultBestOf is the production lookup: ban sum 7 plays first-to-5, sum 8
// first-to-4, anything else first-to-3.
func DefaultBestOf(banA, banB int) int {
	switch banA + banB {
	case 7:
		return 5
	case 8:
		return 4
	default:
		return 3
	}
}
