// Package match implements the matchmaking and match-lifecycle engine for
// two-player rock-paper-scissors played through a chat interface. It owns the
// registry of active lobbies, the pairing rules, round adjudication, the
// best-of negotiation ("ban" phase), and the timers that force progress when
// a participant goes silent.
package match

import "fmt"

// UserID is an opaque stable participant identity. The engine never owns
// identity records, only references.
type UserID int64

// LobbyID identifies a lobby. IDs are assigned monotonically and are unique
// among live lobbies.
type LobbyID uint64

// Origin records where a participant's join request came from, so results
// can be routed back to that chat. Immutable after join.
type Origin struct {
	ChatID  int64
	Private bool
}

// Choice is one participant's throw for the current round. ChoiceNone means
// "not yet responded this round".
type Choice int

const (
	ChoiceNone Choice = iota
	ChoiceRock
	ChoicePaper
	ChoiceScissors
)

// String returns the display name of the choice.
func (c Choice) String() string {
	switch c {
	case ChoiceRock:
		return "Rock"
	case ChoicePaper:
		return "Paper"
	case ChoiceScissors:
		return "Scissors"
	default:
		return "None"
	}
}

// Valid reports whether c is a playable choice.
func (c Choice) Valid() bool {
	return c == ChoiceRock || c == ChoicePaper || c == ChoiceScissors
}

// ParseChoice maps a lower-case choice name to a Choice.
func ParseChoice(s string) (Choice, bool) {
	switch s {
	case "rock":
		return ChoiceRock, true
	case "paper":
		return ChoicePaper, true
	case "scissors":
		return ChoiceScissors, true
	default:
		return ChoiceNone, false
	}
}

// Side identifies one of the two seats in a lobby.
type Side int

const (
	SideA Side = 0
	SideB Side = 1
	// SideNone marks outcomes with no winning seat.
	SideNone Side = -1
)

// Opponent returns the other seat.
func (s Side) Opponent() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// OutcomeKind classifies a round resolution.
type OutcomeKind int

const (
	// OutcomeWin means the winning side threw the stronger choice.
	OutcomeWin OutcomeKind = iota
	// OutcomeDraw means both sides threw the same choice.
	OutcomeDraw
	// OutcomeForfeit means exactly one side responded; that side wins.
	OutcomeForfeit
	// OutcomeDoubleForfeit means neither side responded; the match ends as
	// a no-contest with no winner credited.
	OutcomeDoubleForfeit
)

// Outcome is the resolution of a single round.
type Outcome struct {
	Kind   OutcomeKind
	Winner Side // SideNone for draws and double forfeits
}

// String renders the outcome for logging.
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeWin:
		return fmt.Sprintf("win(side %d)", o.Winner)
	case OutcomeDraw:
		return "draw"
	case OutcomeForfeit:
		return fmt.Sprintf("forfeit(side %d wins)", o.Winner)
	default:
		return "double forfeit"
	}
}

// Phase is a lobby's position in its lifecycle.
type Phase int

const (
	// PhaseWaiting means the lobby holds a single participant waiting for
	// an opponent.
	PhaseWaiting Phase = iota
	// PhaseBan means both participants are present and negotiating the
	// best-of target.
	PhaseBan
	// PhaseRound means a round is in progress.
	PhaseRound
	// PhaseDone means the match completed; the lobby is about to be removed.
	PhaseDone
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseBan:
		return "ban"
	case PhaseRound:
		return "round"
	default:
		return "done"
	}
}

// slot is one participant's state within a lobby. The timer handle is the
// queue-expiry timer while waiting; it is owned exclusively by this slot.
type slot struct {
	id       UserID
	origin   Origin
	choice   Choice
	ban      int // 0 until submitted; one of 3, 4, 5 afterwards
	score    int
	timer    Timer
	timerGen uint64
}

// Lobby is a matchmaking/match unit holding zero to two participant slots.
// All access goes through the Registry's lock; Lobby has no lock of its own.
type Lobby struct {
	id     LobbyID
	phase  Phase
	round  int
	bestOf int // 0 until the ban phase fixes it
	slots  []*slot
	// lobby-level timer: ban-phase or round deadline
	timer    Timer
	timerGen uint64
}

// ID returns the lobby id.
func (l *Lobby) ID() LobbyID { return l.id }

// Phase returns the lobby's current lifecycle phase.
func (l *Lobby) Phase() Phase { return l.phase }

// Round returns the current round number, starting at 1.
func (l *Lobby) Round() int { return l.round }

// BestOf returns the negotiated winning score, 0 if not yet fixed.
func (l *Lobby) BestOf() int { return l.bestOf }

// Players returns the identities currently seated, in seat order.
func (l *Lobby) Players() []UserID {
	ids := make([]UserID, 0, len(l.slots))
	for _, s := range l.slots {
		ids = append(ids, s.id)
	}
	return ids
}

// Scores returns both seats' scores. Missing seats read as zero.
func (l *Lobby) Scores() [2]int {
	var sc [2]int
	for i, s := range l.slots {
		if i < 2 {
			sc[i] = s.score
		}
	}
	return sc
}

// seatOf returns the seat index of the given identity, or SideNone.
func (l *Lobby) seatOf(id UserID) Side {
	for i, s := range l.slots {
		if s.id == id {
			return Side(i)
		}
	}
	return SideNone
}

// full reports whether both seats are taken.
func (l *Lobby) full() bool { return len(l.slots) == 2 }
