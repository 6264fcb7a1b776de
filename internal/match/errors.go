package match

import "errors"

// Participant-facing rejections. These are recovered locally and rendered as
// a reply to the acting participant; they are never logged as faults.
var (
	// ErrAlreadyQueued is returned by Join when the identity is already in
	// a lobby.
	ErrAlreadyQueued = errors.New("already in a lobby")

	// ErrNotQueued is returned when an operation targets an identity that is
	// not in any lobby.
	ErrNotQueued = errors.New("not in a lobby")

	// ErrAlreadyMatched is returned by Leave when the lobby is in progress;
	// leaving a live match is a forfeit, not a leave.
	ErrAlreadyMatched = errors.New("already in a match")

	// ErrInvalidBan is returned for ban values outside {3, 4, 5}.
	ErrInvalidBan = errors.New("ban value must be 3, 4, or 5")

	// ErrNoBanPhase is returned when a ban is submitted outside the
	// negotiation phase.
	ErrNoBanPhase = errors.New("no ban negotiation in progress")

	// ErrNoActiveRound is returned when a choice is submitted while no
	// round is in progress.
	ErrNoActiveRound = errors.New("no round in progress")

	// ErrInvalidChoice is returned for choices outside rock/paper/scissors.
	ErrInvalidChoice = errors.New("invalid choice")
)
