package match

import (
	"errors"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultQueueWait is how long a lone participant waits for an opponent
	// before the queue entry lapses.
	DefaultQueueWait = 5 * time.Minute
	// MaxQueueWait caps participant-supplied queue waits.
	MaxQueueWait = 60 * time.Minute
	// DefaultRoundWait is the deadline for a ban submission or a round.
	DefaultRoundWait = 30 * time.Second
)

// errInvariant marks a state violation that aborts the single operation.
var errInvariant = errors.New("lobby state invariant violated")

// Config holds engine construction parameters. Zero fields take defaults;
// a nil Notifier drops all notifications (useful in tests).
type Config struct {
	QueueWait time.Duration
	RoundWait time.Duration
	Clock     Clock
	Notifier  Notifier
	BestOf    BestOfTable
}

// Engine is the matchmaking service, round controller, and timeout
// supervisor over one Registry. Every public operation acquires the registry
// lock exactly once, mutates, queues notifications, and dispatches them
// after release. The engine itself performs no I/O.
type Engine struct {
	reg       *Registry
	clock     Clock
	notifier  Notifier
	bestOf    BestOfTable
	queueWait time.Duration
	roundWait time.Duration
}

// NewEngine creates an engine with its own empty registry.
func NewEngine(cfg *Config) *Engine {
	e := &Engine{
		reg:       NewRegistry(),
		clock:     cfg.Clock,
		notifier:  cfg.Notifier,
		bestOf:    cfg.BestOf,
		queueWait: cfg.QueueWait,
		roundWait: cfg.RoundWait,
	}
	if e.clock == nil {
		e.clock = SystemClock()
	}
	if e.bestOf == nil {
		e.bestOf = DefaultBestOf
	}
	if e.queueWait <= 0 {
		e.queueWait = DefaultQueueWait
	}
	if e.roundWait <= 0 {
		e.roundWait = DefaultRoundWait
	}
	return e
}

// Registry exposes the engine's session registry for read-side callers.
func (e *Engine) Registry() *Registry { return e.reg }

// Join places the identity into an open lobby, creating one if none exists,
// and returns the lobby id and its occupancy after the insert. wait bounds
// the queue-expiry deadline; non-positive or out-of-range values fall back
// to the configured default. When the join fills the second seat both queue
// timers are cancelled and ban negotiation begins.
func (e *Engine) Join(id UserID, origin Origin, wait time.Duration) (LobbyID, int, error) {
	if wait <= 0 || wait > MaxQueueWait {
		wait = e.queueWait
	}

	e.reg.mu.Lock()
	if e.reg.findLobbyOfLocked(id) != nil {
		e.reg.mu.Unlock()
		return 0, 0, ErrAlreadyQueued
	}

	l := e.reg.findJoinableLocked()
	if l == nil {
		l = e.reg.createLocked()
	}
	if l.full() {
		e.reg.mu.Unlock()
		log.Error().Uint64("lobby_id", uint64(l.id)).Msg("joinable lobby already holds two seats")
		return 0, 0, errInvariant
	}

	s := &slot{id: id, origin: origin}
	l.slots = append(l.slots, s)
	lobbyID, count := l.id, len(l.slots)

	var notes []note
	if count == 2 {
		for _, sl := range l.slots {
			e.stopSlotTimerLocked(sl)
		}
		l.phase = PhaseBan
		notes = e.beginBanLocked(l)
	} else {
		e.armQueueTimerLocked(l, s, wait)
	}
	e.reg.mu.Unlock()

	log.Info().
		Uint64("lobby_id", uint64(lobbyID)).
		Int64("user_id", int64(id)).
		Int("players", count).
		Msg("participant joined")
	e.dispatch(notes)
	return lobbyID, count, nil
}

// Leave withdraws a waiting participant. It is only legal while the lobby
// holds a single seat; leaving a paired lobby is a forfeit, handled by the
// timeout path, never by Leave.
func (e *Engine) Leave(id UserID) error {
	e.reg.mu.Lock()
	l := e.reg.findLobbyOfLocked(id)
	if l == nil {
		e.reg.mu.Unlock()
		return ErrNotQueued
	}
	if l.full() {
		e.reg.mu.Unlock()
		return ErrAlreadyMatched
	}
	lobbyID := l.id
	e.reg.removeLocked(lobbyID, false)
	e.reg.mu.Unlock()

	log.Info().
		Uint64("lobby_id", uint64(lobbyID)).
		Int64("user_id", int64(id)).
		Msg("participant left queue")
	return nil
}

// SubmitBan records one participant's ban during negotiation. Once both are
// in, the best-of target is fixed and round one begins.
func (e *Engine) SubmitBan(id UserID, value int) error {
	e.reg.mu.Lock()
	l := e.reg.findLobbyOfLocked(id)
	if l == nil {
		e.reg.mu.Unlock()
		return ErrNotQueued
	}
	if l.phase != PhaseBan {
		e.reg.mu.Unlock()
		return ErrNoBanPhase
	}
	if !ValidBan(value) {
		e.reg.mu.Unlock()
		return ErrInvalidBan
	}

	seat := l.seatOf(id)
	l.slots[seat].ban = value

	var notes []note
	if l.slots[0].ban != 0 && l.slots[1].ban != 0 {
		l.bestOf = e.bestOf(l.slots[0].ban, l.slots[1].ban)
		l.phase = PhaseRound
		notes = append(notes, e.roundPromptsLocked(l)...)
		e.armRoundTimerLocked(l)
		log.Info().
			Uint64("lobby_id", uint64(l.id)).
			Int("best_of", l.bestOf).
			Msg("ban negotiation complete")
	} else {
		opp := l.slots[seat.Opponent()]
		prompt := e.payloadLocked(l)
		prompt.OpponentBan = value
		notes = append(notes, toUser(opp.id, KindBanPrompt, prompt))

		ack := e.payloadLocked(l)
		ack.AwaitingOpponent = true
		notes = append(notes, toUser(id, KindBanPrompt, ack))
		e.armRoundTimerLocked(l)
	}
	e.reg.mu.Unlock()

	e.dispatch(notes)
	return nil
}

// SubmitChoice records a participant's throw for the current round.
// Resubmission overwrites. When both seats have thrown, the round resolves:
// the confirmation is always delivered before the round result.
func (e *Engine) SubmitChoice(id UserID, c Choice) error {
	if !c.Valid() {
		return ErrInvalidChoice
	}

	e.reg.mu.Lock()
	l := e.reg.findLobbyOfLocked(id)
	if l == nil {
		e.reg.mu.Unlock()
		return ErrNotQueued
	}
	if l.phase != PhaseRound {
		e.reg.mu.Unlock()
		return ErrNoActiveRound
	}

	seat := l.seatOf(id)
	l.slots[seat].choice = c

	confirm := e.payloadLocked(l)
	confirm.Choice = c
	confirm.AwaitingOpponent = l.slots[seat.Opponent()].choice == ChoiceNone

	notes := []note{toUser(id, KindChoiceConfirmed, confirm)}
	if l.slots[0].choice != ChoiceNone && l.slots[1].choice != ChoiceNone {
		notes = append(notes, e.resolveLocked(l, KindRoundResult)...)
	}
	e.reg.mu.Unlock()

	e.dispatch(notes)
	return nil
}

// queueExpired fires when a lone participant's wait elapses. The lobby is
// revalidated under the lock; a stale fire is dropped silently.
func (e *Engine) queueExpired(lobbyID LobbyID, id UserID, gen uint64) {
	e.reg.mu.Lock()
	l, ok := e.reg.lobbies[lobbyID]
	if !ok || l.phase != PhaseWaiting {
		e.reg.mu.Unlock()
		log.Debug().Uint64("lobby_id", uint64(lobbyID)).Msg("stale queue timer dropped")
		return
	}
	seat := l.seatOf(id)
	if seat == SideNone || l.slots[seat].timerGen != gen {
		e.reg.mu.Unlock()
		log.Debug().Uint64("lobby_id", uint64(lobbyID)).Msg("stale queue timer dropped")
		return
	}

	origin := l.slots[seat].origin
	p := e.payloadLocked(l)
	e.reg.removeLocked(lobbyID, false)
	e.reg.mu.Unlock()

	log.Info().
		Uint64("lobby_id", uint64(lobbyID)).
		Int64("user_id", int64(id)).
		Msg("queue entry lapsed")

	notes := []note{toUser(id, KindTimeout, p)}
	if !origin.Private {
		notes = append(notes, toOrigin(origin, KindQueueLeft, p))
	}
	e.dispatch(notes)
}

// roundExpired fires when a ban-phase or round deadline elapses. The round
// resolves with whatever choices are present; in the ban phase both are
// necessarily empty, which ends the match as a no-contest.
func (e *Engine) roundExpired(lobbyID LobbyID, gen uint64) {
	e.reg.mu.Lock()
	l, ok := e.reg.lobbies[lobbyID]
	if !ok || l.timerGen != gen || (l.phase != PhaseBan && l.phase != PhaseRound) {
		e.reg.mu.Unlock()
		log.Debug().Uint64("lobby_id", uint64(lobbyID)).Msg("stale round timer dropped")
		return
	}

	log.Info().
		Uint64("lobby_id", uint64(lobbyID)).
		Stringer("phase", l.phase).
		Int("round", l.round).
		Msg("deadline elapsed, forcing resolution")
	notes := e.resolveLocked(l, KindTimeout)
	e.reg.mu.Unlock()

	e.dispatch(notes)
}

// resolveLocked adjudicates the current round, applies scoring, and either
// finalizes the match or advances to the next round. resultKind is
// KindRoundResult for a normal resolution and KindTimeout for a forced one,
// so timeouts stay distinguishable from ordinary results. Called with the
// registry lock held.
func (e *Engine) resolveLocked(l *Lobby, resultKind PayloadKind) []note {
	e.stopLobbyTimerLocked(l)

	out := ResolveRound(l.slots[0].choice, l.slots[1].choice)
	log.Info().
		Uint64("lobby_id", uint64(l.id)).
		Int("round", l.round).
		Stringer("outcome", out).
		Msg("round resolved")

	if out.Kind == OutcomeDoubleForfeit {
		l.phase = PhaseDone
		p := e.payloadLocked(l)
		p.Outcome = out
		p.NoContest = true
		notes := e.broadcastLocked(l, KindMatchResult, p)
		e.reg.removeLocked(l.id, true)
		return notes
	}

	if out.Winner != SideNone {
		l.slots[out.Winner].score++
	}

	p := e.payloadLocked(l)
	p.Outcome = out
	notes := e.broadcastLocked(l, resultKind, p)

	if out.Winner != SideNone && l.slots[out.Winner].score == l.bestOf {
		l.phase = PhaseDone
		final := e.payloadLocked(l)
		final.Outcome = out
		final.Winner = l.slots[out.Winner].id
		notes = append(notes, e.broadcastLocked(l, KindMatchResult, final)...)
		e.reg.removeLocked(l.id, true)
		return notes
	}

	l.round++
	for _, s := range l.slots {
		s.choice = ChoiceNone
	}
	notes = append(notes, e.roundPromptsLocked(l)...)
	e.armRoundTimerLocked(l)
	return notes
}

// beginBanLocked opens the negotiation: one seat, picked at random, is asked
// to ban first while the other is told to wait.
func (e *Engine) beginBanLocked(l *Lobby) []note {
	first := Side(rand.Intn(2))
	prompt := e.payloadLocked(l)
	ack := e.payloadLocked(l)
	ack.AwaitingOpponent = true

	notes := []note{
		toUser(l.slots[first].id, KindBanPrompt, prompt),
		toUser(l.slots[first.Opponent()].id, KindBanPrompt, ack),
	}
	e.armRoundTimerLocked(l)
	return notes
}

// roundPromptsLocked asks both seats for their next throw.
func (e *Engine) roundPromptsLocked(l *Lobby) []note {
	p := e.payloadLocked(l)
	return []note{
		toUser(l.slots[0].id, KindRoundPrompt, p),
		toUser(l.slots[1].id, KindRoundPrompt, p),
	}
}

// broadcastLocked queues kind for both participants and fans the payload out
// to the group chats they queued from, deduplicated when both share one.
func (e *Engine) broadcastLocked(l *Lobby, kind PayloadKind, p Payload) []note {
	notes := make([]note, 0, 4)
	for _, s := range l.slots {
		notes = append(notes, toUser(s.id, kind, p))
	}
	seen := make(map[int64]bool, 2)
	for _, s := range l.slots {
		if s.origin.Private || seen[s.origin.ChatID] {
			continue
		}
		seen[s.origin.ChatID] = true
		notes = append(notes, toOrigin(s.origin, kind, p))
	}
	return notes
}

// payloadLocked snapshots the lobby into a Payload.
func (e *Engine) payloadLocked(l *Lobby) Payload {
	p := Payload{
		Lobby:   l.id,
		Phase:   l.phase,
		Round:   l.round,
		BestOf:  l.bestOf,
		Waiting: len(l.slots),
	}
	for i, s := range l.slots {
		if i < 2 {
			p.Players[i] = s.id
			p.Scores[i] = s.score
			p.Choices[i] = s.choice
		}
	}
	return p
}

// armQueueTimerLocked starts the slot's queue-expiry timer, cancelling any
// prior one. At most one timer is outstanding per slot.
func (e *Engine) armQueueTimerLocked(l *Lobby, s *slot, wait time.Duration) {
	e.stopSlotTimerLocked(s)
	gen := s.timerGen
	lobbyID, id := l.id, s.id
	s.timer = e.clock.AfterFunc(wait, func() {
		e.queueExpired(lobbyID, id, gen)
	})
}

// armRoundTimerLocked starts the lobby's ban/round deadline, cancelling any
// prior one. At most one timer is outstanding per lobby.
func (e *Engine) armRoundTimerLocked(l *Lobby) {
	e.stopLobbyTimerLocked(l)
	gen := l.timerGen
	lobbyID := l.id
	l.timer = e.clock.AfterFunc(e.roundWait, func() {
		e.roundExpired(lobbyID, gen)
	})
}

// Stopping a timer installs a registry-unique generation so that a cancelled
// fire still in flight can never match again, not even when the lobby id is
// later reused by a fresh queue entry.
func (e *Engine) stopSlotTimerLocked(s *slot) {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerGen = e.reg.nextGenLocked()
}

func (e *Engine) stopLobbyTimerLocked(l *Lobby) {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.timerGen = e.reg.nextGenLocked()
}

// dispatch delivers queued notifications in order, outside the registry
// lock. Delivery failures are the notifier's problem; lobby state is final
// by the time dispatch runs.
func (e *Engine) dispatch(notes []note) {
	if e.notifier == nil {
		return
	}
	for _, n := range notes {
		if n.toOrigin {
			e.notifier.SendToOrigin(n.origin, n.kind, n.payload)
		} else {
			e.notifier.SendToParticipant(n.user, n.kind, n.payload)
		}
	}
}
