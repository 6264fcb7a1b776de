package match

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Registry owns the set of active lobbies. Every read or mutation of lobby
// state serializes through its single mutex; callers must not call back into
// the registry from inside WithLobby. Operations on an unknown lobby id are
// no-ops, never panics, because timers may fire after a lobby was removed.
type Registry struct {
	mu      sync.Mutex
	lobbies map[LobbyID]*Lobby
	// nextID is the last id handed out. IDs only roll back when a lobby
	// that never reached two players leaves while holding the highest id,
	// which keeps queue-only exits from leaving numbering gaps without ever
	// reusing the id of a live lobby. Whether the rollback is wanted at all
	// is an open product question.
	nextID LobbyID
	// genSeq issues timer generations, unique across all slots and lobbies
	// for the registry's lifetime. Lobby ids can be reused after a
	// queue-only exit, so a per-slot counter would let a cancelled fire
	// against the old lobby collide with a fresh entry under the same id.
	genSeq uint64
}

// nextGenLocked issues a fresh timer generation under an already-held lock.
func (r *Registry) nextGenLocked() uint64 {
	r.genSeq++
	return r.genSeq
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{lobbies: make(map[LobbyID]*Lobby)}
}

// CreateLobby creates an empty lobby and returns its id.
func (r *Registry) CreateLobby() LobbyID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createLocked().id
}

// FindLobbyOf returns the id of the lobby holding the given identity.
func (r *Registry) FindLobbyOf(id UserID) (LobbyID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l := r.findLobbyOfLocked(id); l != nil {
		return l.id, true
	}
	return 0, false
}

// FindJoinable returns the id of a lobby with exactly one seat filled. Among
// equally eligible lobbies the earliest-created wins.
func (r *Registry) FindJoinable() (LobbyID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l := r.findJoinableLocked(); l != nil {
		return l.id, true
	}
	return 0, false
}

// WithLobby runs fn on the lobby under the registry lock. It reports whether
// the lobby existed. fn must not call back into the registry.
func (r *Registry) WithLobby(id LobbyID, fn func(*Lobby)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lobbies[id]
	if !ok {
		return false
	}
	fn(l)
	return true
}

// RemoveLobby deletes the lobby and cancels its outstanding timers. Unknown
// ids are ignored.
func (r *Registry) RemoveLobby(id LobbyID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(id, true)
}

// Len returns the number of active lobbies.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lobbies)
}

// createLocked allocates a lobby under an already-held lock.
func (r *Registry) createLocked() *Lobby {
	r.nextID++
	l := &Lobby{id: r.nextID, phase: PhaseWaiting, round: 1}
	r.lobbies[l.id] = l
	log.Debug().Uint64("lobby_id", uint64(l.id)).Msg("lobby created")
	return l
}

func (r *Registry) findLobbyOfLocked(id UserID) *Lobby {
	for _, l := range r.lobbies {
		if l.seatOf(id) != SideNone {
			return l
		}
	}
	return nil
}

func (r *Registry) findJoinableLocked() *Lobby {
	var best *Lobby
	for _, l := range r.lobbies {
		if len(l.slots) != 1 {
			continue
		}
		if best == nil || l.id < best.id {
			best = l
		}
	}
	return best
}

// removeLocked deletes the lobby and stops every timer it still owns.
// completed distinguishes a finished (or in-progress) match from a
// queue-only exit; only the latter may roll the id counter back, and only
// when the departing lobby holds the highest id.
func (r *Registry) removeLocked(id LobbyID, completed bool) {
	l, ok := r.lobbies[id]
	if !ok {
		log.Debug().Uint64("lobby_id", uint64(id)).Msg("remove of unknown lobby ignored")
		return
	}
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.timerGen = r.nextGenLocked()
	for _, s := range l.slots {
		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
		}
		s.timerGen = r.nextGenLocked()
	}
	delete(r.lobbies, id)
	if !completed && id == r.nextID {
		r.nextID--
	}
	log.Debug().
		Uint64("lobby_id", uint64(id)).
		Bool("completed", completed).
		Msg("lobby removed")
}
