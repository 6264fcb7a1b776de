package match

import "testing"

func seat(t *testing.T, r *Registry, lobby LobbyID, user UserID) {
	t.Helper()
	ok := r.WithLobby(lobby, func(l *Lobby) {
		l.slots = append(l.slots, &slot{id: user})
	})
	if !ok {
		t.Fatalf("lobby %d not found", lobby)
	}
}

func TestRegistryCreateAndFind(t *testing.T) {
	r := NewRegistry()

	first := r.CreateLobby()
	second := r.CreateLobby()
	if first == second {
		t.Fatalf("duplicate lobby id %d", first)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}

	seat(t, r, first, 10)
	seat(t, r, second, 20)

	if id, ok := r.FindLobbyOf(10); !ok || id != first {
		t.Errorf("FindLobbyOf(10) = (%d, %v), want (%d, true)", id, ok, first)
	}
	if id, ok := r.FindLobbyOf(20); !ok || id != second {
		t.Errorf("FindLobbyOf(20) = (%d, %v), want (%d, true)", id, ok, second)
	}
	if _, ok := r.FindLobbyOf(30); ok {
		t.Error("FindLobbyOf(30) reported a seat for an unknown identity")
	}
}

func TestRegistryFindJoinable(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.FindJoinable(); ok {
		t.Fatal("empty registry reported a joinable lobby")
	}

	earlier := r.CreateLobby()
	if _, ok := r.FindJoinable(); ok {
		t.Fatal("seatless lobby reported as joinable")
	}

	later := r.CreateLobby()
	seat(t, r, later, 20)
	seat(t, r, earlier, 10)

	// Two half-full lobbies: the earliest-created one wins.
	if id, ok := r.FindJoinable(); !ok || id != earlier {
		t.Fatalf("FindJoinable() = (%d, %v), want (%d, true)", id, ok, earlier)
	}

	seat(t, r, earlier, 11)
	if id, ok := r.FindJoinable(); !ok || id != later {
		t.Fatalf("FindJoinable() after fill = (%d, %v), want (%d, true)", id, ok, later)
	}

	seat(t, r, later, 21)
	if _, ok := r.FindJoinable(); ok {
		t.Fatal("full lobbies reported as joinable")
	}
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()

	id := r.CreateLobby()
	seat(t, r, id, 10)
	r.RemoveLobby(id)

	if r.Len() != 0 {
		t.Fatalf("Len() = %d after removal, want 0", r.Len())
	}
	if _, ok := r.FindLobbyOf(10); ok {
		t.Error("removed lobby still findable by participant")
	}
	if r.WithLobby(id, func(*Lobby) { t.Error("callback ran for removed lobby") }) {
		t.Error("WithLobby reported a removed lobby as present")
	}

	// Removing twice must stay a silent no-op.
	r.RemoveLobby(id)
}

func TestRegistryIDRollback(t *testing.T) {
	r := NewRegistry()

	first := r.CreateLobby()
	second := r.CreateLobby()

	// A queue-only exit of the highest lobby frees its id for reuse.
	r.mu.Lock()
	r.removeLocked(second, false)
	r.mu.Unlock()
	if got := r.CreateLobby(); got != second {
		t.Fatalf("CreateLobby() = %d after rollback, want %d", got, second)
	}

	// A queue-only exit of a lower id leaves the counter alone.
	r.mu.Lock()
	r.removeLocked(first, false)
	r.mu.Unlock()
	if got := r.CreateLobby(); got != second+1 {
		t.Fatalf("CreateLobby() = %d, want %d", got, second+1)
	}

	// Completed matches never roll the counter back.
	top := r.CreateLobby()
	r.RemoveLobby(top)
	if got := r.CreateLobby(); got != top+1 {
		t.Fatalf("CreateLobby() = %d after completed removal, want %d", got, top+1)
	}
}

func TestRegistryRemoveStopsTimers(t *testing.T) {
	r := NewRegistry()

	id := r.CreateLobby()
	lobbyTimer := &stubTimer{}
	slotTimer := &stubTimer{}
	r.WithLobby(id, func(l *Lobby) {
		l.timer = lobbyTimer
		l.slots = append(l.slots, &slot{id: 10, timer: slotTimer})
	})

	r.RemoveLobby(id)
	if !lobbyTimer.stopped {
		t.Error("lobby timer not stopped on removal")
	}
	if !slotTimer.stopped {
		t.Error("seat timer not stopped on removal")
	}
}

type stubTimer struct{ stopped bool }

func (t *stubTimer) Stop() bool {
	already := t.stopped
	t.stopped = true
	return !already
}
