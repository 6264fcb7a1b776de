package match

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

// TestQueueInvariants drives random join and leave traffic and checks the
// registry after every step: nobody seats twice, no lobby overfills, and the
// reported errors match the participant's actual state.
func TestQueueInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := NewEngine(&Config{Clock: &fakeClock{}})
		users := []UserID{1, 2, 3, 4, 5}

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			id := rapid.SampledFrom(users).Draw(t, "user")
			seated := func() bool {
				_, ok := e.Registry().FindLobbyOf(id)
				return ok
			}()

			if rapid.Bool().Draw(t, "join") {
				_, _, err := e.Join(id, groupChat, 0)
				if seated && !errors.Is(err, ErrAlreadyQueued) {
					t.Fatalf("seated user %d joined again: err = %v", id, err)
				}
				if !seated && err != nil {
					t.Fatalf("free user %d rejected: %v", id, err)
				}
			} else {
				err := e.Leave(id)
				if !seated && !errors.Is(err, ErrNotQueued) {
					t.Fatalf("absent user %d left: err = %v", id, err)
				}
				if seated && err != nil && !errors.Is(err, ErrAlreadyMatched) {
					t.Fatalf("Leave(%d): %v", id, err)
				}
			}

			checkSeating(t, e.Registry(), users)
		}
	})
}

// checkSeating verifies every identity holds at most one seat and every lobby
// at most two.
func checkSeating(t *rapid.T, r *Registry, users []UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seats := make(map[UserID]int, len(users))
	for _, l := range r.lobbies {
		if len(l.slots) > 2 {
			t.Fatalf("lobby %d holds %d seats", l.id, len(l.slots))
		}
		if len(l.slots) == 2 && l.phase == PhaseWaiting {
			t.Fatalf("full lobby %d still in the waiting phase", l.id)
		}
		for _, s := range l.slots {
			seats[s.id]++
		}
	}
	for id, n := range seats {
		if n > 1 {
			t.Fatalf("identity %d holds %d seats", id, n)
		}
	}
}
