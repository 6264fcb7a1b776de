package match

// PayloadKind selects which message template a notification renders with.
type PayloadKind int

const (
	KindQueueJoined PayloadKind = iota
	KindQueueLeft
	KindRoundPrompt
	KindChoiceConfirmed
	KindRoundResult
	KindBanPrompt
	KindMatchResult
	KindTimeout
)

// String returns the kind name for logging.
func (k PayloadKind) String() string {
	switch k {
	case KindQueueJoined:
		return "queue_joined"
	case KindQueueLeft:
		return "queue_left"
	case KindRoundPrompt:
		return "round_prompt"
	case KindChoiceConfirmed:
		return "choice_confirmed"
	case KindRoundResult:
		return "round_result"
	case KindBanPrompt:
		return "ban_prompt"
	case KindMatchResult:
		return "match_result"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Payload carries the data a template needs. Fields are populated per kind;
// unused fields are zero.
type Payload struct {
	Lobby   LobbyID
	Phase   Phase
	Round   int
	BestOf  int
	Waiting int // participants present after a join

	Players [2]UserID
	Scores  [2]int
	Choices [2]Choice

	// Choice is the acting participant's own submission (confirmations).
	Choice Choice
	// OpponentBan is the already-submitted ban shown to the second banner.
	OpponentBan int
	// AwaitingOpponent marks prompts that only announce "waiting for the
	// other player".
	AwaitingOpponent bool

	Outcome   Outcome
	Winner    UserID // zero when no winner was credited
	NoContest bool
}

// Notifier delivers rendered messages. Delivery is best-effort: the engine
// never retries and never blocks on it, and a failed delivery never rolls
// back lobby state.
type Notifier interface {
	SendToParticipant(id UserID, kind PayloadKind, p Payload)
	SendToOrigin(origin Origin, kind PayloadKind, p Payload)
}

// note is one pending notification, queued while the registry lock is held
// and dispatched after release in queue order.
type note struct {
	toOrigin bool
	user     UserID
	origin   Origin
	kind     PayloadKind
	payload  Payload
}

func toUser(id UserID, kind PayloadKind, p Payload) note {
	return note{user: id, kind: kind, payload: p}
}

func toOrigin(o Origin, kind PayloadKind, p Payload) note {
	return note{toOrigin: true, origin: o, kind: kind, payload: p}
}
