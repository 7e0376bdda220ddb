package comm

import (
	"encoding/json"
	"time"
)

// NATS subjects the game service publishes on and the ledger service
// consumes from.
const (
	SubjectMoves  = "ledger.moves"
	SubjectEvents = "ledger.events"
)

// MoveRecord is the envelope for one resolved move on the ledger stream.
// Amounts travel as decimal strings.
type MoveRecord struct {
	ActionID   string    `json:"action_id"`
	SessionID  int64     `json:"session_id"`
	ConfigID   int64     `json:"config_id"`
	Bid        string    `json:"bid"`
	Outcome    string    `json:"outcome"`
	Payout     string    `json:"payout"`
	MoveIndex  int       `json:"move_index"`
	State      string    `json:"state"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// EventRecord is the envelope for one telemetry event.
type EventRecord struct {
	EventID    string          `json:"event_id"`
	SessionID  int64           `json:"session_id"`
	EventType  string          `json:"event_type"`
	Payload    json.RawMessage `json:"payload"`
	ReceivedAt time.Time       `json:"received_at"`
}
