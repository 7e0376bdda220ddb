package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/minerush/game-services/internal/gamesvc/engine"
)

// MovePayload is the structured record of one resolved move.
type MovePayload struct {
	Bid       decimal.Decimal `json:"bid"`
	Outcome   engine.Outcome  `json:"outcome"`
	Payout    decimal.Decimal `json:"payout"`
	MoveIndex int             `json:"move_index"` // 1-based index within the round
}

// GameAction is the append-only record of one resolved move. The id is
// caller assigned (uuid) so a retried append de-duplicates instead of
// double counting.
type GameAction struct {
	ID            string      `json:"id"` // caller-assigned uuid
	GameSessionID int64       `json:"game_session_id"`
	ActionType    string      `json:"action_type"` // e.g. "move"
	Payload       MovePayload `json:"payload"`
	CreatedAt     time.Time   `json:"created_at"`
}
