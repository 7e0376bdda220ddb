package models

import (
	"encoding/json"
	"time"
)

// AnalyticsEvent is append-only telemetry attached to a session
// (impressions, UI events). Payload stays opaque to the engine.
type AnalyticsEvent struct {
	ID            string          `json:"id"` // caller-assigned uuid
	GameSessionID int64           `json:"game_session_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	CreatedAt     time.Time       `json:"created_at"`
}
