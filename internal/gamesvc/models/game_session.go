package models

import (
	"time"
)

type SessionState string

const (
	SessionActive        SessionState = "active"
	SessionRoundComplete SessionState = "round_complete"
)

// GameSession is one player's run against one GameConfig. The move count
// is the only mutable gameplay field; gameConfigId never changes after
// creation.
type GameSession struct {
	ID               int64     `json:"id"` // Primary key
	PlayerIdentifier string    `json:"player_identifier"` // opaque, partner supplied
	GameConfigID     int64     `json:"game_config_id"`
	MoveCount        int       `json:"move_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// State derives the lifecycle state from the move count. movesPerRound
// comes from the session's config.
func (s *GameSession) State(movesPerRound int) SessionState {
	if s.MoveCount >= movesPerRound {
		return SessionRoundComplete
	}
	return SessionActive
}
