package service

import (
	"context"

	"github.com/minerush/game-services/internal/comm"
	"github.com/minerush/game-services/internal/gamesvc/models"
)

// Storage contract the engine depends on. The pgx implementations live
// in the store package; tests substitute in-memory fakes.

type ConfigStore interface {
	GetConfigByID(ctx context.Context, configID int64) (*models.GameConfig, error)
}

type SessionStore interface {
	GetSessionByID(ctx context.Context, sessionID int64) (*models.GameSession, error)
	CreateSession(ctx context.Context, playerIdentifier string, gameConfigID int64) (*models.GameSession, error)
	// CASAdvanceSession returns false when the expected move count no
	// longer matches, i.e. a concurrent move won the slot.
	CASAdvanceSession(ctx context.Context, sessionID int64, expectedMoveCount, newMoveCount int) (bool, error)
}

type ActionStore interface {
	// AppendAction reports false when an action with the same id is
	// already recorded; the stored payload is then the durable truth.
	AppendAction(ctx context.Context, action *models.GameAction) (bool, error)
	GetActionByID(ctx context.Context, actionID string) (*models.GameAction, error)
}

type AnalyticsStore interface {
	AppendEvent(ctx context.Context, event *models.AnalyticsEvent) (bool, error)
}

type TokenStore interface {
	GetTokenByValue(ctx context.Context, token string) (*models.EmbedToken, error)
}

type PartnerStore interface {
	GetPartnerByID(ctx context.Context, partnerID int64) (*models.Partner, error)
}

// Publisher fans resolved moves and telemetry out to the ledger stream.
// The NATS broker implements it; publishing is best effort on top of the
// durable append, never a substitute for it.
type Publisher interface {
	PublishMove(record comm.MoveRecord) error
	PublishEvent(record comm.EventRecord) error
}
