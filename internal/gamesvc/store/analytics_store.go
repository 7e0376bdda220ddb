package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minerush/game-services/internal/gamesvc/models"
)

type AnalyticsStore struct {
	db *pgxpool.Pool
}

func NewAnalyticsStore(db *pgxpool.Pool) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// AppendEvent inserts one telemetry event, de-duplicated on the caller
// assigned id like game actions.
func (s *AnalyticsStore) AppendEvent(ctx context.Context, event *models.AnalyticsEvent) (bool, error) {
	query := `
		INSERT INTO analytics_events (id, game_session_id, event_type, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`

	tag, err := s.db.Exec(ctx, query, event.ID, event.GameSessionID, event.EventType, []byte(event.Payload))
	if err != nil {
		return false, fmt.Errorf("failed to append analytics event: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
