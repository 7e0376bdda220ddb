package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minerush/game-services/internal/gamesvc/models"
)

type SessionStore struct {
	db *pgxpool.Pool
}

func NewSessionStore(db *pgxpool.Pool) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) GetSessionByID(ctx context.Context, sessionID int64) (*models.GameSession, error) {
	query := `
		SELECT id, player_identifier, game_config_id, move_count, created_at, updated_at
		FROM game_sessions
		WHERE id = $1
	`

	session := &models.GameSession{}
	err := s.db.QueryRow(ctx, query, sessionID).Scan(
		&session.ID,
		&session.PlayerIdentifier,
		&session.GameConfigID,
		&session.MoveCount,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // session not found
		}
		return nil, fmt.Errorf("failed to get session by ID: %w", err)
	}

	return session, nil
}

func (s *SessionStore) CreateSession(ctx context.Context, playerIdentifier string, gameConfigID int64) (*models.GameSession, error) {
	query := `
		INSERT INTO game_sessions (player_identifier, game_config_id, move_count)
		VALUES ($1, $2, 0)
		RETURNING id, player_identifier, game_config_id, move_count, created_at, updated_at
	`

	session := &models.GameSession{}
	err := s.db.QueryRow(ctx, query, playerIdentifier, gameConfigID).Scan(
		&session.ID,
		&session.PlayerIdentifier,
		&session.GameConfigID,
		&session.MoveCount,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("could not create session: %w", err)
	}

	return session, nil
}

// CASAdvanceSession bumps the move counter only when it still holds the
// expected value. Returns false on a lost race so the caller can re-read
// and retry.
func (s *SessionStore) CASAdvanceSession(ctx context.Context, sessionID int64, expectedMoveCount, newMoveCount int) (bool, error) {
	query := `
		UPDATE game_sessions
		SET move_count = $3, updated_at = now()
		WHERE id = $1 AND move_count = $2
	`

	tag, err := s.db.Exec(ctx, query, sessionID, expectedMoveCount, newMoveCount)
	if err != nil {
		return false, fmt.Errorf("failed to advance session %d: %w", sessionID, err)
	}

	return tag.RowsAffected() == 1, nil
}
