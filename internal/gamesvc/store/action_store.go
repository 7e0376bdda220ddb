package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minerush/game-services/internal/gamesvc/models"
)

type ActionStore struct {
	db *pgxpool.Pool
}

func NewActionStore(db *pgxpool.Pool) *ActionStore {
	return &ActionStore{db: db}
}

// AppendAction inserts one resolved move. The action id is caller
// assigned, so a retried append hits the primary key and becomes a
// no-op instead of a duplicate move.
func (s *ActionStore) AppendAction(ctx context.Context, action *models.GameAction) (bool, error) {
	payload, err := json.Marshal(action.Payload)
	if err != nil {
		return false, fmt.Errorf("failed to encode action payload: %w", err)
	}

	query := `
		INSERT INTO game_actions (id, game_session_id, action_type, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`

	tag, err := s.db.Exec(ctx, query, action.ID, action.GameSessionID, action.ActionType, payload)
	if err != nil {
		return false, fmt.Errorf("failed to append action: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (s *ActionStore) GetActionByID(ctx context.Context, actionID string) (*models.GameAction, error) {
	query := `
		SELECT id, game_session_id, action_type, payload, created_at
		FROM game_actions
		WHERE id = $1
	`

	var a models.GameAction
	var payload []byte
	err := s.db.QueryRow(ctx, query, actionID).Scan(
		&a.ID,
		&a.GameSessionID,
		&a.ActionType,
		&payload,
		&a.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // action not found
		}
		return nil, fmt.Errorf("failed to get action by ID: %w", err)
	}

	if err := json.Unmarshal(payload, &a.Payload); err != nil {
		return nil, fmt.Errorf("failed to decode action payload: %w", err)
	}

	return &a, nil
}

func (s *ActionStore) GetActionsBySessionID(ctx context.Context, sessionID int64) ([]*models.GameAction, error) {
	query := `
		SELECT id, game_session_id, action_type, payload, created_at
		FROM game_actions
		WHERE game_session_id = $1
		ORDER BY created_at
	`

	rows, err := s.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions for session %d: %w", sessionID, err)
	}
	defer rows.Close()

	var actions []*models.GameAction
	for rows.Next() {
		var a models.GameAction
		var payload []byte
		err := rows.Scan(
			&a.ID,
			&a.GameSessionID,
			&a.ActionType,
			&payload,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		if err := json.Unmarshal(payload, &a.Payload); err != nil {
			return nil, fmt.Errorf("failed to decode action payload: %w", err)
		}
		actions = append(actions, &a)
	}

	return actions, rows.Err()
}
