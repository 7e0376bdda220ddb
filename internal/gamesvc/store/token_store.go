package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minerush/game-services/internal/gamesvc/models"
)

type TokenStore struct {
	db *pgxpool.Pool
}

func NewTokenStore(db *pgxpool.Pool) *TokenStore {
	return &TokenStore{db: db}
}

func (s *TokenStore) GetTokenByValue(ctx context.Context, token string) (*models.EmbedToken, error) {
	query := `
		SELECT id, token, partner_id, permissions, created_at, updated_at
		FROM embed_tokens
		WHERE token = $1
		LIMIT 1
	`

	t := &models.EmbedToken{}
	err := s.db.QueryRow(ctx, query, token).Scan(
		&t.ID,
		&t.Token,
		&t.PartnerID,
		&t.Permissions,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // token not found, revoked tokens are deleted rows
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return t, nil
}
