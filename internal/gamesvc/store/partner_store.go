package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minerush/game-services/internal/gamesvc/models"
)

type PartnerStore struct {
	db *pgxpool.Pool
}

func NewPartnerStore(db *pgxpool.Pool) *PartnerStore {
	return &PartnerStore{db: db}
}

func (s *PartnerStore) GetPartnerByID(ctx context.Context, partnerID int64) (*models.Partner, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM partners
		WHERE id = $1
	`

	p := &models.Partner{}
	err := s.db.QueryRow(ctx, query, partnerID).Scan(
		&p.ID,
		&p.Name,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // partner not found
		}
		return nil, fmt.Errorf("failed to get partner by ID: %w", err)
	}

	return p, nil
}
