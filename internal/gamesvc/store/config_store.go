package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minerush/game-services/internal/gamesvc/models"
)

type ConfigStore struct {
	db *pgxpool.Pool
}

func NewConfigStore(db *pgxpool.Pool) *ConfigStore {
	return &ConfigStore{db: db}
}

func (s *ConfigStore) GetConfigByID(ctx context.Context, configID int64) (*models.GameConfig, error) {
	query := `
		SELECT id, name, game_type, partner_id, moves_per_round,
		       prob_diamond, prob_dust, prob_gold, prob_oil, prob_rock,
		       mult_diamond, mult_gold, mult_oil,
		       default_bid, bid_amounts, image_url, sound_url,
		       created_at, updated_at
		FROM game_configs
		WHERE id = $1
	`

	cfg := &models.GameConfig{}
	var partnerID sql.NullInt64
	var bidAmounts []byte

	err := s.db.QueryRow(ctx, query, configID).Scan(
		&cfg.ID,
		&cfg.Name,
		&cfg.GameType,
		&partnerID,
		&cfg.MovesPerRound,
		&cfg.ProbDiamond,
		&cfg.ProbDust,
		&cfg.ProbGold,
		&cfg.ProbOil,
		&cfg.ProbRock,
		&cfg.MultDiamond,
		&cfg.MultGold,
		&cfg.MultOil,
		&cfg.DefaultBid,
		&bidAmounts,
		&cfg.ImageURL,
		&cfg.SoundURL,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // config not found
		}
		return nil, fmt.Errorf("failed to get config by ID: %w", err)
	}

	if partnerID.Valid {
		cfg.Owner = models.PartnerOwner(partnerID.Int64)
	} else {
		cfg.Owner = models.GlobalOwner()
	}

	// bid_amounts is a jsonb array of decimal strings
	if len(bidAmounts) > 0 {
		if err := json.Unmarshal(bidAmounts, &cfg.BidAmounts); err != nil {
			return nil, fmt.Errorf("failed to decode bid_amounts for config %d: %w", configID, err)
		}
	}

	return cfg, nil
}
