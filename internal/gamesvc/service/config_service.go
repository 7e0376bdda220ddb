package service

import (
	"context"
	"fmt"

	"github.com/minerush/game-services/internal/gamesvc/models"
)

type ConfigService struct {
	configStore ConfigStore
}

func NewConfigService(configStore ConfigStore) *ConfigService {
	return &ConfigService{configStore: configStore}
}

// GetConfigForPartner reads one game config scoped to the calling
// partner. Global configs are readable by any partner; a config owned by
// another partner reads as not found rather than forbidden.
func (s *ConfigService) GetConfigForPartner(ctx context.Context, configID, partnerID int64) (*models.GameConfig, error) {
	cfg, err := s.configStore.GetConfigByID(ctx, configID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: config %d", ErrConfigNotFound, configID)
	}
	if !cfg.Owner.Global && cfg.Owner.PartnerID != partnerID {
		return nil, fmt.Errorf("%w: config %d", ErrConfigNotFound, configID)
	}

	return cfg, nil
}
