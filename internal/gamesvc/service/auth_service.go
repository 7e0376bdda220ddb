package service

import (
	"context"
	"fmt"
	"time"

	"github.com/minerush/game-services/internal/gamesvc/models"
)

// AuthService checks embed tokens against requested capabilities.
// Tokens are exact-match bearer secrets; revocation is row deletion.
type AuthService struct {
	tokenStore   TokenStore
	partnerStore PartnerStore
	now          func() time.Time
}

func NewAuthService(tokenStore TokenStore, partnerStore PartnerStore) *AuthService {
	return &AuthService{
		tokenStore:   tokenStore,
		partnerStore: partnerStore,
		now:          time.Now,
	}
}

// Authorize resolves a bearer token and requires one capability of it.
// Malformed or expired permission documents grant nothing. On success
// the owning partner is returned so callers can scope config and
// session lookups to it.
func (a *AuthService) Authorize(ctx context.Context, token string, capability models.Capability) (*models.Partner, error) {
	if token == "" {
		return nil, ErrTokenNotFound
	}

	t, err := a.tokenStore.GetTokenByValue(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if t == nil {
		return nil, ErrTokenNotFound
	}

	caps := t.Capabilities(a.now())
	if !caps.Has(capability) {
		return nil, fmt.Errorf("%w: %s", ErrInsufficientPermission, capability)
	}

	partner, err := a.partnerStore.GetPartnerByID(ctx, t.PartnerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if partner == nil {
		// a token pointing at a deleted partner authorizes nothing
		return nil, ErrTokenNotFound
	}

	return partner, nil
}
