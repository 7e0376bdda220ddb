package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/minerush/game-services/internal/gamesvc/engine"
)

// ConfigOwner says whether a config is a shared global default or owned
// by one partner. Replaces a nullable partner foreign key so call sites
// never branch on a null.
type ConfigOwner struct {
	PartnerID int64
	Global    bool
}

func GlobalOwner() ConfigOwner {
	return ConfigOwner{Global: true}
}

func PartnerOwner(partnerID int64) ConfigOwner {
	return ConfigOwner{PartnerID: partnerID}
}

// GameConfig is one ruleset for a game variant. Unique per (owner, name).
// Sessions reference a config by id and never snapshot it.
type GameConfig struct {
	ID            int64               `json:"id"` // Primary key
	Name          string              `json:"name"`
	GameType      string              `json:"game_type"`
	Owner         ConfigOwner         `json:"-"`
	MovesPerRound int                 `json:"moves_per_round"` // >= 1
	ProbDiamond   int64               `json:"prob_diamond"`    // relative weight
	ProbDust      int64               `json:"prob_dust"`
	ProbGold      int64               `json:"prob_gold"`
	ProbOil       int64               `json:"prob_oil"`
	ProbRock      int64               `json:"prob_rock"`
	MultDiamond   decimal.Decimal     `json:"mult_diamond"`
	MultGold      decimal.Decimal     `json:"mult_gold"`
	MultOil       decimal.Decimal     `json:"mult_oil"`
	DefaultBid    decimal.NullDecimal `json:"default_bid"`
	BidAmounts    []decimal.Decimal   `json:"bid_amounts"` // closed set, ordered
	ImageURL      string              `json:"image_url"`   // opaque, passed through
	SoundURL      string              `json:"sound_url"`   // opaque, passed through
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// Weights folds the five probability columns into the engine's form.
func (c *GameConfig) Weights() engine.Weights {
	return engine.Weights{
		Diamond: c.ProbDiamond,
		Dust:    c.ProbDust,
		Gold:    c.ProbGold,
		Oil:     c.ProbOil,
		Rock:    c.ProbRock,
	}
}

func (c *GameConfig) Multipliers() engine.Multipliers {
	return engine.Multipliers{
		Diamond: c.MultDiamond,
		Gold:    c.MultGold,
		Oil:     c.MultOil,
	}
}

// AllowedBid reports whether a bid may be played under this config.
// BidAmounts is a closed set when present; with no bid amounts only the
// default bid is playable.
func (c *GameConfig) AllowedBid(bid decimal.Decimal) bool {
	if len(c.BidAmounts) > 0 {
		for _, b := range c.BidAmounts {
			if b.Equal(bid) {
				return true
			}
		}
		return false
	}
	return c.DefaultBid.Valid && c.DefaultBid.Decimal.Equal(bid)
}
