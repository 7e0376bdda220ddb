package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMultipliers() Multipliers {
	return Multipliers{
		Diamond: decimal.NewFromFloat(5.0),
		Gold:    decimal.NewFromFloat(2.5),
		Oil:     decimal.NewFromFloat(1.25),
	}
}

func TestPayoutFor(t *testing.T) {
	bid := decimal.NewFromInt(10)

	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeDiamond, "50"},
		{OutcomeGold, "25"},
		{OutcomeOil, "12.5"},
		{OutcomeDust, "0"},
		{OutcomeRock, "0"},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			payout, err := PayoutFor(tt.outcome, bid, testMultipliers())
			require.NoError(t, err)
			assert.True(t, payout.Equal(decimal.RequireFromString(tt.want)),
				"got %s want %s", payout, tt.want)
		})
	}
}

func TestPayoutLinearInBid(t *testing.T) {
	m := testMultipliers()

	for _, outcome := range CanonicalOrder {
		bid := decimal.NewFromFloat(3.7)

		single, err := PayoutFor(outcome, bid, m)
		require.NoError(t, err)

		double, err := PayoutFor(outcome, bid.Mul(decimal.NewFromInt(2)), m)
		require.NoError(t, err)

		assert.True(t, double.Equal(single.Mul(decimal.NewFromInt(2))),
			"payout for %s is not linear: 2x bid gave %s, expected %s", outcome, double, single.Mul(decimal.NewFromInt(2)))
	}
}

func TestPayoutRejectsUnknownOutcome(t *testing.T) {
	_, err := PayoutFor(Outcome("emerald"), decimal.NewFromInt(1), testMultipliers())
	assert.ErrorIs(t, err, ErrInvalidOutcome)
}
