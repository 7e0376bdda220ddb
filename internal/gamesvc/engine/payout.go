package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Multipliers are the paying outcome multipliers of a game config.
// Dust and rock always pay zero.
type Multipliers struct {
	Diamond decimal.Decimal
	Gold    decimal.Decimal
	Oil     decimal.Decimal
}

// PayoutFor computes the amount won by a resolved outcome. The bid must
// already be validated against the config's allowed bids; this is pure
// arithmetic and does not re-check it.
func PayoutFor(outcome Outcome, bid decimal.Decimal, m Multipliers) (decimal.Decimal, error) {
	switch outcome {
	case OutcomeDiamond:
		return bid.Mul(m.Diamond), nil
	case OutcomeGold:
		return bid.Mul(m.Gold), nil
	case OutcomeOil:
		return bid.Mul(m.Oil), nil
	case OutcomeDust, OutcomeRock:
		return decimal.Zero, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidOutcome, outcome)
	}
}
