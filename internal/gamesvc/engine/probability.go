package engine

import (
	"errors"
	"fmt"
)

// Outcome is one of the five symbols a move can resolve to.
type Outcome string

const (
	OutcomeDiamond Outcome = "diamond"
	OutcomeDust    Outcome = "dust"
	OutcomeGold    Outcome = "gold"
	OutcomeOil     Outcome = "oil"
	OutcomeRock    Outcome = "rock"
)

// CanonicalOrder fixes the position of each outcome in a distribution.
// Draws walk the entries in this order, which keeps replays bit identical.
var CanonicalOrder = [5]Outcome{OutcomeDiamond, OutcomeDust, OutcomeGold, OutcomeOil, OutcomeRock}

var (
	ErrInvalidConfig  = errors.New("invalid game config")
	ErrInvalidOutcome = errors.New("invalid outcome")
)

// Weights holds the relative outcome weights of a game config. They are
// relative weights, not percentages, and do not need to sum to 100.
type Weights struct {
	Diamond int64
	Dust    int64
	Gold    int64
	Oil     int64
	Rock    int64
}

func (w Weights) ordered() [5]int64 {
	return [5]int64{w.Diamond, w.Dust, w.Gold, w.Oil, w.Rock}
}

// Entry pairs an outcome with its cumulative weight inside a distribution.
type Entry struct {
	Outcome    Outcome
	Cumulative int64
}

// Distribution is the sampling form of a weight vector: cumulative
// weights in canonical order, rising monotonically to Total.
type Distribution struct {
	Entries []Entry
	Total   int64
}

// Normalize validates a weight vector and folds it into cumulative form.
// A negative weight or an all-zero vector fails the config; there is
// never a fallback distribution.
func Normalize(w Weights) (Distribution, error) {
	entries := make([]Entry, 0, len(CanonicalOrder))

	var cum int64
	for i, weight := range w.ordered() {
		if weight < 0 {
			return Distribution{}, fmt.Errorf("%w: negative weight %d for %s", ErrInvalidConfig, weight, CanonicalOrder[i])
		}
		cum += weight
		entries = append(entries, Entry{Outcome: CanonicalOrder[i], Cumulative: cum})
	}

	if cum == 0 {
		return Distribution{}, fmt.Errorf("%w: all outcome weights are zero", ErrInvalidConfig)
	}

	return Distribution{Entries: entries, Total: cum}, nil
}
