package engine

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand"
)

// Source yields uniform integers for outcome draws. Production uses the
// crypto source; audit replay and tests inject a seeded one.
type Source interface {
	// Int64n returns a uniform integer in [0, n). n must be > 0.
	Int64n(n int64) (int64, error)
}

// NewCryptoSource returns the production draw source backed by
// crypto/rand. Safe for concurrent use.
func NewCryptoSource() Source {
	return cryptoSource{}
}

type cryptoSource struct{}

func (cryptoSource) Int64n(n int64) (int64, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0, fmt.Errorf("crypto draw: %w", err)
	}
	return v.Int64(), nil
}

// NewSeededSource returns a deterministic source: same seed, same draw
// sequence, bit for bit. Not safe for concurrent use; give each replay
// its own.
func NewSeededSource(seed int64) Source {
	return &seededSource{r: mrand.New(mrand.NewSource(seed))}
}

type seededSource struct {
	r *mrand.Rand
}

func (s *seededSource) Int64n(n int64) (int64, error) {
	return s.r.Int63n(n), nil
}

// Draw resolves one outcome from a distribution. The draw lands in
// [0, Total) and the first entry whose cumulative weight exceeds it wins.
// An outcome with zero weight has an empty slot and can never win.
func Draw(d Distribution, src Source) (Outcome, error) {
	if len(d.Entries) == 0 || d.Total <= 0 {
		return "", fmt.Errorf("%w: empty distribution", ErrInvalidConfig)
	}

	n, err := src.Int64n(d.Total)
	if err != nil {
		return "", err
	}

	for _, e := range d.Entries {
		if n < e.Cumulative {
			return e.Outcome, nil
		}
	}

	// unreachable while the source honors [0, Total)
	return "", fmt.Errorf("%w: draw %d outside distribution total %d", ErrInvalidOutcome, n, d.Total)
}
