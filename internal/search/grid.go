package search

import (
	"randsys/adapters/sources"
	"randsys/domain/source"
	apperrors "randsys/internal/errors"
)

// ReplenishingGrid builds one ReplenishingDeck per (size factor, refill
// threshold) pair in [1, maxSizeFactor] x [1, maxRefillThreshold]. Size
// factor is the outer loop, so candidates are ordered by size factor first.
func ReplenishingGrid(n, maxSizeFactor, maxRefillThreshold int, rng source.RNG) ([]source.Source, error) {
	if maxSizeFactor < 1 || maxRefillThreshold < 1 {
		return nil, apperrors.InvalidInputf("grid bounds must be >= 1, got size factor %d and refill threshold %d",
			maxSizeFactor, maxRefillThreshold)
	}

	candidates := make([]source.Source, 0, maxSizeFactor*maxRefillThreshold)
	for sizeFactor := 1; sizeFactor <= maxSizeFactor; sizeFactor++ {
		for threshold := 1; threshold <= maxRefillThreshold; threshold++ {
			deck, err := sources.NewReplenishingDeck(n, sizeFactor, threshold, rng)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, deck)
		}
	}
	return candidates, nil
}

// AdaptiveSweep builds one AdaptiveWeighted per decrease factor
// (i+0.5)/divisions for i in [0, divisions): evenly spaced bucket midpoints
// over (0, 1).
func AdaptiveSweep(n, divisions int, rng source.RNG) ([]source.Source, error) {
	if divisions < 1 {
		return nil, apperrors.InvalidInputf("decrease factor divisions must be >= 1, got %d", divisions)
	}

	candidates := make([]source.Source, 0, divisions)
	for i := 0; i < divisions; i++ {
		factor := (float64(i) + 0.5) / float64(divisions)
		dice, err := sources.NewAdaptiveWeighted(n, factor, rng)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, dice)
	}
	return candidates, nil
}
