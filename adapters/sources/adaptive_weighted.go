package sources

import (
	"randsys/domain/core"
	"randsys/domain/source"
	"randsys/domain/stats"

	"gonum.org/v1/gonum/floats"
)

// AdaptiveWeighted keeps one probability per value. Each draw multiplies the
// chosen value's probability by decreaseFactor and renormalizes, so recently
// drawn values become temporarily less likely. A factor of 1 never adapts and
// behaves like Uniform.
type AdaptiveWeighted struct {
	n              int
	decreaseFactor float64
	rng            source.RNG
	probs          []float64
}

var _ source.Source = (*AdaptiveWeighted)(nil)

// NewAdaptiveWeighted creates an adaptive source over [0, n).
// decreaseFactor must lie in (0, 1]: a factor of 0 would make a value
// permanently unreachable after its first draw.
func NewAdaptiveWeighted(n int, decreaseFactor float64, rng source.RNG) (*AdaptiveWeighted, error) {
	if err := validateBase(n, rng); err != nil {
		return nil, err
	}
	if !(decreaseFactor > 0 && decreaseFactor <= 1) {
		return nil, invalidParam(core.NewParameterError("decrease_factor", decreaseFactor, "in (0, 1]"))
	}

	a := &AdaptiveWeighted{
		n:              n,
		decreaseFactor: decreaseFactor,
		rng:            rng,
		probs:          make([]float64, n),
	}
	a.Reset()
	return a, nil
}

func (a *AdaptiveWeighted) Reset() {
	p := 1 / float64(a.n)
	for i := range a.probs {
		a.probs[i] = p
	}
}

// Sample walks the probabilities in index order, subtracting each from a
// uniform draw until it reaches zero. If rounding leaves mass over after the
// last index, the last value with non-zero probability is chosen.
func (a *AdaptiveWeighted) Sample() int {
	u := a.rng.Float64()
	chosen := -1
	for i, p := range a.probs {
		u -= p
		if u <= 0 {
			chosen = i
			break
		}
	}
	if chosen < 0 {
		chosen = a.lastReachable()
	}

	a.probs[chosen] *= a.decreaseFactor
	floats.Scale(1/floats.Sum(a.probs), a.probs)
	return chosen
}

func (a *AdaptiveWeighted) lastReachable() int {
	for i := len(a.probs) - 1; i > 0; i-- {
		if a.probs[i] > 0 {
			return i
		}
	}
	return 0
}

// Entropy is the Shannon entropy of the current probability vector
func (a *AdaptiveWeighted) Entropy() float64 {
	return stats.Entropy(a.probs)
}

func (a *AdaptiveWeighted) AlphabetSize() int { return a.n }

// Probabilities returns a copy of the current probability vector
func (a *AdaptiveWeighted) Probabilities() []float64 {
	return append([]float64(nil), a.probs...)
}

func (a *AdaptiveWeighted) DecreaseFactor() float64 { return a.decreaseFactor }

func (a *AdaptiveWeighted) Describe() source.Descriptor {
	return source.Descriptor{
		Kind:         source.KindAdaptiveWeighted,
		AlphabetSize: a.n,
		Params:       source.Params{DecreaseFactor: a.decreaseFactor},
	}
}
