package sources

import (
	"math"

	"randsys/domain/source"
)

// Uniform draws every value with probability 1/n on every draw. It has no
// state, so its entropy is always ln(n).
type Uniform struct {
	n   int
	rng source.RNG
}

var _ source.Source = (*Uniform)(nil)

// NewUniform creates a uniform source over [0, n)
func NewUniform(n int, rng source.RNG) (*Uniform, error) {
	if err := validateBase(n, rng); err != nil {
		return nil, err
	}
	return &Uniform{n: n, rng: rng}, nil
}

func (u *Uniform) Reset() {}

func (u *Uniform) Sample() int {
	return u.rng.IntN(u.n)
}

func (u *Uniform) Entropy() float64 {
	return math.Log(float64(u.n))
}

func (u *Uniform) AlphabetSize() int { return u.n }

func (u *Uniform) Describe() source.Descriptor {
	return source.Descriptor{Kind: source.KindUniform, AlphabetSize: u.n}
}
