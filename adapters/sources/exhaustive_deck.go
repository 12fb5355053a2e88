package sources

import (
	"math"

	"randsys/domain/source"
)

// ExhaustiveDeck deals every value exactly once per cycle of n draws. The deck
// is refilled right after the draw that empties it, so it is never observed
// empty.
type ExhaustiveDeck struct {
	n    int
	rng  source.RNG
	deck []int
}

var _ source.Source = (*ExhaustiveDeck)(nil)

// NewExhaustiveDeck creates a full deck of one card per value in [0, n)
func NewExhaustiveDeck(n int, rng source.RNG) (*ExhaustiveDeck, error) {
	if err := validateBase(n, rng); err != nil {
		return nil, err
	}
	d := &ExhaustiveDeck{n: n, rng: rng, deck: make([]int, 0, n)}
	d.Reset()
	return d, nil
}

func (d *ExhaustiveDeck) Reset() {
	d.deck = fill(d.deck[:0], d.n, 1)
}

func (d *ExhaustiveDeck) Sample() int {
	var v int
	d.deck, v = take(d.deck, d.rng.IntN(len(d.deck)))
	if len(d.deck) == 0 {
		d.Reset()
	}
	return v
}

// Entropy is ln of the remaining deck size: the next draw is uniform over the
// values not yet dealt in this cycle.
func (d *ExhaustiveDeck) Entropy() float64 {
	return math.Log(float64(len(d.deck)))
}

func (d *ExhaustiveDeck) AlphabetSize() int { return d.n }

// DeckSize is the number of values left in the current cycle
func (d *ExhaustiveDeck) DeckSize() int { return len(d.deck) }

func (d *ExhaustiveDeck) Describe() source.Descriptor {
	return source.Descriptor{Kind: source.KindExhaustiveDeck, AlphabetSize: d.n}
}
