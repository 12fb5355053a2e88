package sources

import (
	"randsys/domain/core"
	"randsys/domain/source"
	"randsys/domain/stats"
)

// ReplenishingDeck starts with sizeFactor copies of every value and, whenever
// a draw leaves fewer than refillThreshold cards, adds another sizeFactor
// copies of every value. It is never emptied, only topped up, so the deck can
// hold unequal counts per value between refills.
type ReplenishingDeck struct {
	n               int
	sizeFactor      int
	refillThreshold int
	rng             source.RNG

	deck   []int
	counts []int     // copies of each value currently in deck
	probs  []float64 // scratch for Entropy
}

var _ source.Source = (*ReplenishingDeck)(nil)

// NewReplenishingDeck creates a deck over [0, n). sizeFactor and
// refillThreshold must both be at least 1.
func NewReplenishingDeck(n, sizeFactor, refillThreshold int, rng source.RNG) (*ReplenishingDeck, error) {
	if err := validateBase(n, rng); err != nil {
		return nil, err
	}
	if sizeFactor < 1 {
		return nil, invalidParam(core.NewParameterError("size_factor", sizeFactor, ">= 1"))
	}
	if refillThreshold < 1 {
		return nil, invalidParam(core.NewParameterError("refill_threshold", refillThreshold, ">= 1"))
	}

	d := &ReplenishingDeck{
		n:               n,
		sizeFactor:      sizeFactor,
		refillThreshold: refillThreshold,
		rng:             rng,
		deck:            make([]int, 0, n*sizeFactor),
		counts:          make([]int, n),
		probs:           make([]float64, n),
	}
	d.Reset()
	return d, nil
}

func (d *ReplenishingDeck) Reset() {
	d.deck = d.deck[:0]
	for i := range d.counts {
		d.counts[i] = 0
	}
	d.refill()
}

func (d *ReplenishingDeck) refill() {
	d.deck = fill(d.deck, d.n, d.sizeFactor)
	for i := range d.counts {
		d.counts[i] += d.sizeFactor
	}
}

func (d *ReplenishingDeck) Sample() int {
	var v int
	d.deck, v = take(d.deck, d.rng.IntN(len(d.deck)))
	d.counts[v]--
	if len(d.deck) < d.refillThreshold {
		d.refill()
	}
	return v
}

// Entropy is the Shannon entropy of the deck's empirical distribution
func (d *ReplenishingDeck) Entropy() float64 {
	size := float64(len(d.deck))
	for i, c := range d.counts {
		d.probs[i] = float64(c) / size
	}
	return stats.Entropy(d.probs)
}

func (d *ReplenishingDeck) AlphabetSize() int { return d.n }

// DeckSize is the number of cards currently in the deck
func (d *ReplenishingDeck) DeckSize() int { return len(d.deck) }

// Count is the number of copies of v currently in the deck
func (d *ReplenishingDeck) Count(v int) int { return d.counts[v] }

func (d *ReplenishingDeck) SizeFactor() int      { return d.sizeFactor }
func (d *ReplenishingDeck) RefillThreshold() int { return d.refillThreshold }

func (d *ReplenishingDeck) Describe() source.Descriptor {
	return source.Descriptor{
		Kind:         source.KindReplenishingDeck,
		AlphabetSize: d.n,
		Params: source.Params{
			SizeFactor:      d.sizeFactor,
			RefillThreshold: d.refillThreshold,
		},
	}
}
