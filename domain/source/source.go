// Package source defines the capability every randomness source exposes.
//
// A Source is mutated in place by Sample and is not safe for concurrent use.
// After Reset its future behaviour is indistinguishable from a freshly
// constructed source with the same parameters.
package source

import (
	"fmt"
	"strconv"
	"strings"
)

// Source produces samples in [0, AlphabetSize()) from an evolving internal state.
type Source interface {
	// Reset restores the freshly-constructed state.
	Reset()
	// Sample draws the next value and advances the state.
	Sample() int
	// Entropy is the Shannon entropy (nats) of the distribution of the next draw.
	Entropy() float64
	// AlphabetSize is the exclusive upper bound of sampled values.
	AlphabetSize() int
}

// RNG is the random stream threaded into every source. *math/rand/v2.Rand
// satisfies it.
type RNG interface {
	IntN(n int) int
	Float64() float64
}

// Kind names a source algorithm family
type Kind string

const (
	KindUniform          Kind = "uniform"
	KindExhaustiveDeck   Kind = "exhaustive_deck"
	KindReplenishingDeck Kind = "replenishing_deck"
	KindAdaptiveWeighted Kind = "adaptive_weighted"
)

// Kinds lists every family in reporting order
func Kinds() []Kind {
	return []Kind{KindExhaustiveDeck, KindUniform, KindReplenishingDeck, KindAdaptiveWeighted}
}

// DisplayName is the human label used in result rows
func (k Kind) DisplayName() string {
	switch k {
	case KindUniform:
		return "Dice"
	case KindExhaustiveDeck:
		return "Deck"
	case KindReplenishingDeck:
		return "Generalized Deck"
	case KindAdaptiveWeighted:
		return "Dynamic Dice"
	default:
		return string(k)
	}
}

// Params carries the construction parameters of the parameterized families.
// Fields not used by a kind are ignored.
type Params struct {
	SizeFactor      int     `json:"size_factor,omitempty"`
	RefillThreshold int     `json:"refill_threshold,omitempty"`
	DecreaseFactor  float64 `json:"decrease_factor,omitempty"`
}

// Descriptor identifies a constructed source for labels and reports
type Descriptor struct {
	Kind         Kind   `json:"kind"`
	AlphabetSize int    `json:"alphabet_size"`
	Params       Params `json:"params"`
}

// String renders the descriptor as kind(n=..., params...)
func (d Descriptor) String() string {
	parts := []string{"n=" + strconv.Itoa(d.AlphabetSize)}
	switch d.Kind {
	case KindReplenishingDeck:
		parts = append(parts,
			fmt.Sprintf("size_factor=%d", d.Params.SizeFactor),
			fmt.Sprintf("refill_threshold=%d", d.Params.RefillThreshold))
	case KindAdaptiveWeighted:
		parts = append(parts, "decrease_factor="+strconv.FormatFloat(d.Params.DecreaseFactor, 'g', 6, 64))
	}
	return fmt.Sprintf("%s(%s)", d.Kind, strings.Join(parts, ", "))
}

// Describer is implemented by sources that can report their kind and parameters
type Describer interface {
	Describe() Descriptor
}

// Describe returns the descriptor of src, or a bare one when src does not implement Describer
func Describe(src Source) Descriptor {
	if d, ok := src.(Describer); ok {
		return d.Describe()
	}
	return Descriptor{Kind: Kind(fmt.Sprintf("%T", src)), AlphabetSize: src.AlphabetSize()}
}
