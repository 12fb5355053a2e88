package sources

import (
	"fmt"
	"strings"

	"randsys/domain/core"
	"randsys/domain/source"
)

// factory.go
// Maps user-facing family names, including the older dice/deck names still
// used in result labels, to source constructors.

// KindConfig describes a source family for listings
type KindConfig struct {
	Kind        source.Kind
	Aliases     []string
	Parameters  []string
	Description string
}

// ParseKind resolves a family name or alias
func ParseKind(name string) (source.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "uniform", "dice":
		return source.KindUniform, nil
	case "exhaustive_deck", "exhaustive", "deck":
		return source.KindExhaustiveDeck, nil
	case "replenishing_deck", "replenishing", "generalized_deck", "g_deck":
		return source.KindReplenishingDeck, nil
	case "adaptive_weighted", "adaptive", "dynamic_dice", "d_dice":
		return source.KindAdaptiveWeighted, nil
	default:
		return "", fmt.Errorf("%w: %s", core.ErrUnknownKind, name)
	}
}

// New constructs a source of the given kind. Parameters unused by the kind are ignored.
func New(kind source.Kind, n int, params source.Params, rng source.RNG) (source.Source, error) {
	var (
		src source.Source
		err error
	)
	switch kind {
	case source.KindUniform:
		src, err = NewUniform(n, rng)
	case source.KindExhaustiveDeck:
		src, err = NewExhaustiveDeck(n, rng)
	case source.KindReplenishingDeck:
		src, err = NewReplenishingDeck(n, params.SizeFactor, params.RefillThreshold, rng)
	case source.KindAdaptiveWeighted:
		src, err = NewAdaptiveWeighted(n, params.DecreaseFactor, rng)
	default:
		err = invalidParam(fmt.Errorf("%w: %s", core.ErrUnknownKind, kind))
	}
	if err != nil {
		// never hand back a typed nil inside the interface
		return nil, err
	}
	return src, nil
}

// Configs returns every family for display
func Configs() []KindConfig {
	return []KindConfig{
		{
			Kind:        source.KindExhaustiveDeck,
			Aliases:     []string{"deck", "exhaustive"},
			Description: "One card per value, dealt without replacement, refilled when empty",
		},
		{
			Kind:        source.KindUniform,
			Aliases:     []string{"dice", "uniform"},
			Description: "Independent uniform draws; entropy is always ln(n)",
		},
		{
			Kind:        source.KindReplenishingDeck,
			Aliases:     []string{"generalized_deck", "replenishing"},
			Parameters:  []string{"size_factor >= 1", "refill_threshold >= 1"},
			Description: "size_factor copies per value, topped up when fewer than refill_threshold cards remain",
		},
		{
			Kind:        source.KindAdaptiveWeighted,
			Aliases:     []string{"dynamic_dice", "adaptive"},
			Parameters:  []string{"decrease_factor in (0, 1]"},
			Description: "Weighted draws; the drawn value's weight is multiplied by decrease_factor and renormalized",
		},
	}
}
