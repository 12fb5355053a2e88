package sources

import (
	"randsys/domain/core"
	"randsys/domain/source"
	apperrors "randsys/internal/errors"
)

// invalidParam reports a construction parameter outside its domain. The
// result carries CodeInvalidInput and matches core.ErrInvalidParameter.
func invalidParam(cause error) error {
	return &apperrors.AppError{
		Code:    apperrors.CodeInvalidInput,
		Message: "invalid source configuration",
		Cause:   cause,
	}
}

// validateBase checks what every variant needs: at least one value and a stream
func validateBase(n int, rng source.RNG) error {
	if n < 1 {
		return invalidParam(core.NewParameterError("alphabet_size", n, ">= 1"))
	}
	if rng == nil {
		return invalidParam(core.ErrMissingRNG)
	}
	return nil
}

// fill writes copies of every value 0..n-1, in value order, onto deck
func fill(deck []int, n, copies int) []int {
	for c := 0; c < copies; c++ {
		for v := 0; v < n; v++ {
			deck = append(deck, v)
		}
	}
	return deck
}

// take removes and returns deck[i]. Order of the remaining cards is not
// preserved; every pick is uniform over positions so order carries no meaning.
func take(deck []int, i int) ([]int, int) {
	v := deck[i]
	last := len(deck) - 1
	deck[i] = deck[last]
	return deck[:last], v
}
