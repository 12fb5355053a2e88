package search

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randsys/adapters/sources"
	"randsys/domain/core"
	"randsys/domain/source"
	apperrors "randsys/internal/errors"
	"randsys/internal/rng"
	"randsys/internal/testkit"
)

func newTestSearcher() *Searcher {
	logger, _ := test.NewNullLogger()
	return NewSearcher(nil, logger)
}

func TestSelectBestTieGoesToLaterCandidate(t *testing.T) {
	first, second := testkit.Balanced(math.Ln2), testkit.Balanced(math.Ln2)

	result, err := newTestSearcher().SelectBest([]source.Source{first, second}, 0.9, 4, 10)
	require.NoError(t, err)

	require.True(t, result.Found())
	assert.Same(t, second, result.Best)
	assert.Equal(t, 1, result.BestIndex)
	assert.Equal(t, 0.0, result.Variance)
}

func TestSelectBestTieBreakProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	searcher := newTestSearcher()

	properties.Property("last of identical candidates wins", prop.ForAll(
		func(count int) bool {
			candidates := make([]source.Source, count)
			for i := range candidates {
				candidates[i] = testkit.Lopsided(math.Ln2)
			}
			result, err := searcher.SelectBest(candidates, 0.5, 4, 3)
			return err == nil && result.BestIndex == count-1 && result.Best == candidates[count-1]
		},
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}

func TestSelectBestPrefersLowerVariance(t *testing.T) {
	low, high := testkit.Balanced(math.Ln2), testkit.Lopsided(math.Ln2)

	result, err := newTestSearcher().SelectBest([]source.Source{low, high}, 0.9, 4, 10)
	require.NoError(t, err)

	assert.Same(t, low, result.Best)
	assert.Equal(t, 0, result.BestIndex)
	require.Len(t, result.Scores, 2)
	assert.InDelta(t, 4.0, result.Scores[1].Variance, 1e-12)
	assert.Equal(t, 2, result.QualifiedCount())
}

func TestSelectBestSkipsCandidatesBelowFloor(t *testing.T) {
	// perfectly balanced but not random at all
	rigid := testkit.Balanced(0)
	noisy := testkit.Lopsided(math.Ln2)

	result, err := newTestSearcher().SelectBest([]source.Source{rigid, noisy}, 0.9, 4, 10)
	require.NoError(t, err)

	assert.Same(t, noisy, result.Best)
	assert.InDelta(t, 4.0, result.Variance, 1e-12)

	assert.False(t, result.Scores[0].Qualified)
	assert.Equal(t, 0.0, result.Scores[0].Variance)
	assert.InDelta(t, 0.0, result.Scores[0].EntropyFraction, 1e-12)
	assert.True(t, result.Scores[1].Qualified)
}

func TestSelectBestWithoutQualifyingCandidate(t *testing.T) {
	result, err := newTestSearcher().SelectBest([]source.Source{testkit.Balanced(0), testkit.Lopsided(0.1)}, 0.9, 4, 10)
	require.NoError(t, err)

	assert.False(t, result.Found())
	assert.Nil(t, result.Best)
	assert.Equal(t, -1, result.BestIndex)
	assert.Equal(t, 0.0, result.Variance)
	assert.Len(t, result.Scores, 2)

	_, err = Require(result, "adaptive")
	assert.ErrorIs(t, err, core.ErrNoQualifyingCandidate)
	assert.Equal(t, apperrors.CodeNoCandidate, apperrors.GetCode(err))
}

func TestSelectBestResetsEveryTrial(t *testing.T) {
	a, b := testkit.Balanced(math.Ln2), testkit.Lopsided(math.Ln2)

	_, err := newTestSearcher().SelectBest([]source.Source{a, b}, 0.9, 4, 7)
	require.NoError(t, err)

	assert.Equal(t, 7, a.Resets)
	assert.Equal(t, 7, b.Resets)
}

func TestSelectBestRejectsBadInput(t *testing.T) {
	searcher := newTestSearcher()

	_, err := searcher.SelectBest([]source.Source{testkit.Balanced(1), nil}, 0.9, 4, 10)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))

	_, err = searcher.SelectBest([]source.Source{testkit.Balanced(1)}, 0.9, 0, 10)
	assert.ErrorIs(t, err, core.ErrInvalidRun)
}

func TestSelectBestEmptyCandidateList(t *testing.T) {
	result, err := newTestSearcher().SelectBest(nil, 0.9, 4, 10)
	require.NoError(t, err)
	assert.False(t, result.Found())
	assert.Empty(t, result.Scores)
}

func TestReplenishingGridOrder(t *testing.T) {
	candidates, err := ReplenishingGrid(6, 3, 4, rng.New(1))
	require.NoError(t, err)
	require.Len(t, candidates, 12)

	i := 0
	for sizeFactor := 1; sizeFactor <= 3; sizeFactor++ {
		for threshold := 1; threshold <= 4; threshold++ {
			desc := source.Describe(candidates[i])
			assert.Equal(t, source.KindReplenishingDeck, desc.Kind)
			assert.Equal(t, sizeFactor, desc.Params.SizeFactor)
			assert.Equal(t, threshold, desc.Params.RefillThreshold)
			i++
		}
	}

	_, err = ReplenishingGrid(6, 0, 4, rng.New(1))
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
}

func TestAdaptiveSweepFactors(t *testing.T) {
	candidates, err := AdaptiveSweep(6, 4, rng.New(1))
	require.NoError(t, err)
	require.Len(t, candidates, 4)

	for i, want := range []float64{0.125, 0.375, 0.625, 0.875} {
		assert.InDelta(t, want, source.Describe(candidates[i]).Params.DecreaseFactor, 1e-15)
	}

	_, err = AdaptiveSweep(6, 0, rng.New(1))
	assert.Error(t, err)
}

func TestSelectBestOverRealSources(t *testing.T) {
	r := rng.New(2024)
	candidates, err := AdaptiveSweep(6, 10, r)
	require.NoError(t, err)

	result, err := newTestSearcher().SelectBest(candidates, 0.9, 10, 200)
	require.NoError(t, err)
	require.True(t, result.Found())

	best := result.Scores[result.BestIndex]
	assert.True(t, best.Qualified)
	assert.GreaterOrEqual(t, best.EntropyFraction, 0.9)
	for _, s := range result.Scores {
		if s.Qualified {
			assert.GreaterOrEqual(t, s.Variance, result.Variance)
		}
	}

	// a factor of 1 is uniform-equivalent and always clears the floor
	uniformish, err := sources.NewAdaptiveWeighted(6, 1, r)
	require.NoError(t, err)
	result, err = newTestSearcher().SelectBest([]source.Source{uniformish}, 0.999, 10, 50)
	require.NoError(t, err)
	assert.True(t, result.Found())
}
