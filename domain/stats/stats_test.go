package stats

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"randsys/domain/core"
)

func TestVariance(t *testing.T) {
	tests := []struct {
		name     string
		counts   []int
		expected float64
	}{
		{"single value", []int{5}, 0},
		{"balanced", []int{1, 1, 1, 1}, 0},
		{"one hit", []int{1, 0, 0, 0}, 0.1875},
		{"spread", []int{2, 4, 4, 4, 5, 5, 7, 9}, 4},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Variance(tt.counts), 1e-12)
		})
	}
}

func TestVarianceDoesNotMutateInput(t *testing.T) {
	counts := []int{3, 1, 4, 1, 5}
	Variance(counts)
	assert.Equal(t, []int{3, 1, 4, 1, 5}, counts)
}

func TestVarianceOfEqualCountsIsZero(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("equal counts have zero variance", prop.ForAll(
		func(k, length int) bool {
			counts := make([]int, length)
			for i := range counts {
				counts[i] = k
			}
			return Variance(counts) == 0
		},
		gen.IntRange(0, 100000),
		gen.IntRange(1, 64),
	))

	properties.TestingRun(t)
}

func TestEntropy(t *testing.T) {
	assert.InDelta(t, math.Log(6), Entropy([]float64{1. / 6, 1. / 6, 1. / 6, 1. / 6, 1. / 6, 1. / 6}), 1e-12)
	assert.InDelta(t, 0, Entropy([]float64{1, 0, 0}), 1e-12)
	assert.InDelta(t, math.Log(2), Entropy([]float64{0.5, 0, 0.5}), 1e-12)
}

func TestEntropyFraction(t *testing.T) {
	assert.InDelta(t, 1.0, EntropyFraction(10*math.Log(6), 10, 6), 1e-12)
	assert.InDelta(t, 0.5, EntropyFraction(5*math.Log(4), 10, 4), 1e-12)
	assert.Equal(t, 1.0, EntropyFraction(0, 10, 1))
}

func TestTrajectoryRows(t *testing.T) {
	traj := Trajectory{
		Label:    core.Label("Deck"),
		Entropy:  []float64{1, 0.5},
		Variance: []float64{0.1875, 0},
	}

	rows := traj.Rows()
	if assert.Len(t, rows, 2) {
		assert.Equal(t, core.Label("Deck entropy"), rows[0].Label)
		assert.Equal(t, []float64{1, 0.5}, rows[0].Values)
		assert.Equal(t, core.Label("Deck variance"), rows[1].Label)
		assert.Equal(t, []float64{0.1875, 0}, rows[1].Values)
	}
}

func TestSearchResultWithoutWinner(t *testing.T) {
	var r SearchResult
	assert.False(t, r.Found())
	assert.Equal(t, 0.0, r.Variance)
	assert.Equal(t, 0, r.QualifiedCount())
}
