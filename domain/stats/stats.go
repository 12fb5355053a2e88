// Package stats holds the pure statistics shared by the measurement engine and
// the parameter search.
package stats

import (
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Variance returns the population variance of a count vector: the mean of the
// squared deviations from sum(counts)/len(counts). An empty vector has
// variance 0. Variance never mutates counts.
func Variance(counts []int) float64 {
	if len(counts) == 0 {
		return 0
	}
	data := make(mstats.Float64Data, len(counts))
	for i, c := range counts {
		data[i] = float64(c)
	}
	v, err := mstats.PopulationVariance(data)
	if err != nil {
		return 0
	}
	return v
}

// Entropy returns the Shannon entropy in nats of a probability vector.
// Zero entries contribute nothing.
func Entropy(p []float64) float64 {
	return stat.Entropy(p)
}

// MaxEntropy is the entropy of the uniform distribution over n values
func MaxEntropy(n int) float64 {
	return math.Log(float64(n))
}

// EntropyFraction normalizes an entropy total accumulated over count
// observations to a fraction of MaxEntropy(n). A one-valued alphabet has
// MaxEntropy 0 and is reported as fully random.
func EntropyFraction(total float64, count int, n int) float64 {
	if n <= 1 {
		return 1
	}
	return total / (float64(count) * MaxEntropy(n))
}
