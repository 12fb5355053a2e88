package stats

import (
	"randsys/domain/core"
	"randsys/domain/source"
)

// Trajectory is the per-step average of entropy fraction and count variance
// of one source. Both slices have one entry per step.
type Trajectory struct {
	Label    core.Label        `json:"label"`
	Source   source.Descriptor `json:"source"`
	Steps    int               `json:"steps"`
	Trials   int               `json:"trials"`
	Entropy  []float64         `json:"entropy"`
	Variance []float64         `json:"variance"`
}

// Rows splits the trajectory into the "<label> entropy" and "<label> variance"
// rows consumed by the result writers.
func (t Trajectory) Rows() []Row {
	return []Row{
		{Label: core.Label(string(t.Label) + " entropy"), Values: t.Entropy},
		{Label: core.Label(string(t.Label) + " variance"), Values: t.Variance},
	}
}

// Row is one labeled numeric sequence in a serialized result file
type Row struct {
	Label  core.Label `json:"label"`
	Values []float64  `json:"values"`
}

// CandidateScore is the search score of one candidate source. Variance is
// only computed for qualified candidates.
type CandidateScore struct {
	Index           int               `json:"index"`
	Source          source.Descriptor `json:"source"`
	EntropyFraction float64           `json:"entropy_fraction"`
	Variance        float64           `json:"variance"`
	Qualified       bool              `json:"qualified"`
}

// SearchResult is the outcome of a parameter search. Best is nil and
// Variance is 0 when no candidate reached the entropy floor.
type SearchResult struct {
	Best       source.Source    `json:"-"`
	BestIndex  int              `json:"best_index"`
	Variance   float64          `json:"variance"`
	MinEntropy float64          `json:"min_entropy"`
	Scores     []CandidateScore `json:"scores"`
}

// Found reports whether a candidate qualified
func (r SearchResult) Found() bool {
	return r.Best != nil
}

// Descriptor describes the winning source, or the zero Descriptor when none was found
func (r SearchResult) Descriptor() source.Descriptor {
	if r.Best == nil {
		return source.Descriptor{}
	}
	return source.Describe(r.Best)
}

// QualifiedCount counts candidates at or above the entropy floor
func (r SearchResult) QualifiedCount() int {
	n := 0
	for _, s := range r.Scores {
		if s.Qualified {
			n++
		}
	}
	return n
}
