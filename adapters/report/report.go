// Package report renders study results for people: console tables via
// tablewriter and Markdown/HTML documents via gomarkdown.
package report

import (
	"randsys/domain/run"
	"randsys/domain/source"
	"randsys/domain/stats"
)

// FamilySearch is the search outcome of one parameterized family
type FamilySearch struct {
	Family source.Kind
	Result stats.SearchResult
}

// Report is everything a rendered study report shows
type Report struct {
	Manifest     *run.StudyManifest
	Searches     []FamilySearch
	Trajectories []stats.Trajectory
}

// Skipped lists the families whose search found no qualifying candidate
func (r Report) Skipped() []source.Kind {
	var skipped []source.Kind
	for _, s := range r.Searches {
		if !s.Result.Found() {
			skipped = append(skipped, s.Family)
		}
	}
	return skipped
}

// steps is the longest trajectory length
func (r Report) steps() int {
	longest := 0
	for _, t := range r.Trajectories {
		longest = max(longest, len(t.Entropy))
	}
	return longest
}
