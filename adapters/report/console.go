package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"randsys/domain/stats"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// WriteSearchSummary prints one line per family: candidate count, how many
// reached the entropy floor, and the winner
func WriteSearchSummary(w io.Writer, searches []FamilySearch) {
	table := newTable(w, []string{"Family", "Candidates", "Qualified", "Best", "Variance"})
	for _, s := range searches {
		best, variance := "-", "-"
		if s.Result.Found() {
			best = s.Result.Descriptor().String()
			variance = formatFloat(s.Result.Variance)
		}
		table.Append([]string{
			s.Family.DisplayName(),
			strconv.Itoa(len(s.Result.Scores)),
			strconv.Itoa(s.Result.QualifiedCount()),
			best,
			variance,
		})
	}
	table.Render()
}

// WriteCandidates prints every scored candidate of a single search. The
// winner is marked with "*".
func WriteCandidates(w io.Writer, result stats.SearchResult) {
	table := newTable(w, []string{"#", "Candidate", "Entropy", "Variance", "Qualified"})
	for _, score := range result.Scores {
		index := strconv.Itoa(score.Index)
		if score.Index == result.BestIndex {
			index += "*"
		}
		variance := "-"
		if score.Qualified {
			variance = formatFloat(score.Variance)
		}
		table.Append([]string{
			index,
			score.Source.String(),
			formatFloat(score.EntropyFraction),
			variance,
			strconv.FormatBool(score.Qualified),
		})
	}
	table.Render()
}

// WriteTrajectorySummary prints the final and mean values of each trajectory
func WriteTrajectorySummary(w io.Writer, trajectories []stats.Trajectory) {
	table := newTable(w, []string{"Label", "Source", "Mean entropy", "Final entropy", "Final variance"})
	for _, t := range trajectories {
		table.Append([]string{
			t.Label.String(),
			t.Source.String(),
			formatFloat(mean(t.Entropy)),
			formatFloat(last(t.Entropy)),
			formatFloat(last(t.Variance)),
		})
	}
	table.Render()
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func last(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
