package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randsys/adapters/sources"
	"randsys/domain/core"
	"randsys/domain/run"
	"randsys/domain/source"
	"randsys/domain/stats"
	"randsys/internal/rng"
)

func fixture(t *testing.T) Report {
	t.Helper()

	deck, err := sources.NewReplenishingDeck(6, 2, 3, rng.New(1))
	require.NoError(t, err)

	return Report{
		Manifest: run.NewStudyManifest(core.NewRunID(), map[string]interface{}{"steps": 3}, 42, "test"),
		Searches: []FamilySearch{
			{
				Family: source.KindReplenishingDeck,
				Result: stats.SearchResult{
					Best:      deck,
					BestIndex: 1,
					Variance:  0.25,
					Scores: []stats.CandidateScore{
						{Index: 0, EntropyFraction: 0.5},
						{Index: 1, Source: source.Describe(deck), EntropyFraction: 0.95, Variance: 0.25, Qualified: true},
					},
				},
			},
			{
				Family: source.KindAdaptiveWeighted,
				Result: stats.SearchResult{BestIndex: -1, Scores: []stats.CandidateScore{{Index: 0, EntropyFraction: 0.1}}},
			},
		},
		Trajectories: []stats.Trajectory{
			{Label: "Deck", Entropy: []float64{1, 0.9, 0.7}, Variance: []float64{0.1, 0.2, 0.3}},
			{Label: "Dice", Entropy: []float64{1, 1, 1}, Variance: []float64{0.1, 0.4, 0.5}},
		},
	}
}

func TestReport_Skipped(t *testing.T) {
	r := fixture(t)
	assert.Equal(t, []source.Kind{source.KindAdaptiveWeighted}, r.Skipped())
}

func TestMarkdown(t *testing.T) {
	r := fixture(t)
	md := string(Markdown(r))

	assert.Contains(t, md, "# Randomness study")
	assert.Contains(t, md, "`42`")
	assert.Contains(t, md, r.Manifest.Fingerprint.Fingerprint.Short())
	assert.Contains(t, md, "replenishing_deck(n=6, size_factor=2, refill_threshold=3)")
	assert.Contains(t, md, "| Dynamic Dice | 1 | 0 | none | - |")
	assert.Contains(t, md, "- Dynamic Dice")
	assert.Contains(t, md, "| Step | Deck entropy | Deck variance | Dice entropy | Dice variance |")
	assert.Contains(t, md, "| 3 | 0.7000 | 0.3000 | 1.0000 | 0.5000 |")
}

func TestMarkdown_NoManifest(t *testing.T) {
	md := string(Markdown(Report{}))
	assert.Equal(t, "# Randomness study\n\n", md)
}

func TestHTML(t *testing.T) {
	out := string(HTML(fixture(t)))

	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "Randomness study")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "Dynamic Dice")
}

func TestWriteFile_FormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	r := fixture(t)

	mdPath := filepath.Join(dir, "report.md")
	htmlPath := filepath.Join(dir, "report.html")
	require.NoError(t, WriteFile(mdPath, r))
	require.NoError(t, WriteFile(htmlPath, r))

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(md), "# Randomness study"))

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<table>")
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "report.md"), fixture(t))
	require.Error(t, err)
}

func TestConsoleTables(t *testing.T) {
	r := fixture(t)

	var buf bytes.Buffer
	WriteSearchSummary(&buf, r.Searches)
	out := buf.String()
	assert.Contains(t, out, "Generalized Deck")
	assert.Contains(t, out, "replenishing_deck(n=6, size_factor=2, refill_threshold=3)")
	assert.Contains(t, out, "0.2500")

	buf.Reset()
	WriteCandidates(&buf, r.Searches[0].Result)
	assert.Contains(t, buf.String(), "1*")

	buf.Reset()
	WriteTrajectorySummary(&buf, r.Trajectories)
	out = buf.String()
	assert.Contains(t, out, "Deck")
	assert.Contains(t, out, "0.8667")
	assert.Contains(t, out, "0.5000")
}
