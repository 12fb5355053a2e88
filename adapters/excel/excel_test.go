package excel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randsys/domain/core"
	"randsys/domain/stats"
	"randsys/internal/errors"
)

func sampleRows() []stats.Row {
	return []stats.Row{
		{Label: core.Label("Deck entropy"), Values: []float64{1, 0.7924812503605781, 0.5}},
		{Label: core.Label("Deck variance"), Values: []float64{0.1875, 0.25, 0}},
		{Label: core.Label("Dice entropy"), Values: []float64{1, 1, 1}},
	}
}

func TestWriteCSVRowLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, NewDataWriter(path).WriteRows(sampleRows()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Deck entropy,1,0.7924812503605781,0.5", lines[0])
	assert.Equal(t, "Deck variance,0.1875,0.25,0", lines[1])
	assert.Equal(t, "Dice entropy,1,1,1", lines[2])
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"out.csv", "out.xlsx"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			writer := NewDataWriter(path)
			require.NoError(t, writer.WriteRows(sampleRows()))

			rows, err := NewDataReader(path).ReadRows()
			require.NoError(t, err)
			require.Len(t, rows, 3)

			for i, want := range sampleRows() {
				assert.Equal(t, want.Label, rows[i].Label)
				assert.InDeltaSlice(t, want.Values, rows[i].Values, 1e-12)
			}
		})
	}
}

func TestFormatSelection(t *testing.T) {
	assert.Equal(t, "xlsx", NewDataWriter("a/b/results.XLSX").Format())
	assert.Equal(t, "csv", NewDataWriter("results.txt").Format())
	assert.Equal(t, "xlsx", NewDataWriterWithFormat("results.txt", "xlsx").Format())
	assert.Equal(t, "csv", NewDataWriterWithFormat("results.xlsx", "CSV").Format())

	err := NewDataWriterWithFormat("results.txt", "parquet").WriteRows(sampleRows())
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestWriteToMissingDirectoryFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	err := WriteCSV(path, sampleRows())
	assert.Equal(t, errors.CodeOutputError, errors.GetCode(err))
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv")).ReadRows()
	assert.Error(t, err)
}
