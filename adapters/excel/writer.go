package excel

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"randsys/domain/stats"
	"randsys/internal/errors"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet result rows are written to
const SheetName = "Results"

// DataWriter writes labeled result rows as CSV or XLSX. Each row is the label
// followed by its values; rows keep their input order.
type DataWriter struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataWriter creates a writer whose format is inferred from the file
// extension (.xlsx, anything else is csv)
func NewDataWriter(filePath string) *DataWriter {
	fileType := "csv"
	if strings.ToLower(filepath.Ext(filePath)) == ".xlsx" {
		fileType = "xlsx"
	}
	return &DataWriter{filePath: filePath, fileType: fileType}
}

// NewDataWriterWithFormat creates a writer with an explicit format; an empty
// format falls back to inference from the extension
func NewDataWriterWithFormat(filePath, format string) *DataWriter {
	w := NewDataWriter(filePath)
	if format != "" {
		w.fileType = strings.ToLower(format)
	}
	return w
}

// Path returns the destination file path
func (w *DataWriter) Path() string { return w.filePath }

// Format returns "csv" or "xlsx"
func (w *DataWriter) Format() string { return w.fileType }

// WriteRows writes every row to the destination file, replacing it
func (w *DataWriter) WriteRows(rows []stats.Row) error {
	switch w.fileType {
	case "csv":
		return WriteCSV(w.filePath, rows)
	case "xlsx":
		return WriteXLSX(w.filePath, rows)
	default:
		return errors.InvalidInputf("unsupported file type: %s", w.fileType)
	}
}

// WriteCSV writes one record per row: label, then each value
func WriteCSV(path string, rows []stats.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.OutputError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range rows {
		if err := w.Write(record(row)); err != nil {
			return errors.OutputError(path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.OutputError(path, err)
	}
	return nil
}

// WriteXLSX writes one sheet row per result row: label in column A, values
// as numbers from column B on
func WriteXLSX(path string, rows []stats.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet so the workbook has a single named sheet
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return errors.OutputError(path, err)
	}

	for r, row := range rows {
		cells := make([]interface{}, 0, len(row.Values)+1)
		cells = append(cells, string(row.Label))
		for _, v := range row.Values {
			cells = append(cells, v)
		}

		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return errors.OutputError(path, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return errors.OutputError(path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.OutputError(path, err)
	}
	return nil
}

func record(row stats.Row) []string {
	rec := make([]string, 0, len(row.Values)+1)
	rec = append(rec, string(row.Label))
	for _, v := range row.Values {
		rec = append(rec, fToStr(v))
	}
	return rec
}

// fToStr uses the shortest representation that parses back to the same float
func fToStr(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
