package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"randsys/domain/core"
	"randsys/domain/stats"

	"github.com/xuri/excelize/v2"
)

// DataReader reads result rows back from files produced by DataWriter
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader whose format is inferred from the file extension
func NewDataReader(filePath string) *DataReader {
	fileType := "csv"
	if strings.ToLower(filepath.Ext(filePath)) == ".xlsx" {
		fileType = "xlsx"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadRows parses every row as a label followed by numeric values
func (r *DataReader) ReadRows() ([]stats.Row, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var (
		records [][]string
		err     error
	)
	switch r.fileType {
	case "csv":
		records, err = r.readCSVRecords()
	case "xlsx":
		records, err = r.readExcelRecords()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	rows := make([]stats.Row, 0, len(records))
	for i, rec := range records {
		if len(rec) == 0 {
			continue
		}
		row := stats.Row{Label: core.Label(rec[0]), Values: make([]float64, 0, len(rec)-1)}
		for j, cell := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i+1, j+2, err)
			}
			row.Values = append(row.Values, v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *DataReader) readCSVRecords() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// rows differ in length only if the file was edited by hand; accept it
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return records, nil
}

func (r *DataReader) readExcelRecords() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := SheetName
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		sheet = f.GetSheetName(0)
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return records, nil
}
