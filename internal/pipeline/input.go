// Package pipeline turns an input file of profile URLs into an output
// file of contact records: read identifiers, run the lookup engine over
// them one at a time, write the results.
package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadIdentifiers loads profile URLs from the named column of a tabular
// input file. CSV is the default; .xlsx files are read from the first
// sheet. One identifier is returned per data row, in file order; empty
// cells come back as "" so every row still produces an output record.
func ReadIdentifiers(path, column string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readIdentifiersXLSX(path, column)
	}
	return readIdentifiersCSV(path, column)
}

func readIdentifiersCSV(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "input: open csv")
	}
	defer f.Close()

	// Spreadsheet exports often carry a BOM and are sometimes UTF-16;
	// decode transparently so the header column still matches.
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(f, dec))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "input: read csv")
	}

	return identifiersFromRows(rows, column)
}

func readIdentifiersXLSX(path, column string) ([]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "input: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("input: xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}

	return identifiersFromRows(rows, column)
}

// identifiersFromRows finds the identifier column in the header row and
// collects its value from every data row. The header match is
// case-insensitive.
func identifiersFromRows(rows [][]string, column string) ([]string, error) {
	if len(rows) == 0 {
		return nil, eris.New("input: file is empty")
	}

	idx := -1
	for i, col := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(col), column) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, eris.Errorf("input: missing required column %q", column)
	}

	ids := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		v := ""
		if idx < len(row) {
			v = strings.TrimSpace(row[idx])
		}
		ids = append(ids, v)
	}

	return ids, nil
}
