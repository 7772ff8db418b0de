package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/aggarwalkavyanew-dev/apollo-contact-extractor/internal/model"
)

// Output formats accepted by WriteRecords.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// WriteRecords writes records to path in the given format. An empty
// batch still produces a valid file (header-only for tabular formats,
// an empty array for JSON).
func WriteRecords(path, format string, records []model.ContactRecord) error {
	switch format {
	case "", FormatCSV:
		return writeCSV(path, records)
	case FormatJSON:
		return writeJSON(path, records)
	case FormatXLSX:
		return writeXLSX(path, records)
	default:
		return eris.Errorf("export: unsupported format %q (use csv, json or xlsx)", format)
	}
}

func writeCSV(path string, records []model.ContactRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(model.OutputColumns); err != nil {
		return eris.Wrap(err, "export: write header")
	}

	for _, rec := range records {
		if err := w.Write(rec.Row()); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}

	return nil
}

func writeJSON(path string, records []model.ContactRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	defer f.Close() //nolint:errcheck

	if records == nil {
		records = []model.ContactRecord{}
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return eris.Wrap(err, "export: encode json")
	}

	return nil
}

func writeXLSX(path string, records []model.ContactRecord) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("contacts")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range model.OutputColumns {
		header.AddCell().Value = col
	}

	for _, rec := range records {
		row := sheet.AddRow()
		for _, v := range rec.Row() {
			row.AddCell().Value = v
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}

	return nil
}

// ReadRecordsCSV reads a CSV produced by WriteRecords back into records.
func ReadRecordsCSV(path string) ([]model.ContactRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "export: open csv")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "export: read csv")
	}
	if len(rows) == 0 {
		return nil, eris.New("export: csv is empty")
	}

	// A foreign or headerless file would otherwise lose its first row
	// to the header skip and misparse the rest.
	header := rows[0]
	if len(header) != len(model.OutputColumns) {
		return nil, eris.Errorf("export: csv header has %d columns, want %d", len(header), len(model.OutputColumns))
	}
	for i, col := range model.OutputColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return nil, eris.Errorf("export: unexpected csv header column %q, want %q", header[i], col)
		}
	}

	records := make([]model.ContactRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, model.RecordFromRow(row))
	}

	return records, nil
}
