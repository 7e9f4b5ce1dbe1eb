package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/packlabs/dva-go/internal/domain/repository"
)

var (
	// ErrMissingCSVColumns indicates the CSV header lacks one of the
	// required columns.
	ErrMissingCSVColumns = errors.New("csv is missing required columns")

	// ErrEmptyCSV indicates the CSV contained no header row.
	ErrEmptyCSV = errors.New("csv file is empty")
)

// Required CSV column names, matched case-insensitively after trimming.
const (
	csvColumnSampleID = "sample id"
	csvColumnWeight   = "weight"
	csvColumnUnit     = "unit"
)

// ParseSamplesCSV reads a sample measurement CSV into raw import rows.
// The header must contain "Sample ID", "Weight" and "Unit" columns in
// any order and any letter case; extra columns are ignored. Rows with
// too few fields read empty strings for the missing columns. Field
// values are returned untouched for per-row validation during import.
//
// Parameters:
//   - r: the CSV content
//
// Returns:
//   - []repository.ImportRow: the raw data rows
//   - error: ErrEmptyCSV, ErrMissingCSVColumns or a read error
func ParseSamplesCSV(r io.Reader) ([]repository.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	idCol, okID := columns[csvColumnSampleID]
	weightCol, okWeight := columns[csvColumnWeight]
	unitCol, okUnit := columns[csvColumnUnit]
	if !okID || !okWeight || !okUnit {
		missing := make([]string, 0, 3)
		for _, required := range []string{csvColumnSampleID, csvColumnWeight, csvColumnUnit} {
			if _, ok := columns[required]; !ok {
				missing = append(missing, required)
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrMissingCSVColumns, strings.Join(missing, ", "))
	}

	var rows []repository.ImportRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		// A short row yields empty fields, so it fails per-row
		// validation during import and counts as skipped there.
		field := func(i int) string {
			if i < len(record) {
				return record[i]
			}
			return ""
		}
		rows = append(rows, repository.ImportRow{
			ID:     field(idCol),
			Weight: field(weightCol),
			Unit:   field(unitCol),
		})
	}
	return rows, nil
}

// ImportSamplesCSV parses a CSV stream and imports its rows into the
// sample store. Invalid or duplicate rows are skipped and counted, so
// a partially bad file still imports its good rows.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - r: the CSV content
//
// Returns:
//   - repository.ImportSummary: imported and skipped row counts
//   - error: a parse error or storage error
func (s *AnalyzerService) ImportSamplesCSV(ctx context.Context, r io.Reader) (repository.ImportSummary, error) {
	rows, err := ParseSamplesCSV(r)
	if err != nil {
		return repository.ImportSummary{}, err
	}
	return s.samples.ImportBatch(ctx, rows)
}
