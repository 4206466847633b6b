// Package parser turns uploaded spreadsheet bytes into ordered columns and
// string-keyed rows. The first row is the header; every following row maps
// header name to cell value. The lifecycle core never sees raw bytes.
package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/anthanhphan/go-sheet-charts/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ErrEmptyPayload rejects uploads without a header row.
var ErrEmptyPayload = errors.New("spreadsheet has no rows")

// Parse dispatches on the declared file type.
func Parse(t domain.FileType, data []byte) ([]string, []domain.Row, error) {
	switch t {
	case domain.FileTypeCSV:
		return parseCSV(data)
	case domain.FileTypeXLSX, domain.FileTypeXLS:
		return parseWorkbook(data)
	default:
		return nil, nil, fmt.Errorf("unsupported file type %q", t)
	}
}

func parseCSV(data []byte) ([]string, []domain.Row, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, ErrEmptyPayload
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}

	var rows []domain.Row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, rowFromCells(header, record))
	}
	return header, rows, nil
}

func parseWorkbook(data []byte) ([]string, []domain.Row, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = wb.Close() }()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrEmptyPayload
	}

	cells, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(cells) == 0 {
		return nil, nil, ErrEmptyPayload
	}

	header := cells[0]
	rows := make([]domain.Row, 0, len(cells)-1)
	for _, record := range cells[1:] {
		rows = append(rows, rowFromCells(header, record))
	}
	return header, rows, nil
}

// rowFromCells zips header names with cell values. Cells past the header
// are dropped; short rows simply omit the trailing keys.
func rowFromCells(header, cells []string) domain.Row {
	row := make(domain.Row, len(header))
	for i, col := range header {
		if col == "" {
			continue
		}
		if i < len(cells) {
			row[col] = cells[i]
		}
	}
	return row
}
