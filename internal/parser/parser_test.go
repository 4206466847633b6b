package parser

import (
	"bytes"
	"errors"
	"testing"

	"github.com/anthanhphan/go-sheet-charts/internal/domain"
	"github.com/xuri/excelize/v2"
)

func TestParse_CSV(t *testing.T) {
	data := []byte("name,amount,region\nWidget,5,EU\nGadget,12,US\nDoohickey,3,EU\n")

	cols, rows, err := Parse(domain.FileTypeCSV, data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	wantCols := []string{"name", "amount", "region"}
	if len(cols) != len(wantCols) {
		t.Fatalf("columns = %v, want %v", cols, wantCols)
	}
	for i := range wantCols {
		if cols[i] != wantCols[i] {
			t.Errorf("cols[%d] = %q, want %q", i, cols[i], wantCols[i])
		}
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0]["name"] != "Widget" || rows[0]["amount"] != "5" || rows[0]["region"] != "EU" {
		t.Errorf("unexpected first row %v", rows[0])
	}
	if rows[2]["name"] != "Doohickey" {
		t.Errorf("unexpected last row %v", rows[2])
	}
}

func TestParse_CSVRaggedRows(t *testing.T) {
	// A short row omits its trailing keys; a long one drops the overflow.
	data := []byte("a,b,c\n1,2\n1,2,3,4\n")

	_, rows, err := Parse(domain.FileTypeCSV, data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if _, ok := rows[0]["c"]; ok {
		t.Errorf("short row must omit missing trailing column, got %v", rows[0])
	}
	if len(rows[1]) != 3 {
		t.Errorf("long row must drop cells past the header, got %v", rows[1])
	}
}

func TestParse_CSVHeaderOnly(t *testing.T) {
	_, rows, err := Parse(domain.FileTypeCSV, []byte("name,amount\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no data rows, got %d", len(rows))
	}
}

func TestParse_EmptyCSV(t *testing.T) {
	_, _, err := Parse(domain.FileTypeCSV, nil)
	if !errors.Is(err, ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
}

func TestParse_UnknownType(t *testing.T) {
	if _, _, err := Parse("pdf", []byte("x")); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

func TestParse_XLSX(t *testing.T) {
	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	cells := [][]any{
		{"name", "amount"},
		{"Widget", 5},
		{"Gadget", 12},
	}
	for i, row := range cells {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	cols, rows, err := Parse(domain.FileTypeXLSX, buf.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cols) != 2 || cols[0] != "name" || cols[1] != "amount" {
		t.Fatalf("columns = %v", cols)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["name"] != "Widget" || rows[0]["amount"] != "5" {
		t.Errorf("unexpected first row %v", rows[0])
	}
}

func TestParse_XLSXGarbage(t *testing.T) {
	if _, _, err := Parse(domain.FileTypeXLSX, []byte("not a zip archive")); err == nil {
		t.Fatalf("expected error for malformed workbook")
	}
}
