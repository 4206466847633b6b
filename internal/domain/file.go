package domain

import (
	"sort"
	"time"
)

// RetentionWindow is the lifespan of every stored record, measured from its
// creation timestamp. The store guarantees a record is unreachable once the
// window has passed.
const RetentionWindow = 12 * time.Hour

// PreviewRows is how many leading rows are kept as the cheap-read preview.
const PreviewRows = 10

// FileType is the declared spreadsheet format of an upload.
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
	FileTypeXLS  FileType = "xls"
)

// Valid reports whether t is one of the accepted upload formats.
func (t FileType) Valid() bool {
	switch t {
	case FileTypeCSV, FileTypeXLSX, FileTypeXLS:
		return true
	}
	return false
}

// FileStatus is the processing state of a file, independent of its TTL.
type FileStatus string

const (
	StatusProcessing FileStatus = "processing"
	StatusProcessed  FileStatus = "processed"
	StatusFailed     FileStatus = "failed"
)

// Row is one parsed spreadsheet row, keyed by column name.
type Row map[string]any

// File is an uploaded spreadsheet with its parsed tabular payload.
type File struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	Name          string     `json:"file_name"`
	Type          FileType   `json:"file_type"`
	Size          int64      `json:"file_size"`
	Columns       []string   `json:"columns"`
	Rows          []Row      `json:"rows"`
	Preview       []Row      `json:"preview"`
	RowCount      int        `json:"row_count"`
	Status        FileStatus `json:"status"`
	PayloadHandle string     `json:"payload_handle,omitempty"`
	Checksum      uint32     `json:"checksum,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ExpiresAt returns the moment the record leaves the retention window.
func (f *File) ExpiresAt() time.Time {
	return f.CreatedAt.Add(RetentionWindow)
}

// Derive fills the fields computed from the payload: RowCount always equals
// len(Rows), Preview is the first PreviewRows rows, and Columns defaults to
// the keys of the first row (sorted, since map order is not stable) when the
// parser did not supply an ordered header.
func (f *File) Derive() {
	f.RowCount = len(f.Rows)

	n := len(f.Rows)
	if n > PreviewRows {
		n = PreviewRows
	}
	f.Preview = f.Rows[:n]

	if len(f.Columns) == 0 && len(f.Rows) > 0 {
		cols := make([]string, 0, len(f.Rows[0]))
		for k := range f.Rows[0] {
			cols = append(cols, k)
		}
		sort.Strings(cols)
		f.Columns = cols
	}
}

// Clone returns a copy safe to hand to callers; row maps are duplicated so
// stored state cannot be mutated through the returned value.
func (f *File) Clone() *File {
	cp := *f
	cp.Columns = append([]string(nil), f.Columns...)
	cp.Rows = cloneRows(f.Rows)
	cp.Preview = cloneRows(f.Preview)
	return &cp
}

func cloneRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		m := make(Row, len(r))
		for k, v := range r {
			m[k] = v
		}
		out[i] = m
	}
	return out
}
