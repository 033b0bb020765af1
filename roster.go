package idgen

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// rosterColumns is the expected positional column count:
// first name, last name, year group, ID number, photo reference.
const rosterColumns = 5

// headerRow is the one reserved row. A row matching it exactly, field
// for field and case-sensitively, is discarded; any other row is data.
var headerRow = [rosterColumns]string{"First", "Last", "Year", "ID Number", "Photo Number"}

// Row is one raw roster row with its 1-based position in the source.
type Row struct {
	Index  int
	Fields []string
}

// RecordSource streams raw field tuples from a tabular roster.
// Next returns io.EOF after the last row. The literal header row is
// recognized and discarded; everything else passes through without
// validation or type coercion. Restarting means re-opening the source.
type RecordSource interface {
	Next() (Row, error)
	Close() error
}

// OpenRoster opens a roster file, selecting the reader by extension.
// Supported formats: .csv and .xlsx.
func OpenRoster(path string) (RecordSource, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return OpenCSVRoster(path)
	case ".xlsx":
		return OpenXLSXRoster(path)
	default:
		return nil, fmt.Errorf("%w: %q (want .csv or .xlsx)", ErrUnsupportedRoster, ext)
	}
}

// ParseRecord validates a row's column shape and builds a StudentRecord.
func ParseRecord(row Row) (StudentRecord, error) {
	if len(row.Fields) != rosterColumns {
		return StudentRecord{}, fmt.Errorf("%w: row %d has %d fields, want %d",
			ErrMalformedRecord, row.Index, len(row.Fields), rosterColumns)
	}
	return StudentRecord{
		FirstName: row.Fields[0],
		LastName:  row.Fields[1],
		Year:      row.Fields[2],
		ID:        row.Fields[3],
		PhotoRef:  row.Fields[4],
	}, nil
}

// isHeaderRow reports whether fields exactly match the reserved header.
func isHeaderRow(fields []string) bool {
	if len(fields) != rosterColumns {
		return false
	}
	for i, want := range headerRow {
		if fields[i] != want {
			return false
		}
	}
	return true
}

// csvRoster streams rows from a CSV file.
type csvRoster struct {
	file   *os.File
	reader *csv.Reader
	index  int
}

// Compile-time interface checks.
var (
	_ RecordSource = (*csvRoster)(nil)
	_ RecordSource = (*xlsxRoster)(nil)
)

// OpenCSVRoster opens a CSV roster file.
func OpenCSVRoster(path string) (RecordSource, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRecordSource, path, err)
	}
	r := csv.NewReader(f)
	// Column-shape validation belongs to ParseRecord, which names the
	// offending row; let ragged rows through.
	r.FieldsPerRecord = -1
	return &csvRoster{file: f, reader: r}, nil
}

func (r *csvRoster) Next() (Row, error) {
	for {
		fields, err := r.reader.Read()
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		r.index++
		if err != nil {
			return Row{}, fmt.Errorf("%w: row %d: %v", ErrMalformedRecord, r.index, err)
		}
		if isHeaderRow(fields) {
			continue
		}
		return Row{Index: r.index, Fields: fields}, nil
	}
}

func (r *csvRoster) Close() error {
	return r.file.Close()
}

// xlsxRoster streams rows from the first sheet of an XLSX workbook.
type xlsxRoster struct {
	file  *excelize.File
	rows  *excelize.Rows
	index int
}

// OpenXLSXRoster opens an XLSX roster, reading the first sheet.
func OpenXLSXRoster(path string) (RecordSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRecordSource, path, err)
	}
	sheet := f.GetSheetName(0)
	if sheet == "" {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s: workbook has no sheets", ErrRecordSource, path)
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrRecordSource, path, err)
	}
	return &xlsxRoster{file: f, rows: rows}, nil
}

func (r *xlsxRoster) Next() (Row, error) {
	for r.rows.Next() {
		r.index++
		fields, err := r.rows.Columns()
		if err != nil {
			return Row{}, fmt.Errorf("%w: row %d: %v", ErrMalformedRecord, r.index, err)
		}
		// excelize drops trailing empty cells, so a row whose only gap
		// is the photo reference arrives one field short. Restore it;
		// shorter rows stay malformed.
		if len(fields) == rosterColumns-1 {
			fields = append(fields, "")
		}
		if isHeaderRow(fields) {
			continue
		}
		return Row{Index: r.index, Fields: fields}, nil
	}
	if err := r.rows.Error(); err != nil {
		return Row{}, fmt.Errorf("%w: row %d: %v", ErrMalformedRecord, r.index+1, err)
	}
	return Row{}, io.EOF
}

func (r *xlsxRoster) Close() error {
	rowsErr := r.rows.Close()
	fileErr := r.file.Close()
	if rowsErr != nil {
		return rowsErr
	}
	return fileErr
}
