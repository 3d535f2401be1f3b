package feed

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Table is a parsed CSV document: an ordered list of rows, each an ordered
// list of cell values. The first row is the header. Rows are not required to
// have the same number of cells.
type Table [][]string

type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid CSV (%v)", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse decodes a CSV document, preserving row and column order. Quoted
// fields may contain commas, quotes and newlines. An empty document parses
// to an empty table.
func Parse(data []byte) (Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	return Table(records), nil
}

// Write writes rows to f as an RFC 4180 CSV document.
func Write(f io.Writer, rows [][]string) error {
	w := csv.NewWriter(f)

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

func (t Table) Empty() bool {
	return len(t) == 0
}

func (t Table) Header() []string {
	if len(t) > 0 {
		return t[0]
	}

	return nil
}

func (t Table) Records() [][]string {
	if len(t) > 1 {
		return t[1:]
	}

	return nil
}

// IDColumn returns the index of the 'id' column in the table header, matched
// after lowercasing and stripping spaces. Defaults to the first column when
// no header cell matches.
func (t Table) IDColumn() int {
	for i, v := range t.Header() {
		if normalise(v) == "id" {
			return i
		}
	}

	return 0
}

// MaxID returns the largest integer ID in column col of rows. Rows without
// an integer value in the ID column are ignored.
func MaxID(rows [][]string, col int) int64 {
	max := int64(0)
	for _, row := range rows {
		if col < len(row) {
			if id, err := strconv.ParseInt(clean(row[col]), 10, 64); err == nil && id > max {
				max = id
			}
		}
	}

	return max
}

// Delta returns the records of t with an ID greater than the largest ID
// already present in the existing sheet rows. An empty sheet gets the whole
// table, header row included.
func Delta(t Table, existing [][]string) [][]string {
	if len(existing) == 0 {
		return t
	}

	col := t.IDColumn()
	watermark := MaxID(existing[1:], col)

	records := [][]string{}
	for _, row := range t.Records() {
		if col < len(row) {
			if id, err := strconv.ParseInt(clean(row[col]), 10, 64); err == nil && id > watermark {
				records = append(records, row)
			}
		}
	}

	return records
}

// MarkerRow builds the audit row appended after a batch of new records - a
// timestamp in the first cell, padded with blank cells to the table width.
func MarkerRow(width int, at time.Time) []string {
	if width < 1 {
		width = 1
	}

	row := make([]string, width)
	row[0] = at.Format("updated at 2006-01-02 15:04:05")

	return row
}

func clean(v string) string {
	return strings.TrimSpace(v)
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}
