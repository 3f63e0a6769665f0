package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Frame is one raw tabular feed: the header row plus data rows, everything as
// strings. Feeds disagree on header spelling and column order; the column
// mapper resolves that per logical field.
type Frame struct {
	Headers []string
	Rows    [][]string
}

func (f Frame) Empty() bool {
	return len(f.Rows) == 0
}

// ReadFrame parses a CSV feed into a Frame. Short rows are padded so column
// lookups stay in bounds; feeds occasionally truncate trailing empty cells.
func ReadFrame(r io.Reader) (Frame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return Frame{}, fmt.Errorf("read csv frame: %w", err)
	}
	if len(records) == 0 {
		return Frame{}, nil
	}

	headers := records[0]
	rows := records[1:]
	for i, row := range rows {
		if len(row) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, row)
			rows[i] = padded
		}
	}

	return Frame{Headers: headers, Rows: rows}, nil
}

// findColumn returns the index of the first header matching any option,
// case-insensitively and in option priority order. -1 when nothing matches.
func findColumn(headers []string, options ...string) int {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}
	for _, opt := range options {
		for i, h := range lowered {
			if h == opt {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
