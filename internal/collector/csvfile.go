package collector

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/newthinker/lockup/internal/core"
)

// CSVFile loads bars from a CSV file with a date,open,high,low,close,volume header
type CSVFile struct{}

// NewCSVFile creates a CSV file source
func NewCSVFile() *CSVFile {
	return &CSVFile{}
}

func (c *CSVFile) Name() string {
	return "csv"
}

// LoadBars reads every row of the file at path
func (c *CSVFile) LoadBars(ctx context.Context, path string) ([]core.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(core.ErrIngestFailed, fmt.Errorf("opening %s: %w", path, err))
	}
	defer f.Close()

	bars, err := ReadBars(f)
	if err != nil {
		return nil, core.WrapError(core.ErrIngestFailed, fmt.Errorf("reading %s: %w", path, err))
	}
	return bars, nil
}

// requiredColumns must all appear in the header row and be non-blank in every record
var requiredColumns = []string{"date", "open", "high", "low", "close", "volume"}

const byteOrderMark = "\ufeff"

// ReadBars decodes bar CSV from r. Dates are trimmed; empty or header-only input
// returns no bars. A missing column or a blank required cell fails the read.
func ReadBars(r io.Reader) ([]core.Bar, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(bytes.TrimPrefix(data, []byte(byteOrderMark)))) == 0 {
		return []core.Bar{}, nil
	}

	normalized, err := normalize(data)
	if err != nil {
		return nil, err
	}

	var rows []*core.Bar
	if err := gocsv.Unmarshal(bytes.NewReader(normalized), &rows); err != nil {
		return nil, err
	}

	bars := make([]core.Bar, 0, len(rows))
	for _, row := range rows {
		b := *row
		b.Date = strings.TrimSpace(b.Date)
		bars = append(bars, b)
	}
	return bars, nil
}

// normalize parses the records, checks the header and every required cell, and
// re-encodes them with a clean header row.
func normalize(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, []byte(byteOrderMark))
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, err
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
		index[header[i]] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	for n, record := range records[1:] {
		for _, col := range requiredColumns {
			if strings.TrimSpace(record[index[col]]) == "" {
				return nil, fmt.Errorf("row %d: empty %s", n+1, col)
			}
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
