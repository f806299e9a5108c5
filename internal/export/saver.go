package export

import (
	"fmt"
	"strings"

	"github.com/newthinker/lockup/internal/backtest"
	"github.com/newthinker/lockup/internal/core"
)

// LedgerSaver writes a trade ledger to a file
type LedgerSaver interface {
	Save(trades []backtest.Trade, path string) error
	Extension() string
}

// NewLedgerSaver returns the saver for format (csv, json, parquet)
func NewLedgerSaver(format string) (LedgerSaver, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}, nil
	case "json":
		return JSONSaver{}, nil
	case "parquet":
		return ParquetSaver{}, nil
	default:
		return nil, core.WrapError(core.ErrExportFailed, fmt.Errorf("unsupported format %q", format))
	}
}

// WithExtension appends the saver extension unless path already ends with it
func WithExtension(path string, s LedgerSaver) string {
	ext := "." + s.Extension()
	if strings.HasSuffix(strings.ToLower(path), ext) {
		return path
	}
	return path + ext
}
