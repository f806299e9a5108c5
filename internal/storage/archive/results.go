package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/newthinker/lockup/internal/backtest"
	"github.com/newthinker/lockup/internal/core"
)

const resultsRoot = "results"

// Results stores backtest results as JSON documents keyed by symbol and run ID
type Results struct {
	store Storage
}

// NewResults wraps a Storage backend
func NewResults(store Storage) *Results {
	return &Results{store: store}
}

// Key returns the archive key for a result
func Key(symbol, runID string) string {
	return path.Join(resultsRoot, strings.ToUpper(symbol), runID+".json")
}

// Save archives r and returns its key
func (a *Results) Save(ctx context.Context, r *backtest.Result) (string, error) {
	if r.RunID == "" {
		return "", core.WrapError(core.ErrArchiveFailed, fmt.Errorf("result has no run id"))
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, fmt.Errorf("encoding result: %w", err))
	}

	key := Key(r.Symbol, r.RunID)
	if err := a.store.Put(ctx, key, data); err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, fmt.Errorf("writing %s: %w", key, err))
	}
	return key, nil
}

// Load reads a previously archived result
func (a *Results) Load(ctx context.Context, key string) (*backtest.Result, error) {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, fmt.Errorf("reading %s: %w", key, err))
	}

	var r backtest.Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, fmt.Errorf("decoding %s: %w", key, err))
	}
	return &r, nil
}

// Keys lists archived result keys for a symbol
func (a *Results) Keys(ctx context.Context, symbol string) ([]string, error) {
	keys, err := a.store.List(ctx, path.Join(resultsRoot, strings.ToUpper(symbol))+"/")
	if err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}
	return keys, nil
}
