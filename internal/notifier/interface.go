package notifier

import (
	"context"

	"github.com/newthinker/lockup/internal/backtest"
)

// Notifier publishes the outcome of a completed backtest
type Notifier interface {
	// Name returns the unique identifier for this notifier
	Name() string

	// Notify sends the run result
	Notify(ctx context.Context, result *backtest.Result) error
}
