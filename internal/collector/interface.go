package collector

import (
	"context"

	"github.com/newthinker/lockup/internal/core"
)

// Source produces the ordered bar sequence for one instrument
type Source interface {
	// Name identifies the source in config and logs
	Name() string

	// LoadBars reads all bars at location, oldest first
	LoadBars(ctx context.Context, location string) ([]core.Bar, error)
}
