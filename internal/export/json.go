package export

import (
	"encoding/json"
	"os"

	"github.com/newthinker/lockup/internal/backtest"
)

// JSONSaver writes the ledger as an indented JSON array
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Save(trades []backtest.Trade, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if trades == nil {
		trades = []backtest.Trade{}
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(trades)
}
