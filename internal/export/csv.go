package export

import (
	"os"

	"github.com/gocarina/gocsv"
	"github.com/newthinker/lockup/internal/backtest"
)

// CSVSaver writes one row per trade with a header row
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(trades []backtest.Trade, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows := make([]*backtest.Trade, len(trades))
	for i := range trades {
		rows[i] = &trades[i]
	}
	return gocsv.MarshalFile(&rows, f)
}
