package export

import (
	"github.com/newthinker/lockup/internal/backtest"
	"github.com/parquet-go/parquet-go"
)

// ParquetSaver writes the ledger as a Parquet file
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(trades []backtest.Trade, path string) error {
	return parquet.WriteFile(path, trades)
}
