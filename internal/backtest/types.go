package backtest

import "fmt"

// ExitReason identifies which condition closed a trade
type ExitReason string

const (
	ExitRSI        ExitReason = "rsi"
	ExitTakeProfit ExitReason = "take_profit"
	ExitStopLoss   ExitReason = "stop_loss"
	ExitEndOfData  ExitReason = "end_of_data"
)

// Side is the position state of the simulator
type Side int

const (
	Flat Side = iota
	Short
)

func (s Side) String() string {
	switch s {
	case Short:
		return "short"
	default:
		return "flat"
	}
}

// Trade is a simulated short trade from entry to exit
type Trade struct {
	EntryIndex int        `json:"entry_index" csv:"entry_index" parquet:"entry_index"`
	EntryDate  string     `json:"entry_date" csv:"entry_date" parquet:"entry_date"`
	EntryPrice float64    `json:"entry_price" csv:"entry_price" parquet:"entry_price"`
	ExitIndex  int        `json:"exit_index" csv:"exit_index" parquet:"exit_index"`
	ExitDate   string     `json:"exit_date" csv:"exit_date" parquet:"exit_date"`
	ExitPrice  float64    `json:"exit_price" csv:"exit_price" parquet:"exit_price"`
	Quantity   float64    `json:"quantity" csv:"quantity" parquet:"quantity"`
	ExitReason ExitReason `json:"exit_reason" csv:"exit_reason" parquet:"exit_reason"`
	Closed     bool       `json:"closed" csv:"closed" parquet:"closed"`
}

// PnL returns the short-side profit, zero while the trade is open
func (t Trade) PnL() float64 {
	if !t.Closed {
		return 0
	}
	return (t.EntryPrice - t.ExitPrice) * t.Quantity
}

// IsWin returns true for closed trades that did not lose money
func (t Trade) IsWin() bool {
	return t.Closed && t.PnL() >= 0
}

// IsClosed returns true if the trade has an exit
func (t Trade) IsClosed() bool {
	return t.Closed
}

// Result holds the complete backtest output
type Result struct {
	RunID    string  `json:"run_id"`
	Symbol   string  `json:"symbol"`
	Bars     int     `json:"bars"`
	Trades   []Trade `json:"trades"`
	TotalPnL float64 `json:"total_pnl"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	Stats    Stats   `json:"stats"`
}

// Stats holds performance statistics
type Stats struct {
	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"` // Percentage of non-losing trades
	AveragePnL    float64 `json:"average_pnl"`
	GrossProfit   float64 `json:"gross_profit"`
	GrossLoss     float64 `json:"gross_loss"`
	ProfitFactor  float64 `json:"profit_factor"` // 0 when there are no losses
	MaxDrawdown   float64 `json:"max_drawdown"`  // Largest peak-to-trough drop of cumulative PnL
}

// Summary formats the one-line result report
func (r *Result) Summary() string {
	return fmt.Sprintf("%s: trades=%d, pnl=%.2f, wins=%d, losses=%d",
		r.Symbol, len(r.Trades), r.TotalPnL, r.Wins, r.Losses)
}

// record closes the books on a finished trade
func (r *Result) record(t Trade) {
	pnl := t.PnL()
	r.TotalPnL += pnl
	if pnl >= 0 {
		r.Wins++
	} else {
		r.Losses++
	}
	r.Trades = append(r.Trades, t)
}
