package backtest

import (
	"time"

	"github.com/google/uuid"
	"github.com/newthinker/lockup/internal/core"
	"github.com/newthinker/lockup/internal/indicator"
	"github.com/newthinker/lockup/internal/lockup"
	"go.uber.org/zap"
)

// epoch replaces bar dates that fail to parse
var epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// Option configures a Backtester
type Option func(*Backtester)

// WithLockupWindow sets the lockup-window predicate consulted before every entry
func WithLockupWindow(w lockup.Window) Option {
	return func(b *Backtester) {
		if w != nil {
			b.window = w
		}
	}
}

// WithParams overrides the default strategy parameters
func WithParams(p Params) Option {
	return func(b *Backtester) {
		b.params = p
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(b *Backtester) {
		if l != nil {
			b.logger = l
		}
	}
}

// Backtester replays the RSI / volume-spike short rule over a bar sequence.
// It holds configuration only; every Run starts from a flat position.
type Backtester struct {
	params Params
	window lockup.Window
	logger *zap.Logger
}

// New creates a Backtester with default params and an always-open lockup window
func New(opts ...Option) *Backtester {
	b := &Backtester{
		params: DefaultParams(),
		window: lockup.Always{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Params returns the parameters the backtester runs with
func (b *Backtester) Params() Params {
	return b.params
}

// position is the single open-trade slot
type position struct {
	side  Side
	trade Trade
}

func (p *position) open(i int, date string, price, qty float64) {
	p.side = Short
	p.trade = Trade{
		EntryIndex: i,
		EntryDate:  date,
		EntryPrice: price,
		Quantity:   qty,
	}
}

func (p *position) close(i int, date string, price float64, reason ExitReason) Trade {
	t := p.trade
	t.ExitIndex = i
	t.ExitDate = date
	t.ExitPrice = price
	t.ExitReason = reason
	t.Closed = true

	p.side = Flat
	p.trade = Trade{}
	return t
}

// Run executes the strategy over bars in a single forward pass.
// An empty input yields a zeroed result.
func (b *Backtester) Run(bars []core.Bar, symbol string) *Result {
	result := &Result{
		RunID:  uuid.NewString(),
		Symbol: symbol,
		Bars:   len(bars),
		Trades: []Trade{},
	}
	if len(bars) == 0 {
		return result
	}

	closes := core.Closes(bars)
	rsi := indicator.RSI(closes, b.params.RSIPeriod)
	volHigh := indicator.VolumeRelativeHigh(core.Volumes(bars), b.params.VolumeWindow)

	var pos position

	for i, bar := range bars {
		date, err := bar.Time()
		if err != nil {
			b.logger.Debug("unparseable bar date, using epoch",
				zap.Int("index", i),
				zap.String("date", bar.Date),
				zap.Error(err),
			)
			date = epoch
		}

		inWindow := b.window.WithinLockupWindow(symbol, date)
		price := closes[i]

		if pos.side == Flat && rsi.Above(i, b.params.EntryRSI) && volHigh[i] && inWindow {
			pos.open(i, bar.Date, price, b.params.Quantity)
			b.logger.Debug("opened short",
				zap.String("symbol", symbol),
				zap.Int("index", i),
				zap.Float64("price", price),
				zap.Float64("rsi", rsi[i]),
			)
		}

		// a position opened above is checked on its own entry bar too
		if pos.side == Short {
			if reason, ok := b.exitReason(rsi, i, price, pos.trade.EntryPrice); ok {
				t := pos.close(i, bar.Date, price, reason)
				result.record(t)
				b.logger.Debug("covered short",
					zap.String("symbol", symbol),
					zap.Int("index", i),
					zap.Float64("price", price),
					zap.String("reason", string(reason)),
					zap.Float64("pnl", t.PnL()),
				)
			}
		}
	}

	if pos.side == Short {
		last := len(bars) - 1
		t := pos.close(last, bars[last].Date, closes[last], ExitEndOfData)
		result.record(t)
	}

	result.Stats = CalculateStats(result.Trades)
	return result
}

// exitReason evaluates the three exit conditions in order
func (b *Backtester) exitReason(rsi indicator.Series, i int, price, entry float64) (ExitReason, bool) {
	switch {
	case rsi.Below(i, b.params.ExitRSI):
		return ExitRSI, true
	case price <= entry*b.params.TakeProfit:
		return ExitTakeProfit, true
	case price >= entry*b.params.StopLoss:
		return ExitStopLoss, true
	}
	return "", false
}
