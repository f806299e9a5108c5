package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all Prometheus metrics for backtest runs.
type Registry struct {
	*prometheus.Registry

	backtestsTotal   *prometheus.CounterVec
	backtestDuration prometheus.Histogram
	barsIngested     *prometheus.GaugeVec
	tradesTotal      *prometheus.CounterVec
	tradeOutcomes    *prometheus.CounterVec
	totalPnL         *prometheus.GaugeVec
	lastRunTimestamp *prometheus.GaugeVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
// Runtime collectors are left out so the output can sit in a node_exporter textfile directory.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		Registry: reg,

		backtestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lockup_backtests_total",
				Help: "Total number of backtest runs",
			},
			[]string{"status"},
		),
		backtestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lockup_backtest_duration_seconds",
				Help:    "Backtest duration in seconds, ingestion included",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
		),
		barsIngested: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lockup_bars_ingested",
				Help: "Number of bars in the last run",
			},
			[]string{"symbol"},
		),
		tradesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lockup_trades_total",
				Help: "Total number of simulated trades by exit reason",
			},
			[]string{"symbol", "reason"},
		),
		tradeOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lockup_trade_outcomes_total",
				Help: "Total number of winning and losing trades",
			},
			[]string{"symbol", "outcome"},
		),
		totalPnL: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lockup_total_pnl",
				Help: "Aggregate short-side PnL of the last run",
			},
			[]string{"symbol"},
		),
		lastRunTimestamp: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lockup_last_run_timestamp_seconds",
				Help: "Unix time of the last completed run",
			},
			[]string{"symbol"},
		),
	}

	reg.MustRegister(r.backtestsTotal)
	reg.MustRegister(r.backtestDuration)
	reg.MustRegister(r.barsIngested)
	reg.MustRegister(r.tradesTotal)
	reg.MustRegister(r.tradeOutcomes)
	reg.MustRegister(r.totalPnL)
	reg.MustRegister(r.lastRunTimestamp)

	return r
}

// RecordBacktest records a backtest completion.
func (r *Registry) RecordBacktest(status string, duration float64) {
	r.backtestsTotal.WithLabelValues(status).Inc()
	r.backtestDuration.Observe(duration)
}

// RecordBars sets the bar count for a symbol.
func (r *Registry) RecordBars(symbol string, n int) {
	r.barsIngested.WithLabelValues(symbol).Set(float64(n))
}

// RecordTrade records one closed trade.
func (r *Registry) RecordTrade(symbol, reason string, win bool) {
	r.tradesTotal.WithLabelValues(symbol, reason).Inc()
	r.tradeOutcomes.WithLabelValues(symbol, outcome(win)).Inc()
}

// SetPnL sets the aggregate PnL of the last run for a symbol.
func (r *Registry) SetPnL(symbol string, pnl float64, unixTime float64) {
	r.totalPnL.WithLabelValues(symbol).Set(pnl)
	r.lastRunTimestamp.WithLabelValues(symbol).Set(unixTime)
}

// WriteTextfile writes all metrics in the text exposition format.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Registry)
}

func outcome(win bool) string {
	if win {
		return "win"
	}
	return "loss"
}
