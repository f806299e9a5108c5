package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
)

func find(t *testing.T, reg *Registry, name string) *dto.MetricFamily {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("expected non-nil registry")
	}
}

func TestRegistry_RecordBacktest(t *testing.T) {
	reg := NewRegistry()

	reg.RecordBacktest("success", 0.02)
	reg.RecordBacktest("success", 0.03)
	reg.RecordBacktest("error", 0.01)

	mf := find(t, reg, "lockup_backtests_total")
	if mf == nil {
		t.Fatal("expected lockup_backtests_total metric")
	}

	counts := map[string]float64{}
	for _, m := range mf.GetMetric() {
		counts[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
	}
	if counts["success"] != 2 || counts["error"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}

	if h := find(t, reg, "lockup_backtest_duration_seconds"); h == nil {
		t.Error("expected duration histogram")
	} else if got := h.GetMetric()[0].GetHistogram().GetSampleCount(); got != 3 {
		t.Errorf("sample count = %d, want 3", got)
	}
}

func TestRegistry_RecordTrade(t *testing.T) {
	reg := NewRegistry()

	reg.RecordTrade("DEMO", "take_profit", true)
	reg.RecordTrade("DEMO", "stop_loss", false)
	reg.RecordTrade("DEMO", "take_profit", true)

	mf := find(t, reg, "lockup_trade_outcomes_total")
	if mf == nil {
		t.Fatal("expected lockup_trade_outcomes_total metric")
	}

	outcomes := map[string]float64{}
	for _, m := range mf.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == "outcome" {
				outcomes[l.GetValue()] = m.GetCounter().GetValue()
			}
		}
	}
	if outcomes["win"] != 2 || outcomes["loss"] != 1 {
		t.Errorf("unexpected outcomes: %v", outcomes)
	}
}

func TestRegistry_SetPnL(t *testing.T) {
	reg := NewRegistry()
	reg.SetPnL("DEMO", -1.5, 1700000000)
	reg.RecordBars("DEMO", 250)

	mf := find(t, reg, "lockup_total_pnl")
	if mf == nil {
		t.Fatal("expected lockup_total_pnl metric")
	}
	if got := mf.GetMetric()[0].GetGauge().GetValue(); got != -1.5 {
		t.Errorf("pnl = %v, want -1.5", got)
	}

	bars := find(t, reg, "lockup_bars_ingested")
	if bars == nil || bars.GetMetric()[0].GetGauge().GetValue() != 250 {
		t.Error("expected lockup_bars_ingested = 250")
	}
}

func TestRegistry_WriteTextfile(t *testing.T) {
	reg := NewRegistry()
	reg.RecordBacktest("success", 0.1)
	reg.SetPnL("DEMO", 4, 1700000000)

	path := filepath.Join(t.TempDir(), "lockup.prom")
	if err := reg.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading textfile: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		`lockup_backtests_total{status="success"} 1`,
		`lockup_total_pnl{symbol="DEMO"} 4`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q:\n%s", want, out)
		}
	}
}
