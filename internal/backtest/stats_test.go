package backtest

import (
	"math"
	"testing"
)

func TestCalculateStats_Empty(t *testing.T) {
	stats := CalculateStats([]Trade{})
	if stats.TotalTrades != 0 {
		t.Error("expected 0 trades for empty input")
	}
}

func TestCalculateStats_WinRate(t *testing.T) {
	trades := []Trade{
		{EntryPrice: 100, ExitPrice: 90, Quantity: 1, Closed: true},  // +10
		{EntryPrice: 100, ExitPrice: 95, Quantity: 1, Closed: true},  // +5
		{EntryPrice: 100, ExitPrice: 103, Quantity: 1, Closed: true}, // -3
		{EntryPrice: 100, ExitPrice: 100, Quantity: 1, Closed: true}, // 0 counts as a win
	}

	stats := CalculateStats(trades)

	if stats.TotalTrades != 4 {
		t.Errorf("TotalTrades = %d, want 4", stats.TotalTrades)
	}
	if stats.WinningTrades != 3 {
		t.Errorf("WinningTrades = %d, want 3", stats.WinningTrades)
	}
	if stats.LosingTrades != 1 {
		t.Errorf("LosingTrades = %d, want 1", stats.LosingTrades)
	}
	if stats.WinRate != 75 {
		t.Errorf("WinRate = %f, want 75", stats.WinRate)
	}
	if stats.AveragePnL != 3 {
		t.Errorf("AveragePnL = %f, want 3", stats.AveragePnL)
	}
	if stats.GrossProfit != 15 || stats.GrossLoss != 3 {
		t.Errorf("GrossProfit/GrossLoss = %f/%f, want 15/3", stats.GrossProfit, stats.GrossLoss)
	}
	if stats.ProfitFactor != 5 {
		t.Errorf("ProfitFactor = %f, want 5", stats.ProfitFactor)
	}
}

func TestCalculateStats_NoLossesHasZeroProfitFactor(t *testing.T) {
	trades := []Trade{{EntryPrice: 10, ExitPrice: 9, Quantity: 1, Closed: true}}
	if pf := CalculateStats(trades).ProfitFactor; pf != 0 {
		t.Errorf("ProfitFactor = %f, want 0", pf)
	}
}

func TestCalculateMaxDrawdown(t *testing.T) {
	// cumulative: 10, 15, -5, 5 -> peak 15, trough -5
	dd := calculateMaxDrawdown([]float64{10, 5, -20, 10})
	if math.Abs(dd-20) > 1e-9 {
		t.Errorf("MaxDrawdown = %f, want 20", dd)
	}
}

func TestCalculateMaxDrawdown_LossFromStart(t *testing.T) {
	// peak stays at the zero starting equity
	dd := calculateMaxDrawdown([]float64{-4, -1, 2})
	if math.Abs(dd-5) > 1e-9 {
		t.Errorf("MaxDrawdown = %f, want 5", dd)
	}
}

func TestCalculateStats_IgnoresOpenTrades(t *testing.T) {
	trades := []Trade{
		{EntryPrice: 100, ExitPrice: 90, Quantity: 1, Closed: true},
		{EntryPrice: 100, Quantity: 1}, // open - should be ignored
	}

	stats := CalculateStats(trades)

	if stats.WinningTrades != 1 {
		t.Errorf("should only count closed trades, got %d", stats.WinningTrades)
	}
	if stats.TotalTrades != 2 {
		t.Errorf("TotalTrades = %d, want 2", stats.TotalTrades)
	}
}
