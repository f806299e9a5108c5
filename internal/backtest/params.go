package backtest

import "fmt"

// Params controls the indicator windows and the entry/exit thresholds
type Params struct {
	RSIPeriod    int     `mapstructure:"rsi_period"`
	VolumeWindow int     `mapstructure:"volume_window"`
	EntryRSI     float64 `mapstructure:"entry_rsi"`   // enter short when RSI is above
	ExitRSI      float64 `mapstructure:"exit_rsi"`    // cover when RSI is below
	TakeProfit   float64 `mapstructure:"take_profit"` // cover when close <= entry * TakeProfit
	StopLoss     float64 `mapstructure:"stop_loss"`   // cover when close >= entry * StopLoss
	Quantity     float64 `mapstructure:"quantity"`
}

// DefaultParams returns the RSI(14) / 20-day volume rule
func DefaultParams() Params {
	return Params{
		RSIPeriod:    14,
		VolumeWindow: 20,
		EntryRSI:     65,
		ExitRSI:      55,
		TakeProfit:   0.97,
		StopLoss:     1.03,
		Quantity:     1,
	}
}

// Validate checks the parameters for obviously broken values
func (p Params) Validate() error {
	if p.RSIPeriod <= 0 {
		return fmt.Errorf("rsi_period must be positive, got %d", p.RSIPeriod)
	}
	if p.VolumeWindow <= 0 {
		return fmt.Errorf("volume_window must be positive, got %d", p.VolumeWindow)
	}
	if p.EntryRSI < 0 || p.EntryRSI > 100 {
		return fmt.Errorf("entry_rsi must be between 0 and 100, got %f", p.EntryRSI)
	}
	if p.ExitRSI < 0 || p.ExitRSI > 100 {
		return fmt.Errorf("exit_rsi must be between 0 and 100, got %f", p.ExitRSI)
	}
	if p.TakeProfit <= 0 || p.TakeProfit >= 1 {
		return fmt.Errorf("take_profit must be between 0 and 1, got %f", p.TakeProfit)
	}
	if p.StopLoss <= 1 {
		return fmt.Errorf("stop_loss must be above 1, got %f", p.StopLoss)
	}
	if p.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %f", p.Quantity)
	}
	return nil
}
