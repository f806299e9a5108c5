package backtest

// CalculateStats computes performance statistics from trades.
// Open trades are counted in TotalTrades but carry no PnL.
func CalculateStats(trades []Trade) Stats {
	if len(trades) == 0 {
		return Stats{}
	}

	var winning, losing int
	var total, grossProfit, grossLoss float64
	var pnls []float64

	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		pnl := t.PnL()
		pnls = append(pnls, pnl)
		total += pnl
		if t.IsWin() {
			winning++
			grossProfit += pnl
		} else {
			losing++
			grossLoss -= pnl
		}
	}

	closedTrades := winning + losing
	var winRate, avg float64
	if closedTrades > 0 {
		winRate = float64(winning) / float64(closedTrades) * 100
		avg = total / float64(closedTrades)
	}

	var profitFactor float64
	if grossLoss > 0 {
		profitFactor = grossProfit / grossLoss
	}

	return Stats{
		TotalTrades:   len(trades),
		WinningTrades: winning,
		LosingTrades:  losing,
		WinRate:       winRate,
		AveragePnL:    avg,
		GrossProfit:   grossProfit,
		GrossLoss:     grossLoss,
		ProfitFactor:  profitFactor,
		MaxDrawdown:   calculateMaxDrawdown(pnls),
	}
}

// calculateMaxDrawdown finds the largest peak-to-trough decline of cumulative PnL
func calculateMaxDrawdown(pnls []float64) float64 {
	var maxDD, peak, cumulative float64

	for _, p := range pnls {
		cumulative += p
		if cumulative > peak {
			peak = cumulative
		}
		if dd := peak - cumulative; dd > maxDD {
			maxDD = dd
		}
	}

	return maxDD
}
