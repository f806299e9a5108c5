package indicator

import "math"

// RSI calculates the Relative Strength Index with Wilder smoothing.
// The first value sits at index period and is seeded from the simple average of the
// first period deltas. The result has the same length as closes; fewer than period+1
// closes (or a non-positive period) yields an all-absent series.
func RSI(closes []float64, period int) Series {
	out := NewSeries(len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	p := float64(period)

	var gains, losses float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change >= 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / p
	avgLoss := losses / p
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain := math.Max(change, 0)
		loss := math.Max(-change, 0)
		// explicit conversions keep the multiply and add separately rounded
		avgGain = (float64(avgGain*(p-1)) + gain) / p
		avgLoss = (float64(avgLoss*(p-1)) + loss) / p
		out[i] = rsiValue(avgGain, avgLoss)
	}

	return out
}

// rsiValue maps average gain/loss to [0, 100]. Zero average loss is an infinite RS.
func rsiValue(avgGain, avgLoss float64) float64 {
	rs := math.Inf(1)
	if avgLoss != 0 {
		rs = avgGain / avgLoss
	}
	return 100 - 100/(1+rs)
}
