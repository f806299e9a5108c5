package indicator

import (
	"math"
	"testing"
)

func TestRSI_NotEnoughData(t *testing.T) {
	closes := []float64{10, 11, 12, 11, 10, 9, 8, 14}
	rsi := RSI(closes, 14)

	if len(rsi) != len(closes) {
		t.Fatalf("expected %d values, got %d", len(closes), len(rsi))
	}
	for i := range rsi {
		if rsi.Defined(i) {
			t.Errorf("rsi[%d] = %f, want absent", i, rsi[i])
		}
	}
}

func TestRSI_ZeroPeriod(t *testing.T) {
	rsi := RSI([]float64{1, 2, 3}, 0)
	if len(rsi) != 3 {
		t.Fatalf("expected 3 values, got %d", len(rsi))
	}
	for i := range rsi {
		if rsi.Defined(i) {
			t.Errorf("rsi[%d] should be absent for zero period", i)
		}
	}
}

func TestRSI_Empty(t *testing.T) {
	if got := RSI(nil, 14); len(got) != 0 {
		t.Errorf("expected empty series, got %d values", len(got))
	}
}

func TestRSI_SeedAndSmoothing(t *testing.T) {
	// deltas +1, +1, -1
	// seed: avgGain = 1, avgLoss = 0 -> RSI 100
	// next: avgGain = (1*1+0)/2 = 0.5, avgLoss = (0*1+1)/2 = 0.5 -> RSI 50
	rsi := RSI([]float64{1, 2, 3, 2}, 2)

	if rsi.Defined(0) || rsi.Defined(1) {
		t.Error("warm-up indices should be absent")
	}
	if rsi[2] != 100 {
		t.Errorf("rsi[2] = %f, want 100", rsi[2])
	}
	if rsi[3] != 50 {
		t.Errorf("rsi[3] = %f, want 50", rsi[3])
	}
}

func TestRSI_WilderRecurrence(t *testing.T) {
	// deltas +1, -1, +2, -1
	// seed: avgGain = 3/3 = 1, avgLoss = 1/3, RS = 3 -> 75
	// next: avgGain = 2/3, avgLoss = 5/9, RS = 1.2 -> 100 - 100/2.2
	rsi := RSI([]float64{10, 11, 10, 12, 11}, 3)

	if !almostEqual(rsi[3], 75, 1e-9) {
		t.Errorf("rsi[3] = %f, want 75", rsi[3])
	}
	want := 100 - 100/2.2
	if !almostEqual(rsi[4], want, 1e-9) {
		t.Errorf("rsi[4] = %f, want %f", rsi[4], want)
	}
}

func TestRSI_FlatSeriesSaturates(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 42
	}
	rsi := RSI(closes, 14)

	for i := 14; i < len(rsi); i++ {
		if rsi[i] != 100 {
			t.Errorf("rsi[%d] = %f, want 100 when average loss is zero", i, rsi[i])
		}
	}
}

func TestRSI_FallingSeriesFloorsAtZero(t *testing.T) {
	closes := []float64{20, 19, 18, 17, 16, 15}
	rsi := RSI(closes, 3)

	for i := 3; i < len(rsi); i++ {
		if rsi[i] != 0 {
			t.Errorf("rsi[%d] = %f, want 0", i, rsi[i])
		}
	}
}

func TestRSI_Bounded(t *testing.T) {
	closes := make([]float64, 200)
	price := 100.0
	for i := range closes {
		price += math.Sin(float64(i)*0.7)*3 + math.Cos(float64(i)*1.3)
		closes[i] = price
	}

	for _, period := range []int{1, 2, 5, 14, 50} {
		rsi := RSI(closes, period)
		if len(rsi) != len(closes) {
			t.Fatalf("period %d: length %d, want %d", period, len(rsi), len(closes))
		}
		for i := range rsi {
			if i < period {
				if rsi.Defined(i) {
					t.Errorf("period %d: rsi[%d] should be absent", period, i)
				}
				continue
			}
			v, ok := rsi.At(i)
			if !ok {
				t.Errorf("period %d: rsi[%d] should be defined", period, i)
				continue
			}
			if v < 0 || v > 100 {
				t.Errorf("period %d: rsi[%d] = %f out of [0, 100]", period, i, v)
			}
		}
	}
}

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}
