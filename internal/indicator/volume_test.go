package indicator

import "testing"

func TestVolumeRelativeHigh_Empty(t *testing.T) {
	got := VolumeRelativeHigh(nil, 20)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestVolumeRelativeHigh_Window(t *testing.T) {
	volumes := []float64{100, 200, 150, 250, 250, 90, 300}
	got := VolumeRelativeHigh(volumes, 2)

	// i=2: 150 > max(100,200)? no
	// i=3: 250 > max(200,150)? yes
	// i=4: 250 > max(150,250)? tie -> no
	// i=5: 90 > max(250,250)? no
	// i=6: 300 > max(250,90)? yes
	want := []bool{false, false, false, true, false, false, true}

	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("volHigh[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestVolumeRelativeHigh_WarmupAlwaysFalse(t *testing.T) {
	volumes := make([]float64, 25)
	for i := range volumes {
		volumes[i] = float64(i + 1) // strictly increasing
	}
	got := VolumeRelativeHigh(volumes, 20)

	for i := 0; i < 20; i++ {
		if got[i] {
			t.Errorf("volHigh[%d] should be false inside the window", i)
		}
	}
	for i := 20; i < 25; i++ {
		if !got[i] {
			t.Errorf("volHigh[%d] should be true for a rising series", i)
		}
	}
}

func TestVolumeRelativeHigh_WindowLargerThanInput(t *testing.T) {
	got := VolumeRelativeHigh([]float64{1, 5, 10}, 20)
	for i, v := range got {
		if v {
			t.Errorf("volHigh[%d] should be false", i)
		}
	}
}

func TestVolumeRelativeHigh_ZeroWindow(t *testing.T) {
	got := VolumeRelativeHigh([]float64{1, 2, 3}, 0)
	for i, v := range got {
		if v {
			t.Errorf("volHigh[%d] should be false for zero window", i)
		}
	}
}

func TestVolumeRelativeHigh_MatchesBruteForce(t *testing.T) {
	volumes := []float64{5, 3, 8, 8, 1, 9, 2, 9, 10, 4, 11, 0, 12}
	window := 3
	got := VolumeRelativeHigh(volumes, window)

	for i := range volumes {
		want := false
		if i >= window {
			want = true
			for j := i - window; j < i; j++ {
				if volumes[j] >= volumes[i] {
					want = false
				}
			}
		}
		if got[i] != want {
			t.Errorf("volHigh[%d] = %v, want %v", i, got[i], want)
		}
	}
}
