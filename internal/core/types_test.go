package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"plain", "2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"padded", "  2024-03-15 ", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"timestamp", "2024-03-15T10:00:00Z", time.Time{}, true},
		{"invalid day", "2024-02-30", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBar_Time(t *testing.T) {
	b := Bar{Date: "2023-12-29", Close: 10}
	got, err := b.Time()
	if err != nil {
		t.Fatalf("Time() error = %v", err)
	}
	if got.Year() != 2023 || got.Month() != time.December || got.Day() != 29 {
		t.Errorf("Time() = %v", got)
	}
}

func TestClosesAndVolumes(t *testing.T) {
	bars := []Bar{
		{Date: "2024-01-02", Close: 10, Volume: 100},
		{Date: "2024-01-03", Close: 11, Volume: 150},
		{Date: "2024-01-04", Close: 9.5, Volume: 90},
	}

	closes := Closes(bars)
	volumes := Volumes(bars)

	wantCloses := []float64{10, 11, 9.5}
	wantVolumes := []float64{100, 150, 90}
	for i := range bars {
		if closes[i] != wantCloses[i] {
			t.Errorf("closes[%d] = %v, want %v", i, closes[i], wantCloses[i])
		}
		if volumes[i] != wantVolumes[i] {
			t.Errorf("volumes[%d] = %v, want %v", i, volumes[i], wantVolumes[i])
		}
	}

	if len(Closes(nil)) != 0 {
		t.Error("expected empty closes for nil bars")
	}
}
