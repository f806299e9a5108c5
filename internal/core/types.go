package core

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used by bar files and lockup calendars
const DateLayout = "2006-01-02"

// Bar represents one daily OHLCV record
type Bar struct {
	Date   string  `csv:"date" json:"date"`
	Open   float64 `csv:"open" json:"open"`
	High   float64 `csv:"high" json:"high"`
	Low    float64 `csv:"low" json:"low"`
	Close  float64 `csv:"close" json:"close"`
	Volume float64 `csv:"volume" json:"volume"`
}

// Time parses the bar date
func (b Bar) Time() (time.Time, error) {
	return ParseDate(b.Date)
}

// ParseDate parses a YYYY-MM-DD date in UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// Closes extracts closing prices in bar order
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Volumes extracts volumes in bar order
func Volumes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Volume
	}
	return out
}
