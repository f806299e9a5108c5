package lockup

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/newthinker/lockup/internal/core"
)

const (
	DefaultMinDays = 1
	DefaultMaxDays = 3
)

// Entry is one IPO lockup record
type Entry struct {
	Symbol               string `csv:"symbol"`
	LockupExpirationDate string `csv:"lockup_expiration_date"`
}

// Calendar answers lockup-window queries from a table of expiration dates
type Calendar struct {
	mu          sync.RWMutex
	expirations map[string][]time.Time
	minDays     int
	maxDays     int
}

// NewCalendar creates an empty calendar with an inclusive [minDays, maxDays] window
func NewCalendar(minDays, maxDays int) *Calendar {
	return &Calendar{
		expirations: make(map[string][]time.Time),
		minDays:     minDays,
		maxDays:     maxDays,
	}
}

// Add registers a lockup expiration for a symbol
func (c *Calendar) Add(symbol string, expiration time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := normalize(symbol)
	c.expirations[key] = append(c.expirations[key], truncateDay(expiration))
}

// Len returns the number of symbols with at least one expiration
func (c *Calendar) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.expirations)
}

// WithinLockupWindow reports whether any expiration for symbol is between minDays and
// maxDays calendar days after date.
func (c *Calendar) WithinLockupWindow(symbol string, date time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	today := truncateDay(date)
	for _, exp := range c.expirations[normalize(symbol)] {
		days := daysBetween(today, exp)
		if days >= c.minDays && days <= c.maxDays {
			return true
		}
	}
	return false
}

// LoadCalendar reads a CSV file with symbol,lockup_expiration_date columns
func LoadCalendar(path string, minDays, maxDays int) (*Calendar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(core.ErrLockupCalendar, err)
	}
	defer f.Close()

	return ReadCalendar(f, minDays, maxDays)
}

// ReadCalendar parses calendar CSV from r
func ReadCalendar(r io.Reader, minDays, maxDays int) (*Calendar, error) {
	var entries []*Entry
	if err := gocsv.Unmarshal(r, &entries); err != nil {
		return nil, core.WrapError(core.ErrLockupCalendar, fmt.Errorf("parsing calendar: %w", err))
	}

	cal := NewCalendar(minDays, maxDays)
	for i, e := range entries {
		exp, err := core.ParseDate(e.LockupExpirationDate)
		if err != nil {
			return nil, core.WrapError(core.ErrLockupCalendar,
				fmt.Errorf("row %d: invalid lockup_expiration_date %q: %w", i+1, e.LockupExpirationDate, err))
		}
		if strings.TrimSpace(e.Symbol) == "" {
			return nil, core.WrapError(core.ErrLockupCalendar, fmt.Errorf("row %d: empty symbol", i+1))
		}
		cal.Add(e.Symbol, exp)
	}
	return cal, nil
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
