package lockup

import "time"

// Window reports whether a symbol is inside its lockup-expiration window on a date
type Window interface {
	WithinLockupWindow(symbol string, date time.Time) bool
}

// Func adapts a plain function to Window
type Func func(symbol string, date time.Time) bool

func (f Func) WithinLockupWindow(symbol string, date time.Time) bool {
	return f(symbol, date)
}

// Always is a Window that ignores its inputs and always reports true.
// It stands in for a real IPO data source.
type Always struct{}

func (Always) WithinLockupWindow(string, time.Time) bool {
	return true
}

// Never always reports false
type Never struct{}

func (Never) WithinLockupWindow(string, time.Time) bool {
	return false
}
