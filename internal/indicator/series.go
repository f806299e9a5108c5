package indicator

import "math"

// Series is an index-aligned indicator output. Positions without a value hold NaN,
// so every ordered comparison against them is false.
type Series []float64

// NewSeries returns a series of length n with no defined values
func NewSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

// Defined reports whether index i holds a value
func (s Series) Defined(i int) bool {
	return i >= 0 && i < len(s) && !math.IsNaN(s[i])
}

// At returns the value at i and whether it is defined
func (s Series) At(i int) (float64, bool) {
	if !s.Defined(i) {
		return 0, false
	}
	return s[i], true
}

// Above reports s[i] > level; absent values compare false
func (s Series) Above(i int, level float64) bool {
	v, ok := s.At(i)
	return ok && v > level
}

// Below reports s[i] < level; absent values compare false
func (s Series) Below(i int, level float64) bool {
	v, ok := s.At(i)
	return ok && v < level
}
