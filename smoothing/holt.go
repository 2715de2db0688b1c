package smoothing

import (
	"github.com/sgostarter/i/commerr"
)

// Holt is the count-indexed double exponential smoothing state.
//
// The recurrence for folding x into level L and trend T is
//
//	L' = alpha*x + (1-alpha)*(L+T)
//	T' = beta*(L'-L) + (1-beta)*T
//
// The first value sets the level only; the second fixes the trend to the raw
// difference of the two, since no trend is defined before a pair exists.
type Holt struct {
	Value float64
	Trend float64
	Count uint64
}

func (s Holt) Empty() bool {
	return s.Count == 0
}

func (s *Holt) Add(x float64, alpha, beta float64) {
	_ = s.Merge(Holt{Value: x, Count: 1}, alpha, beta)
}

// Merge appends a single-value state, with the same shape restriction as the
// count-indexed simple flavor.
func (s *Holt) Merge(other Holt, alpha, beta float64) error {
	if other.Empty() {
		return nil
	}

	if s.Empty() {
		*s = other

		return nil
	}

	if other.Count != 1 {
		return ErrMergeNotSupported
	}

	x := other.Value
	level := alpha*x + (1-alpha)*(s.Value+s.Trend)

	if s.Count == 1 {
		s.Trend = x - s.Value
	} else {
		s.Trend = beta*(level-s.Value) + (1-beta)*s.Trend
	}

	s.Value = level
	s.Count += other.Count

	return nil
}

// Get returns the level and trend at the state's own reference point.
func (s Holt) Get() (level, trend float64) {
	return s.Value, s.Trend
}

// Forecast is the one-step-ahead prediction.
func (s Holt) Forecast() float64 {
	return s.Value + s.Trend
}

// ForecastAt extrapolates linearly to the given count.
func (s Holt) ForecastAt(targetCount uint64) (float64, error) {
	if targetCount < s.Count {
		return 0, commerr.ErrOutOfRange
	}

	return s.Value + s.Trend*float64(targetCount-s.Count), nil
}
