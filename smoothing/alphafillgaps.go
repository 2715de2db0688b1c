package smoothing

import (
	"github.com/sgostarter/i/commerr"
)

// AlphaWithTimeFillGaps is the gap-filling timestamp-indexed flavor of simple
// smoothing. A missing tick is filled by feeding the current prediction back
// in, instead of letting the sum decay toward zero, so input must arrive with
// strictly increasing timestamps and a merge may only append a single value.
type AlphaWithTimeFillGaps struct {
	Value     float64
	Timestamp uint64
	Count     uint64
}

func (s AlphaWithTimeFillGaps) Empty() bool {
	return s.Count == 0
}

// Predict returns the one-step-ahead forecast.
func (s AlphaWithTimeFillGaps) Predict() float64 {
	return s.Value
}

// AddPredict feeds the current prediction back in as the next tick's value.
func (s *AlphaWithTimeFillGaps) AddPredict(alpha float64) {
	p := s.Predict()
	s.Value = alpha*p + (1-alpha)*s.Value
	s.Timestamp++
}

// PredictUntil fills every tick up to and including target with predictions.
func (s *AlphaWithTimeFillGaps) PredictUntil(target uint64, alpha float64) {
	for s.Timestamp < target {
		s.AddPredict(alpha)
	}
}

// Add folds one raw value. The timestamp must be strictly greater than the
// current one on a non-empty state; the gap, if any, is filled first.
func (s *AlphaWithTimeFillGaps) Add(x float64, timestamp uint64, alpha float64) error {
	if s.Empty() {
		s.Value = x
		s.Timestamp = timestamp
		s.Count = 1

		return nil
	}

	if timestamp <= s.Timestamp {
		return ErrIncorrectData
	}

	s.PredictUntil(timestamp-1, alpha)

	s.Value = alpha*x + (1-alpha)*s.Value
	s.Timestamp = timestamp
	s.Count++

	return nil
}

// Merge appends a single-value block with a later timestamp. Anything else
// means the engine fed this flavor unordered or pre-aggregated data.
func (s *AlphaWithTimeFillGaps) Merge(other AlphaWithTimeFillGaps, alpha float64) error {
	if other.Empty() {
		return nil
	}

	if s.Empty() {
		*s = other

		return nil
	}

	if other.Count != 1 || other.Timestamp <= s.Timestamp {
		return ErrIncorrectData
	}

	return s.Add(other.Value, other.Timestamp, alpha)
}

// Get returns the smoothed value at the state's own reference point.
func (s AlphaWithTimeFillGaps) Get() float64 {
	return s.Value
}

// GetAt predicts forward to targetTime, takes one extra predictive step
// beyond it and reads the result.
func (s AlphaWithTimeFillGaps) GetAt(targetTime uint64, alpha float64) (float64, error) {
	if targetTime < s.Timestamp {
		return 0, commerr.ErrOutOfRange
	}

	cp := s
	cp.PredictUntil(targetTime, alpha)
	cp.AddPredict(alpha)

	return cp.Get(), nil
}
