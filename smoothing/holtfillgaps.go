package smoothing

import (
	"github.com/sgostarter/i/commerr"
)

// HoltWithTimeFillGaps is the gap-filling flavor of double smoothing. Missing
// ticks are filled by folding the one-step forecast back through the full
// recurrence, which continues the current line instead of decaying it.
type HoltWithTimeFillGaps struct {
	Value     float64
	Trend     float64
	Timestamp uint64
	Count     uint64
}

func (s HoltWithTimeFillGaps) Empty() bool {
	return s.Count == 0
}

// Predict returns the one-step-ahead forecast. Before a trend exists it is
// the level itself.
func (s HoltWithTimeFillGaps) Predict() float64 {
	if s.Count < 2 {
		return s.Value
	}

	return s.Value + s.Trend
}

// AddPredict feeds the forecast back in as the next tick's value. Synthetic
// ticks do not count as raw inputs, so a gap never establishes the trend.
func (s *HoltWithTimeFillGaps) AddPredict(alpha, beta float64) {
	s.fold(s.Predict(), alpha, beta)
	s.Timestamp++
}

// PredictUntil fills every tick up to and including target with predictions.
func (s *HoltWithTimeFillGaps) PredictUntil(target uint64, alpha, beta float64) {
	for s.Timestamp < target {
		s.AddPredict(alpha, beta)
	}
}

func (s *HoltWithTimeFillGaps) fold(x float64, alpha, beta float64) {
	if s.Count >= 2 {
		level := alpha*x + (1-alpha)*(s.Value+s.Trend)
		s.Trend = beta*(level-s.Value) + (1-beta)*s.Trend
		s.Value = level

		return
	}

	s.Value = alpha*x + (1-alpha)*s.Value
}

// Add folds one raw value at a strictly later timestamp, filling the gap
// first. The second raw value fixes the trend to the raw difference, exactly
// as in the count-indexed flavor.
func (s *HoltWithTimeFillGaps) Add(x float64, timestamp uint64, alpha, beta float64) error {
	if s.Empty() {
		s.Value = x
		s.Timestamp = timestamp
		s.Count = 1

		return nil
	}

	if timestamp <= s.Timestamp {
		return ErrIncorrectData
	}

	s.PredictUntil(timestamp-1, alpha, beta)

	if s.Count == 1 {
		trend := x - s.Value
		s.fold(x, alpha, beta)
		s.Trend = trend
	} else {
		s.fold(x, alpha, beta)
	}

	s.Timestamp = timestamp
	s.Count++

	return nil
}

// Merge appends a single-value block with a later timestamp.
func (s *HoltWithTimeFillGaps) Merge(other HoltWithTimeFillGaps, alpha, beta float64) error {
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

	return s.Add(other.Value, other.Timestamp, alpha, beta)
}

// Get returns the level and trend at the state's own reference point.
func (s HoltWithTimeFillGaps) Get() (level, trend float64) {
	return s.Value, s.Trend
}

// GetAt predicts forward to targetTime, takes one extra predictive step and
// reads the result.
func (s HoltWithTimeFillGaps) GetAt(targetTime uint64, alpha, beta float64) (level, trend float64, err error) {
	if targetTime < s.Timestamp {
		err = commerr.ErrOutOfRange

		return
	}

	cp := s
	cp.PredictUntil(targetTime, alpha, beta)
	cp.AddPredict(alpha, beta)

	level, trend = cp.Get()

	return
}
