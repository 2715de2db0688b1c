package smoothing

import (
	"github.com/sgostarter/i/commerr"
)

// HoltWintersWithTimeFillGaps is the gap-filling flavor of triple smoothing.
// A missing tick folds the seasonal one-step forecast back through the full
// recurrence, so the level keeps following the trend and the season slot of
// the skipped tick re-confirms itself instead of decaying.
type HoltWintersWithTimeFillGaps struct {
	Method    Method
	Value     float64
	Trend     float64
	Seasons   []float64
	Timestamp uint64
	Count     uint64
}

func NewHoltWintersWithTimeFillGaps(method Method) HoltWintersWithTimeFillGaps {
	return HoltWintersWithTimeFillGaps{Method: method}
}

func (s HoltWintersWithTimeFillGaps) Empty() bool {
	return s.Count == 0
}

// Predict returns the forecast for the next tick, seasonally adjusted.
func (s HoltWintersWithTimeFillGaps) Predict(seasonsCount uint32) float64 {
	if s.Empty() {
		return 0
	}

	base := s.Value
	if s.Count >= 2 {
		base += s.Trend
	}

	phase := int((s.Timestamp + 1) % uint64(seasonsCount))

	return s.Method.combine(base, s.Seasons[phase])
}

// AddPredict feeds the forecast back in as the next tick's value. Synthetic
// ticks do not count as raw inputs, so a gap never establishes the trend.
func (s *HoltWintersWithTimeFillGaps) AddPredict(alpha, beta, gamma float64, seasonsCount uint32) {
	x := s.Predict(seasonsCount)
	s.Timestamp++
	s.fold(x, alpha, beta, gamma, seasonsCount)
}

// PredictUntil fills every tick up to and including target with predictions.
func (s *HoltWintersWithTimeFillGaps) PredictUntil(target uint64, alpha, beta, gamma float64, seasonsCount uint32) {
	for s.Timestamp < target {
		s.AddPredict(alpha, beta, gamma, seasonsCount)
	}
}

// fold applies the recurrence for a value observed at the current timestamp.
func (s *HoltWintersWithTimeFillGaps) fold(x float64, alpha, beta, gamma float64, seasonsCount uint32) {
	phase := int(s.Timestamp % uint64(seasonsCount))
	season := s.Seasons[phase]

	var level float64

	if s.Count >= 2 {
		level = alpha*s.Method.deseason(x, season) + (1-alpha)*(s.Value+s.Trend)
		s.Trend = beta*(level-s.Value) + (1-beta)*s.Trend
	} else {
		level = alpha*s.Method.deseason(x, season) + (1-alpha)*s.Value
	}

	s.Seasons[phase] = gamma*s.Method.observe(x, level) + (1-gamma)*season
	s.Value = level
}

// Add folds one raw value at a strictly later timestamp, filling the gap
// first. The second raw value fixes the trend to the raw difference.
func (s *HoltWintersWithTimeFillGaps) Add(x float64, timestamp uint64, alpha, beta, gamma float64, seasonsCount uint32) error {
	if s.Empty() {
		s.Value = x
		s.Timestamp = timestamp
		s.Seasons = newSeasons(s.Method, seasonsCount)
		s.Count = 1

		return nil
	}

	if timestamp <= s.Timestamp {
		return ErrIncorrectData
	}

	s.PredictUntil(timestamp-1, alpha, beta, gamma, seasonsCount)
	s.Timestamp = timestamp

	if s.Count == 1 {
		trend := x - s.Value
		s.fold(x, alpha, beta, gamma, seasonsCount)
		s.Trend = trend
	} else {
		s.fold(x, alpha, beta, gamma, seasonsCount)
	}

	s.Count++

	return nil
}

// Merge appends a single-value block with a later timestamp.
func (s *HoltWintersWithTimeFillGaps) Merge(other HoltWintersWithTimeFillGaps, alpha, beta, gamma float64, seasonsCount uint32) error {
	if other.Empty() {
		return nil
	}

	if s.Empty() {
		*s = other

		if other.Seasons == nil {
			s.Seasons = newSeasons(s.Method, seasonsCount)
		} else {
			s.Seasons = append([]float64(nil), other.Seasons...)
		}

		return nil
	}

	if other.Count != 1 || other.Timestamp <= s.Timestamp {
		return ErrIncorrectData
	}

	return s.Add(other.Value, other.Timestamp, alpha, beta, gamma, seasonsCount)
}

// Get returns the level, the trend and a copy of the seasonal ring.
func (s HoltWintersWithTimeFillGaps) Get() (level, trend float64, seasons []float64) {
	return s.Value, s.Trend, append([]float64(nil), s.Seasons...)
}

// GetAt predicts forward to targetTime, takes one extra predictive step and
// reads the result.
func (s HoltWintersWithTimeFillGaps) GetAt(targetTime uint64, alpha, beta, gamma float64, seasonsCount uint32) (level, trend float64, seasons []float64, err error) {
	if targetTime < s.Timestamp {
		err = commerr.ErrOutOfRange

		return
	}

	cp := s
	cp.Seasons = append([]float64(nil), s.Seasons...)
	cp.PredictUntil(targetTime, alpha, beta, gamma, seasonsCount)
	cp.AddPredict(alpha, beta, gamma, seasonsCount)

	level, trend, seasons = cp.Get()

	return
}
