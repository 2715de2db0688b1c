package smoothing

import (
	"github.com/sgostarter/i/commerr"
)

// HoltWithTime is the timestamp-indexed double smoothing state supporting
// out-of-order block merges.
//
// The state carries two independently decayed sums: the level, decaying by
// (1-alpha) per tick, and the per-tick trend, decaying by (1-beta) per tick.
// The level track behaves exactly like AlphaWithTime over the raw inputs. The
// trend track is an AlphaWithTime with parameter beta over slope samples: a
// sample appears whenever a single-value block joins a block that already has
// inputs, as the per-tick slope between the new value and the other side's
// earliest input. FirstValue and FirstTrend keep the merge math honest on each
// track.
type HoltWithTime struct {
	Value      float64
	Trend      float64
	Timestamp  uint64
	FirstValue Marker
	FirstTrend Marker
}

func (s HoltWithTime) Empty() bool {
	return !s.FirstValue.Was
}

func (s *HoltWithTime) Add(x float64, timestamp uint64, alpha, beta float64) {
	*s = MergeHoltWithTime(*s, HoltWithTime{
		Value:      x,
		Timestamp:  timestamp,
		FirstValue: NewMarker(x, timestamp),
	}, alpha, beta)
}

func (s *HoltWithTime) Merge(other HoltWithTime, alpha, beta float64) {
	*s = MergeHoltWithTime(*s, other, alpha, beta)
}

// MergeHoltWithTime combines two blocks. The level track merges exactly like
// the simple time-indexed flavor. The trend track splits into four cases on
// which sides already observed a trend:
//
//  1. both: merge the trend sums like the level sums, demoting the later
//     first-trend marker;
//  2. only one: the trendless side is a single-tick block and contributes one
//     new slope sample to the other side's trend track;
//  3. (mirror of 2 with the operands swapped);
//  4. neither: both are single-tick blocks, and their pair creates the first
//     slope sample, kept raw like the first value of a simple sum.
func MergeHoltWithTime(a, b HoltWithTime, alpha, beta float64) HoltWithTime {
	if a.Empty() {
		return b
	}

	if b.Empty() {
		return a
	}

	maxTime := a.Timestamp
	if b.Timestamp > maxTime {
		maxTime = b.Timestamp
	}

	level := MergeAlphaWithTime(a.levelTrack(), b.levelTrack(), alpha)

	var trend AlphaWithTime

	switch {
	case a.FirstTrend.Was && b.FirstTrend.Was:
		trend = MergeAlphaWithTime(a.trendTrack(), b.trendTrack(), beta)
	case a.FirstTrend.Was:
		trend = joinTrendSample(a, b, beta)
	case b.FirstTrend.Was:
		trend = joinTrendSample(b, a, beta)
	default:
		if d, at, ok := slopeBetween(a.FirstValue, b.FirstValue); ok {
			trend = AlphaWithTime{
				Value:      d,
				Timestamp:  at,
				FirstValue: NewMarker(d, at),
			}
		}
	}

	if !trend.Empty() {
		trend, _ = trend.Remap(maxTime, beta)
	}

	return HoltWithTime{
		Value:      level.Value,
		Trend:      trend.Value,
		Timestamp:  maxTime,
		FirstValue: level.FirstValue,
		FirstTrend: trend.FirstValue,
	}
}

// joinTrendSample folds the slope sample contributed by the trendless single
// block into the trended side's trend track.
func joinTrendSample(trended, single HoltWithTime, beta float64) AlphaWithTime {
	d, at, ok := slopeBetween(trended.FirstValue, single.FirstValue)
	if !ok {
		// Same tick as the earliest input: no slope information.
		return trended.trendTrack()
	}

	return MergeAlphaWithTime(trended.trendTrack(), AlphaWithTime{
		Value:      d,
		Timestamp:  at,
		FirstValue: NewMarker(d, at),
	}, beta)
}

// slopeBetween derives the per-tick slope sample between two first markers,
// stamped at the later of the two. Equal timestamps carry no slope.
func slopeBetween(ma, mb Marker) (slope float64, at uint64, ok bool) {
	if !ma.Was || !mb.Was || ma.Timestamp == mb.Timestamp {
		return
	}

	early, late := ma, mb
	if early.Timestamp > late.Timestamp {
		early, late = late, early
	}

	slope = (late.Value - early.Value) / float64(late.Timestamp-early.Timestamp)
	at = late.Timestamp
	ok = true

	return
}

func (s HoltWithTime) levelTrack() AlphaWithTime {
	return AlphaWithTime{Value: s.Value, Timestamp: s.Timestamp, FirstValue: s.FirstValue}
}

func (s HoltWithTime) trendTrack() AlphaWithTime {
	return AlphaWithTime{Value: s.Trend, Timestamp: s.Timestamp, FirstValue: s.FirstTrend}
}

// Remap re-expresses both tracks at a later timestamp.
func (s HoltWithTime) Remap(targetTime uint64, alpha, beta float64) (HoltWithTime, error) {
	if targetTime < s.Timestamp {
		return HoltWithTime{}, commerr.ErrOutOfRange
	}

	return HoltWithTime{
		Value:      s.Value * ScaleOneMinus(alpha, targetTime-s.Timestamp),
		Trend:      s.Trend * ScaleOneMinus(beta, targetTime-s.Timestamp),
		Timestamp:  targetTime,
		FirstValue: s.FirstValue,
		FirstTrend: s.FirstTrend,
	}, nil
}

// Get returns the level and trend at the state's own reference point.
func (s HoltWithTime) Get() (level, trend float64) {
	return s.Value, s.Trend
}

// Forecast is the one-step-ahead prediction.
func (s HoltWithTime) Forecast() float64 {
	return s.Value + s.Trend
}

// ForecastAt extrapolates linearly to the given timestamp.
func (s HoltWithTime) ForecastAt(targetTime uint64) (float64, error) {
	if targetTime < s.Timestamp {
		return 0, commerr.ErrOutOfRange
	}

	return s.Value + s.Trend*float64(targetTime-s.Timestamp), nil
}
