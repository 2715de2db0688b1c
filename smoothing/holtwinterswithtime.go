package smoothing

import (
	"github.com/sgostarter/i/commerr"
)

// HoltWintersWithTime is the timestamp-indexed triple smoothing state. The
// level and trend tracks are exactly those of HoltWithTime; the season ring
// holds per-phase adjustments for phase = timestamp mod seasonsCount.
//
// Each slot stores the baseline plus a decayed shift; the shift decays by
// (1-gamma) once per tick congruent to the slot's phase, so slots decay and
// merge independently of each other and of the level. A freshly added value
// is a "raw sample": its block has a nil ring, the merge strips the season
// from it before the level track sees it, and afterwards its season slot
// absorbs the sample measured against the merged level.
type HoltWintersWithTime struct {
	Method     Method
	Value      float64
	Trend      float64
	Seasons    []float64
	Timestamp  uint64
	FirstValue Marker
	FirstTrend Marker
}

func NewHoltWintersWithTime(method Method) HoltWintersWithTime {
	return HoltWintersWithTime{Method: method}
}

func (s HoltWintersWithTime) Empty() bool {
	return !s.FirstValue.Was
}

func (s *HoltWintersWithTime) Add(x float64, timestamp uint64, alpha, beta, gamma float64, seasonsCount uint32) {
	*s = MergeHoltWintersWithTime(*s, HoltWintersWithTime{
		Method:     s.Method,
		Value:      x,
		Timestamp:  timestamp,
		FirstValue: NewMarker(x, timestamp),
	}, alpha, beta, gamma, seasonsCount)
}

func (s *HoltWintersWithTime) Merge(other HoltWintersWithTime, alpha, beta, gamma float64, seasonsCount uint32) {
	*s = MergeHoltWintersWithTime(*s, other, alpha, beta, gamma, seasonsCount)
}

// MergeHoltWintersWithTime combines two blocks: season shifts sum per phase
// after remapping to the later reference, the level and trend tracks merge as
// in HoltWithTime with raw samples deseasonalized first, and finally each raw
// sample updates its season slot against the merged level.
func MergeHoltWintersWithTime(a, b HoltWintersWithTime, alpha, beta, gamma float64, seasonsCount uint32) HoltWintersWithTime {
	if a.Empty() {
		return b.materialize(seasonsCount)
	}

	if b.Empty() {
		return a.materialize(seasonsCount)
	}

	maxTime := a.Timestamp
	if b.Timestamp > maxTime {
		maxTime = b.Timestamp
	}

	base := a.Method.baseline()

	seasons := make([]float64, seasonsCount)
	for i := range seasons {
		seasons[i] = base +
			a.seasonShiftAt(uint32(i), maxTime, gamma, seasonsCount) +
			b.seasonShiftAt(uint32(i), maxTime, gamma, seasonsCount)
	}

	av, ar := a.holtView(seasons, seasonsCount)
	bv, br := b.holtView(seasons, seasonsCount)

	h := MergeHoltWithTime(av, bv, alpha, beta)

	for _, sample := range orderSamples(ar, br) {
		phase := int(sample.Timestamp % uint64(seasonsCount))
		seasons[phase] = gamma*a.Method.observe(sample.Value, h.Value) + (1-gamma)*seasons[phase]
	}

	return HoltWintersWithTime{
		Method:     a.Method,
		Value:      h.Value,
		Trend:      h.Trend,
		Seasons:    seasons,
		Timestamp:  h.Timestamp,
		FirstValue: h.FirstValue,
		FirstTrend: h.FirstTrend,
	}
}

// holtView projects the level and trend tracks. A raw sample block gets its
// season stripped, and the raw input is returned so the caller can feed the
// season slot after the merge.
func (s HoltWintersWithTime) holtView(seasons []float64, seasonsCount uint32) (HoltWithTime, Marker) {
	h := HoltWithTime{
		Value:      s.Value,
		Trend:      s.Trend,
		Timestamp:  s.Timestamp,
		FirstValue: s.FirstValue,
		FirstTrend: s.FirstTrend,
	}

	if s.Seasons != nil || s.Empty() {
		return h, Marker{}
	}

	raw := s.FirstValue
	phase := int(s.Timestamp % uint64(seasonsCount))
	h.Value = s.Method.deseason(s.Value, seasons[phase])
	h.FirstValue = NewMarker(h.Value, s.Timestamp)

	return h, raw
}

func (s HoltWintersWithTime) seasonShiftAt(phase uint32, targetTime uint64, gamma float64, seasonsCount uint32) float64 {
	if s.Seasons == nil {
		return 0
	}

	n := ticksCongruent(s.Timestamp, targetTime, phase, seasonsCount)

	return (s.Seasons[phase] - s.Method.baseline()) * ScaleOneMinus(gamma, n)
}

func (s HoltWintersWithTime) materialize(seasonsCount uint32) HoltWintersWithTime {
	out := s

	if out.Seasons == nil {
		if !out.Empty() {
			out.Seasons = newSeasons(out.Method, seasonsCount)
		}
	} else {
		out.Seasons = append([]float64(nil), out.Seasons...)
	}

	return out
}

// orderSamples lists the non-empty raw samples, earliest first.
func orderSamples(a, b Marker) []Marker {
	switch {
	case a.Was && b.Was:
		if b.Timestamp < a.Timestamp {
			a, b = b, a
		}

		return []Marker{a, b}
	case a.Was:
		return []Marker{a}
	case b.Was:
		return []Marker{b}
	}

	return nil
}

// ticksCongruent counts the ticks t in (from, to] with t mod m == phase.
func ticksCongruent(from, to uint64, phase uint32, m uint32) uint64 {
	if to <= from {
		return 0
	}

	upTo := func(n uint64) uint64 {
		if n < uint64(phase) {
			return 0
		}

		return (n-uint64(phase))/uint64(m) + 1
	}

	return upTo(to) - upTo(from)
}

// Remap re-expresses every track at a later timestamp.
func (s HoltWintersWithTime) Remap(targetTime uint64, alpha, beta, gamma float64, seasonsCount uint32) (HoltWintersWithTime, error) {
	if targetTime < s.Timestamp {
		return HoltWintersWithTime{}, commerr.ErrOutOfRange
	}

	out := s
	out.Value = s.Value * ScaleOneMinus(alpha, targetTime-s.Timestamp)
	out.Trend = s.Trend * ScaleOneMinus(beta, targetTime-s.Timestamp)

	if s.Seasons != nil {
		out.Seasons = make([]float64, len(s.Seasons))
		for i := range s.Seasons {
			out.Seasons[i] = s.Method.baseline() + s.seasonShiftAt(uint32(i), targetTime, gamma, seasonsCount)
		}
	}

	out.Timestamp = targetTime

	return out, nil
}

// Get returns the level, the trend and a copy of the seasonal ring.
func (s HoltWintersWithTime) Get() (level, trend float64, seasons []float64) {
	return s.Value, s.Trend, append([]float64(nil), s.Seasons...)
}

// Forecast is the one-step-ahead prediction with the next tick's seasonal
// adjustment applied.
func (s HoltWintersWithTime) Forecast(seasonsCount uint32) float64 {
	if s.Empty() || s.Seasons == nil {
		return 0
	}

	phase := int((s.Timestamp + 1) % uint64(seasonsCount))

	return s.Method.combine(s.Value+s.Trend, s.Seasons[phase])
}
