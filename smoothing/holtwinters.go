package smoothing

// Method selects how the seasonal component combines with the level.
type Method int

const (
	// Multiply composes level and season by product; an unobserved season
	// slot holds 1.
	Multiply Method = iota
	// Addition composes level and season by sum; an unobserved slot holds 0.
	Addition
)

func (m Method) baseline() float64 {
	if m == Multiply {
		return 1
	}

	return 0
}

// combine applies the seasonal adjustment to a level value.
func (m Method) combine(level, season float64) float64 {
	if m == Multiply {
		return level * season
	}

	return level + season
}

// deseason strips the seasonal adjustment from a raw input.
func (m Method) deseason(x, season float64) float64 {
	if m == Multiply {
		return x / season
	}

	return x - season
}

// observe derives the seasonal sample of a raw input against the fresh level.
func (m Method) observe(x, level float64) float64 {
	if m == Multiply {
		return x / level
	}

	return x - level
}

func newSeasons(m Method, seasonsCount uint32) []float64 {
	seasons := make([]float64, seasonsCount)

	base := m.baseline()
	for i := range seasons {
		seasons[i] = base
	}

	return seasons
}

// HoltWinters is the count-indexed triple smoothing state. Seasons is a fixed
// ring of per-phase adjustments allocated on the first input; the slot for
// phase p is updated by the inputs at positions p mod seasonsCount.
type HoltWinters struct {
	Method  Method
	Value   float64
	Trend   float64
	Seasons []float64
	Count   uint64
}

func NewHoltWinters(method Method) HoltWinters {
	return HoltWinters{Method: method}
}

func (s HoltWinters) Empty() bool {
	return s.Count == 0
}

// Add folds one raw value into level, trend and its season slot.
func (s *HoltWinters) Add(x float64, alpha, beta, gamma float64, seasonsCount uint32) {
	if s.Seasons == nil {
		s.Seasons = newSeasons(s.Method, seasonsCount)
	}

	phase := int(s.Count % uint64(seasonsCount))
	season := s.Seasons[phase]

	var level float64

	switch {
	case s.Count == 0:
		level = s.Method.deseason(x, season)
	case s.Count == 1:
		level = alpha*s.Method.deseason(x, season) + (1-alpha)*s.Value
		s.Trend = x - s.Value
	default:
		level = alpha*s.Method.deseason(x, season) + (1-alpha)*(s.Value+s.Trend)
		s.Trend = beta*(level-s.Value) + (1-beta)*s.Trend
	}

	s.Seasons[phase] = gamma*s.Method.observe(x, level) + (1-gamma)*season
	s.Value = level
	s.Count++
}

// Merge appends a single-value state; a single state still holds its raw
// input as the level, so it can be refolded at this block's phase.
func (s *HoltWinters) Merge(other HoltWinters, alpha, beta, gamma float64, seasonsCount uint32) error {
	if other.Empty() {
		return nil
	}

	if s.Empty() {
		*s = other
		s.Seasons = append([]float64(nil), other.Seasons...)

		return nil
	}

	if other.Count != 1 {
		return ErrMergeNotSupported
	}

	s.Add(other.Value, alpha, beta, gamma, seasonsCount)

	return nil
}

// Get returns the level, the trend and a copy of the seasonal ring.
func (s HoltWinters) Get() (level, trend float64, seasons []float64) {
	return s.Value, s.Trend, append([]float64(nil), s.Seasons...)
}

// Forecast is the one-step-ahead prediction with the next phase's seasonal
// adjustment applied.
func (s HoltWinters) Forecast(seasonsCount uint32) float64 {
	if s.Empty() {
		return 0
	}

	phase := int(s.Count % uint64(seasonsCount))

	return s.Method.combine(s.Value+s.Trend, s.Seasons[phase])
}
