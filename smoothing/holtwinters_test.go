package smoothing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHoltWintersSeasonsRing(t *testing.T) {
	const seasonsCount = 4

	for _, method := range []Method{Multiply, Addition} {
		s := NewHoltWinters(method)

		for i := 0; i < seasonsCount; i++ {
			s.Add(float64(10+i), 0.5, 0.5, 0.5, seasonsCount)
		}

		level, _, seasons := s.Get()
		assert.Len(t, seasons, seasonsCount)
		assert.NotZero(t, level)
		assert.EqualValues(t, seasonsCount, s.Count)
	}
}

func TestHoltWintersFirstValues(t *testing.T) {
	s := NewHoltWinters(Multiply)

	s.Add(10, 0.5, 0.5, 0.5, 4)
	assert.EqualValues(t, 10, s.Value)
	assert.EqualValues(t, 0, s.Trend)

	// the first slot saw its own input against its own level: still baseline
	assert.EqualValues(t, 1, s.Seasons[0])

	s.Add(14, 0.5, 0.5, 0.5, 4)
	assert.EqualValues(t, 4, s.Trend)
	assert.InDelta(t, 12, s.Value, 1e-12)
}

func TestHoltWintersAdditiveRecurrence(t *testing.T) {
	const (
		alpha = 0.5
		beta  = 0.4
		gamma = 0.3
	)

	s := NewHoltWinters(Addition)

	s.Add(10, alpha, beta, gamma, 2)
	s.Add(14, alpha, beta, gamma, 2)

	// L=12, T=4, season[1] = gamma*(14-12)
	assert.InDelta(t, gamma*2, s.Seasons[1], 1e-12)

	x := 20.0
	season := s.Seasons[0]
	level := alpha*(x-season) + (1-alpha)*(12+4)
	trend := beta*(level-12) + (1-beta)*4.0

	s.Add(x, alpha, beta, gamma, 2)

	gl, gt, _ := s.Get()
	assert.InDelta(t, level, gl, 1e-12)
	assert.InDelta(t, trend, gt, 1e-12)
}

func TestHoltWintersMergeAppend(t *testing.T) {
	const seasonsCount = 3

	var seq, acc HoltWinters

	seq = NewHoltWinters(Multiply)
	acc = NewHoltWinters(Multiply)

	xs := []float64{10, 12, 9, 11, 13}
	for _, x := range xs {
		seq.Add(x, 0.5, 0.4, 0.3, seasonsCount)

		single := NewHoltWinters(Multiply)
		single.Add(x, 0.5, 0.4, 0.3, seasonsCount)
		assert.NoError(t, acc.Merge(single, 0.5, 0.4, 0.3, seasonsCount))
	}

	assert.InDelta(t, seq.Value, acc.Value, 1e-12)
	assert.InDelta(t, seq.Trend, acc.Trend, 1e-12)
	assert.Equal(t, seq.Count, acc.Count)
	assert.InDeltaSlice(t, seq.Seasons, acc.Seasons, 1e-12)
}

func TestHoltWintersMergeBlocksUnsupported(t *testing.T) {
	a := NewHoltWinters(Addition)
	b := NewHoltWinters(Addition)

	a.Add(1, 0.5, 0.5, 0.5, 2)
	a.Add(2, 0.5, 0.5, 0.5, 2)

	b.Add(3, 0.5, 0.5, 0.5, 2)
	b.Add(4, 0.5, 0.5, 0.5, 2)

	assert.ErrorIs(t, a.Merge(b, 0.5, 0.5, 0.5, 2), ErrMergeNotSupported)
}

func TestHoltWintersForecast(t *testing.T) {
	s := NewHoltWinters(Addition)

	s.Add(10, 0.5, 0.5, 0.5, 2)
	s.Add(14, 0.5, 0.5, 0.5, 2)

	// next phase is 0 with baseline shift folded in
	assert.InDelta(t, s.Method.combine(s.Value+s.Trend, s.Seasons[0]), s.Forecast(2), 1e-12)
}
