package smoothing

import (
	"testing"

	"github.com/sgostarter/i/commerr"
	"github.com/stretchr/testify/assert"
)

func TestAlphaWithTimeSingle(t *testing.T) {
	var s AlphaWithTime

	s.Add(42, 5, 0.3)
	assert.EqualValues(t, 42, s.Get())
	assert.EqualValues(t, 5, s.Timestamp)
	assert.Equal(t, NewMarker(42, 5), s.FirstValue)
}

func TestAlphaWithTimeSequential(t *testing.T) {
	const alpha = 0.5

	var s AlphaWithTime

	s.Add(10, 0, alpha)
	s.Add(20, 1, alpha)

	// alpha*20 + (1-alpha)*10
	assert.InDelta(t, 15, s.Get(), 1e-12)

	// a two-tick gap decays the sum one extra step, the gap weighs as zero
	s.Add(0, 3, alpha)
	assert.InDelta(t, 15*0.25, s.Get(), 1e-12)
}

func TestAlphaWithTimeBlockMergeMatchesSequential(t *testing.T) {
	const alpha = 0.5

	var seq AlphaWithTime

	seq.Add(1, 0, alpha)
	seq.Add(1, 1, alpha)

	var a, b AlphaWithTime

	a.Add(1, 0, alpha)
	b.Add(1, 1, alpha)

	merged := MergeAlphaWithTime(a, b, alpha)
	assert.InDelta(t, seq.Get(), merged.Get(), 1e-12)
	assert.Equal(t, seq.FirstValue, merged.FirstValue)
	assert.Equal(t, seq.Timestamp, merged.Timestamp)

	// merge order must not matter
	swapped := MergeAlphaWithTime(b, a, alpha)
	assert.Equal(t, merged, swapped)
}

func TestAlphaWithTimeMergeIdentity(t *testing.T) {
	var s AlphaWithTime

	s.Add(10, 0, 0.5)
	s.Add(20, 2, 0.5)

	cp := s

	s.Merge(AlphaWithTime{}, 0.5)
	assert.Equal(t, cp, s)

	var e AlphaWithTime

	e.Merge(cp, 0.5)
	assert.Equal(t, cp, e)
}

func TestAlphaWithTimeMultiBlockMerge(t *testing.T) {
	const alpha = 0.5

	var seq AlphaWithTime

	seq.Add(4, 0, alpha)
	seq.Add(8, 1, alpha)
	seq.Add(16, 2, alpha)
	seq.Add(32, 3, alpha)

	var a, b AlphaWithTime

	a.Add(4, 0, alpha)
	a.Add(8, 1, alpha)

	b.Add(16, 2, alpha)
	b.Add(32, 3, alpha)

	merged := MergeAlphaWithTime(a, b, alpha)
	assert.InDelta(t, seq.Get(), merged.Get(), 1e-12)
	assert.Equal(t, seq.FirstValue, merged.FirstValue)
}

func TestAlphaWithTimeRemap(t *testing.T) {
	var s AlphaWithTime

	s.Add(10, 4, 0.5)

	_, err := s.Remap(3, 0.5)
	assert.ErrorIs(t, err, commerr.ErrOutOfRange)

	same, err := s.Remap(4, 0.5)
	assert.NoError(t, err)
	assert.Equal(t, s, same)

	v, err := s.GetAt(6, 0.5)
	assert.NoError(t, err)
	assert.InDelta(t, 2.5, v, 1e-12)
}

func TestAlphaWithTimeEqualTimestamps(t *testing.T) {
	var a, b AlphaWithTime

	a.Add(3, 1, 0.5)
	b.Add(4, 1, 0.5)

	merged := MergeAlphaWithTime(a, b, 0.5)
	assert.InDelta(t, 7, merged.Get(), 1e-12)
	assert.Equal(t, NewMarker(7, 1), merged.FirstValue)
}
