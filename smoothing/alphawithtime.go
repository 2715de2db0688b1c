package smoothing

import (
	"github.com/sgostarter/i/commerr"
)

// AlphaWithTime is the timestamp-indexed simple smoothing state.
//
// Value is the fully decayed smoothed sum at reference Timestamp, including
// the undecayed contribution of the earliest input. FirstValue remembers that
// input, so merging two independently built blocks can demote whichever
// "first" turns out not to be the global earliest. Ticks without an input
// still decay the sum, which weighs the missing ticks as zero.
type AlphaWithTime struct {
	Value      float64
	Timestamp  uint64
	FirstValue Marker
}

func (s AlphaWithTime) Empty() bool {
	return !s.FirstValue.Was
}

// Add folds one raw value at its timestamp, as a merge with the single-value
// block built from it. Out-of-order timestamps are fine here.
func (s *AlphaWithTime) Add(x float64, timestamp uint64, alpha float64) {
	*s = MergeAlphaWithTime(*s, AlphaWithTime{
		Value:      x,
		Timestamp:  timestamp,
		FirstValue: NewMarker(x, timestamp),
	}, alpha)
}

func (s *AlphaWithTime) Merge(other AlphaWithTime, alpha float64) {
	*s = MergeAlphaWithTime(*s, other, alpha)
}

// MergeAlphaWithTime combines two blocks built independently and possibly out
// of order. Both sides move to the later reference and the values sum; the
// earliest first marker survives via MinOrMerge, and the demoted one's
// undecayed contribution is taken back: subtracting it after one extra
// (1-alpha) step leaves exactly the alpha-weighted share a regular input at
// its tick would have had.
func MergeAlphaWithTime(a, b AlphaWithTime, alpha float64) AlphaWithTime {
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

	value := a.Value*ScaleOneMinus(alpha, maxTime-a.Timestamp) +
		b.Value*ScaleOneMinus(alpha, maxTime-b.Timestamp)

	if late := MaxOrEmpty(a.FirstValue, b.FirstValue); late.Was {
		value -= late.Value * ScaleOneMinus(alpha, maxTime-late.Timestamp+1)
	}

	return AlphaWithTime{
		Value:      value,
		Timestamp:  maxTime,
		FirstValue: MinOrMerge(a.FirstValue, b.FirstValue),
	}
}

// Remap re-expresses the sum at a later timestamp.
func (s AlphaWithTime) Remap(targetTime uint64, alpha float64) (AlphaWithTime, error) {
	if targetTime < s.Timestamp {
		return AlphaWithTime{}, commerr.ErrOutOfRange
	}

	return AlphaWithTime{
		Value:      s.Value * ScaleOneMinus(alpha, targetTime-s.Timestamp),
		Timestamp:  targetTime,
		FirstValue: s.FirstValue,
	}, nil
}

// Get returns the smoothed value at the state's own reference point.
func (s AlphaWithTime) Get() float64 {
	return s.Value
}

// GetAt remaps to targetTime and reads.
func (s AlphaWithTime) GetAt(targetTime uint64, alpha float64) (float64, error) {
	r, err := s.Remap(targetTime, alpha)
	if err != nil {
		return 0, err
	}

	return r.Get(), nil
}

// Less compares two states at their common maximum timestamp.
func (s AlphaWithTime) Less(other AlphaWithTime, alpha float64) bool {
	maxTime := s.Timestamp
	if other.Timestamp > maxTime {
		maxTime = other.Timestamp
	}

	sv, _ := s.GetAt(maxTime, alpha)
	ov, _ := other.GetAt(maxTime, alpha)

	return sv < ov
}
