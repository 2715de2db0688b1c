package smoothing

import (
	"github.com/sgostarter/i/commerr"
)

// Alpha is the count-indexed simple exponential smoothing state.
//
// Value is the smoothed sum expressed at reference point Count: the first
// input entered with weight one, every later input with weight alpha, and each
// already-folded input loses a (1-alpha) factor per subsequent input. Count==0
// is the identity state.
type Alpha struct {
	Value float64
	Count uint64
}

func (s Alpha) Empty() bool {
	return s.Count == 0
}

// Add folds one raw value, as a merge with the single-value state (x, 1).
func (s *Alpha) Add(x, alpha float64) {
	r, _ := MergeAlpha(*s, Alpha{Value: x, Count: 1}, alpha)
	*s = r
}

func (s *Alpha) Merge(other Alpha, alpha float64) error {
	r, err := MergeAlpha(*s, other, alpha)
	if err != nil {
		return err
	}

	*s = r

	return nil
}

// MergeAlpha appends b onto a. Only a single-value b can be appended: two
// multi-value count-indexed blocks have lost the per-input positions needed to
// re-weight one against the other, so sequential row-at-a-time aggregation is
// the only supported shape. Cross-shard block merges use the time-indexed
// flavor instead.
func MergeAlpha(a, b Alpha, alpha float64) (Alpha, error) {
	if a.Empty() {
		return b, nil
	}

	if b.Empty() {
		return a, nil
	}

	if b.Count != 1 {
		return Alpha{}, ErrMergeNotSupported
	}

	return Alpha{
		Value: alpha*b.Value + (1-alpha)*a.Value,
		Count: a.Count + b.Count,
	}, nil
}

// Remap re-expresses the sum at a later count. The reference only moves forward.
func (s Alpha) Remap(targetCount uint64, alpha float64) (Alpha, error) {
	if targetCount < s.Count {
		return Alpha{}, commerr.ErrOutOfRange
	}

	return Alpha{
		Value: s.Value * ScaleOneMinus(alpha, targetCount-s.Count),
		Count: targetCount,
	}, nil
}

// Get returns the smoothed value at the state's own reference point.
func (s Alpha) Get() float64 {
	return s.Value
}

// GetAt remaps to targetCount and reads.
func (s Alpha) GetAt(targetCount uint64, alpha float64) (float64, error) {
	r, err := s.Remap(targetCount, alpha)
	if err != nil {
		return 0, err
	}

	return r.Get(), nil
}

// Less compares two states at their common maximum count, so states stay
// sortable without rewriting them as new values arrive.
func (s Alpha) Less(other Alpha, alpha float64) bool {
	maxCount := s.Count
	if other.Count > maxCount {
		maxCount = other.Count
	}

	sv, _ := s.GetAt(maxCount, alpha)
	ov, _ := other.GetAt(maxCount, alpha)

	return sv < ov
}
