package smoothing

// Marker is a nullable (value, timestamp) pair remembering a raw input that
// was folded in without decay. Merging two partial sums uses the markers to
// find the single input that keeps its undecayed status and to take back the
// over-counted contribution of the one that loses it.
type Marker struct {
	Value     float64
	Timestamp uint64
	Was       bool
}

func NewMarker(value float64, timestamp uint64) Marker {
	return Marker{Value: value, Timestamp: timestamp, Was: true}
}

// MinOrMerge resolves two markers to the earliest-timestamped one. On equal
// timestamps the values sum: both inputs stay undecayed at that tick.
func MinOrMerge(a, b Marker) Marker {
	if !a.Was {
		return b
	}

	if !b.Was {
		return a
	}

	if a.Timestamp == b.Timestamp {
		return NewMarker(a.Value+b.Value, a.Timestamp)
	}

	if a.Timestamp < b.Timestamp {
		return a
	}

	return b
}

// MaxOrEmpty resolves to the latest-timestamped marker, or an empty marker if
// either side is empty or the timestamps tie. A non-empty result is the marker
// whose undecayed contribution must be demoted after a merge.
func MaxOrEmpty(a, b Marker) Marker {
	if !a.Was || !b.Was || a.Timestamp == b.Timestamp {
		return Marker{}
	}

	if a.Timestamp > b.Timestamp {
		return a
	}

	return b
}
