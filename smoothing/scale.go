// Package smoothing implements streaming exponential smoothing accumulators:
// simple smoothing, Holt (level and trend) and Holt-Winters (level, trend and
// a seasonal ring), each count-indexed, timestamp-indexed and gap-filling.
// States are plain value types; decay parameters are supplied on every call by
// the owning aggregate function, so a state can be copied, merged and moved
// between workers freely.
package smoothing

// Scale computes value^count with binary power. pow() loses precision on the
// repeated-halving weights these recurrences produce, and binary power needs
// only O(log count) multiplications.
func Scale(value float64, count uint64) float64 {
	result := 1.0

	for count > 0 {
		if count&1 == 1 {
			result *= value
		}

		count >>= 1
		value *= value
	}

	return result
}

// ScaleOneMinus computes (1-alpha)^count, how much a sum decays after count ticks.
func ScaleOneMinus(alpha float64, count uint64) float64 {
	return Scale(1-alpha, count)
}
