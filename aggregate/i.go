package aggregate

import (
	"io"
)

// Function names as a query engine registers them. The simple and Holt names
// cover both the count-indexed and time-indexed arities, selected by the
// withTimeColumn flag at construction; the Holt-Winters time flavor has its
// own names. FillGaps names always require the time column.
const (
	FunctionAlpha                         = "exponentialSmoothingAlpha"
	FunctionAlphaFillGaps                 = "exponentialSmoothingAlphaFillGaps"
	FunctionHolt                          = "Holt"
	FunctionHoltFillGaps                  = "HoltFillGaps"
	FunctionHoltWintersMultiply           = "HoltWintersMultiply"
	FunctionHoltWintersWithTimeMultiply   = "HoltWintersWithTimeMultiply"
	FunctionHoltWintersFillGapsMultiply   = "HoltWintersFillGapsMultiply"
	FunctionHoltWintersAdditional         = "HoltWintersAdditional"
	FunctionHoltWintersWithTimeAdditional = "HoltWintersWithTimeAdditional"
	FunctionHoltWintersFillGapsAdditional = "HoltWintersFillGapsAdditional"
)

// Result is the readable value of a state. Seasons is nil for the simple and
// Holt families and holds one entry per phase for Holt-Winters.
type Result struct {
	Level   float64
	Trend   float64
	Seasons []float64
}

// State is one accumulator instance. The decay parameters live in the state's
// constructor configuration, not in the serialized bytes, so two states only
// merge when both came from the same New call shape.
type State interface {
	// Add folds one raw value. States built without a time column ignore the
	// timestamp.
	Add(value float64, timestamp uint64) error

	// Merge folds another state of the same function and parameters.
	Merge(other State) error

	// Result reads the current level, trend and seasonal ring.
	Result() Result

	Serialize(w io.Writer) error
	Deserialize(r io.Reader) error
}

// NewBlankState produces an empty state of the owning function's shape, for
// deserializing saved bytes. New curried over a fixed name and parameters
// fits here.
type NewBlankState func() (State, error)

// PartialStore parks serialized partial states by group so another worker can
// fetch and merge them. A store instance is bound to one function shape.
type PartialStore interface {
	Save(group string, state State) (id uint64, err error)
	LoadAll(group string) (map[uint64]State, error)
	MergeAll(group string, into State) error
	Clear(group string) error
}

// CheckpointStore persists one state per group, overwriting on every
// checkpoint.
type CheckpointStore interface {
	Checkpoint(group string, state State) error
	Restore(group string, state State) error
	Groups() ([]string, error)
}
