package smoothing

import "errors"

var (
	// ErrMergeNotSupported reports a merge shape the flavor cannot combine,
	// such as two multi-value count-indexed blocks. It signals a broken caller
	// contract, not bad input data.
	ErrMergeNotSupported = errors.New("merge not supported")

	// ErrIncorrectData reports out-of-order input on a gap-filling flavor.
	ErrIncorrectData = errors.New("incorrect data")
)
