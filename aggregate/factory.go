package aggregate

import (
	"fmt"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libsmoothing/smoothing"
	"github.com/spf13/cast"
)

// New builds a fresh state for a registered function name. The simple and
// Holt families take the time-indexed flavor when withTimeColumn is set;
// Holt-Winters selects the flavor by name, and every FillGaps function
// requires the time column.
func New(name string, params []interface{}, withTimeColumn bool) (State, error) {
	return NewEx(name, params, withTimeColumn, nil)
}

func NewEx(name string, params []interface{}, withTimeColumn bool, logger l.Wrapper) (State, error) {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "smoothingAggregate"))

	state, err := newState(name, params, withTimeColumn)
	if err != nil {
		logger.WithFields(l.ErrorField(err), l.StringField("function", name)).Error("new state failed")

		return nil, err
	}

	return state, nil
}

// nolint: cyclop
func newState(name string, params []interface{}, withTimeColumn bool) (State, error) {
	switch name {
	case FunctionAlpha:
		cfg, err := parseParams(name, params, 1, false)
		if err != nil {
			return nil, err
		}

		if withTimeColumn {
			return &alphaWithTimeState{cfg: cfg}, nil
		}

		return &alphaState{cfg: cfg}, nil
	case FunctionAlphaFillGaps:
		cfg, err := parseParams(name, params, 1, false)
		if err != nil {
			return nil, err
		}

		if !withTimeColumn {
			return nil, fmt.Errorf("%v needs a time column: %w", name, commerr.ErrInvalidArgument)
		}

		return &alphaFillGapsState{cfg: cfg}, nil
	case FunctionHolt:
		cfg, err := parseParams(name, params, 2, false)
		if err != nil {
			return nil, err
		}

		if withTimeColumn {
			return &holtWithTimeState{cfg: cfg}, nil
		}

		return &holtState{cfg: cfg}, nil
	case FunctionHoltFillGaps:
		cfg, err := parseParams(name, params, 2, false)
		if err != nil {
			return nil, err
		}

		if !withTimeColumn {
			return nil, fmt.Errorf("%v needs a time column: %w", name, commerr.ErrInvalidArgument)
		}

		return &holtFillGapsState{cfg: cfg}, nil
	case FunctionHoltWintersMultiply, FunctionHoltWintersAdditional,
		FunctionHoltWintersWithTimeMultiply, FunctionHoltWintersWithTimeAdditional,
		FunctionHoltWintersFillGapsMultiply, FunctionHoltWintersFillGapsAdditional:
		return newHoltWintersState(name, params, withTimeColumn)
	}

	return nil, fmt.Errorf("unknown function %v: %w", name, commerr.ErrInvalidArgument)
}

func newHoltWintersState(name string, params []interface{}, withTimeColumn bool) (State, error) {
	cfg, err := parseParams(name, params, 3, true)
	if err != nil {
		return nil, err
	}

	method := smoothing.Multiply
	if name == FunctionHoltWintersAdditional || name == FunctionHoltWintersWithTimeAdditional ||
		name == FunctionHoltWintersFillGapsAdditional {
		method = smoothing.Addition
	}

	switch name {
	case FunctionHoltWintersMultiply, FunctionHoltWintersAdditional:
		if withTimeColumn {
			return nil, fmt.Errorf("%v takes no time column: %w", name, commerr.ErrInvalidArgument)
		}

		return &holtWintersState{cfg: cfg, state: smoothing.NewHoltWinters(method)}, nil
	case FunctionHoltWintersWithTimeMultiply, FunctionHoltWintersWithTimeAdditional:
		if !withTimeColumn {
			return nil, fmt.Errorf("%v needs a time column: %w", name, commerr.ErrInvalidArgument)
		}

		return &holtWintersWithTimeState{cfg: cfg, state: smoothing.NewHoltWintersWithTime(method)}, nil
	}

	if !withTimeColumn {
		return nil, fmt.Errorf("%v needs a time column: %w", name, commerr.ErrInvalidArgument)
	}

	return &holtWintersFillGapsState{cfg: cfg, state: smoothing.NewHoltWintersWithTimeFillGaps(method)}, nil
}

type stateConfig struct {
	alpha        float64
	beta         float64
	gamma        float64
	seasonsCount uint32
}

// parseParams coerces and validates the decay parameters. decayCount is the
// number of leading decay parameters (alpha, beta, gamma in order); a seasonal
// function takes the seasons count as one trailing parameter.
func parseParams(name string, raw []interface{}, decayCount int, withSeasons bool) (cfg stateConfig, err error) {
	arity := decayCount
	if withSeasons {
		arity++
	}

	if len(raw) != arity {
		err = fmt.Errorf("%v wants %v parameters, got %v: %w", name, arity, len(raw), commerr.ErrInvalidArgument)

		return
	}

	decays := make([]float64, decayCount)

	for i := 0; i < decayCount; i++ {
		decays[i], err = cast.ToFloat64E(raw[i])
		if err != nil {
			err = fmt.Errorf("%v parameter %v is not a number: %w", name, i, commerr.ErrInvalidArgument)

			return
		}

		if decays[i] < 0 || decays[i] > 1 {
			err = fmt.Errorf("%v parameter %v must be within [0, 1]: %w", name, i, commerr.ErrInvalidArgument)

			return
		}
	}

	cfg.alpha = decays[0]

	if decayCount > 1 {
		cfg.beta = decays[1]
	}

	if decayCount > 2 {
		cfg.gamma = decays[2]
	}

	if withSeasons {
		cfg.seasonsCount, err = cast.ToUint32E(raw[decayCount])
		if err != nil || cfg.seasonsCount == 0 {
			err = fmt.Errorf("%v seasons count must be a positive number: %w", name, commerr.ErrInvalidArgument)

			return
		}
	}

	return
}
