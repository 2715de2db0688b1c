package aggregate

import (
	"fmt"
	"io"

	"github.com/sgostarter/libsmoothing/smoothing"
)

type alphaState struct {
	cfg   stateConfig
	state smoothing.Alpha
}

func (s *alphaState) Add(value float64, _ uint64) error {
	s.state.Add(value, s.cfg.alpha)

	return nil
}

func (s *alphaState) Merge(other State) error {
	o, ok := other.(*alphaState)
	if !ok || o.cfg != s.cfg {
		return fmt.Errorf("foreign state: %w", smoothing.ErrMergeNotSupported)
	}

	return s.state.Merge(o.state, s.cfg.alpha)
}

func (s *alphaState) Result() Result {
	return Result{Level: s.state.Get()}
}

func (s *alphaState) Serialize(w io.Writer) error {
	return writeBin(w, s.state.Value, s.state.Count)
}

func (s *alphaState) Deserialize(r io.Reader) error {
	return readBin(r, &s.state.Value, &s.state.Count)
}

type alphaWithTimeState struct {
	cfg   stateConfig
	state smoothing.AlphaWithTime
}

func (s *alphaWithTimeState) Add(value float64, timestamp uint64) error {
	s.state.Add(value, timestamp, s.cfg.alpha)

	return nil
}

func (s *alphaWithTimeState) Merge(other State) error {
	o, ok := other.(*alphaWithTimeState)
	if !ok || o.cfg != s.cfg {
		return fmt.Errorf("foreign state: %w", smoothing.ErrMergeNotSupported)
	}

	s.state.Merge(o.state, s.cfg.alpha)

	return nil
}

func (s *alphaWithTimeState) Result() Result {
	return Result{Level: s.state.Get()}
}

func (s *alphaWithTimeState) Serialize(w io.Writer) error {
	if err := writeBin(w, s.state.Value, s.state.Timestamp); err != nil {
		return err
	}

	return writeMarker(w, s.state.FirstValue)
}

func (s *alphaWithTimeState) Deserialize(r io.Reader) error {
	if err := readBin(r, &s.state.Value, &s.state.Timestamp); err != nil {
		return err
	}

	return readMarker(r, &s.state.FirstValue)
}

type alphaFillGapsState struct {
	cfg   stateConfig
	state smoothing.AlphaWithTimeFillGaps
}

func (s *alphaFillGapsState) Add(value float64, timestamp uint64) error {
	return s.state.Add(value, timestamp, s.cfg.alpha)
}

func (s *alphaFillGapsState) Merge(other State) error {
	o, ok := other.(*alphaFillGapsState)
	if !ok || o.cfg != s.cfg {
		return fmt.Errorf("foreign state: %w", smoothing.ErrMergeNotSupported)
	}

	return s.state.Merge(o.state, s.cfg.alpha)
}

func (s *alphaFillGapsState) Result() Result {
	return Result{Level: s.state.Get()}
}

func (s *alphaFillGapsState) Serialize(w io.Writer) error {
	return writeBin(w, s.state.Value, s.state.Timestamp, s.state.Count)
}

func (s *alphaFillGapsState) Deserialize(r io.Reader) error {
	return readBin(r, &s.state.Value, &s.state.Timestamp, &s.state.Count)
}
