package aggregate

import (
	"fmt"
	"io"

	"github.com/sgostarter/libsmoothing/smoothing"
)

type holtState struct {
	cfg   stateConfig
	state smoothing.Holt
}

func (s *holtState) Add(value float64, _ uint64) error {
	s.state.Add(value, s.cfg.alpha, s.cfg.beta)

	return nil
}

func (s *holtState) Merge(other State) error {
	o, ok := other.(*holtState)
	if !ok || o.cfg != s.cfg {
		return fmt.Errorf("foreign state: %w", smoothing.ErrMergeNotSupported)
	}

	return s.state.Merge(o.state, s.cfg.alpha, s.cfg.beta)
}

func (s *holtState) Result() Result {
	level, trend := s.state.Get()

	return Result{Level: level, Trend: trend}
}

func (s *holtState) Serialize(w io.Writer) error {
	return writeBin(w, s.state.Value, s.state.Trend, s.state.Count)
}

func (s *holtState) Deserialize(r io.Reader) error {
	return readBin(r, &s.state.Value, &s.state.Trend, &s.state.Count)
}

type holtWithTimeState struct {
	cfg   stateConfig
	state smoothing.HoltWithTime
}

func (s *holtWithTimeState) Add(value float64, timestamp uint64) error {
	s.state.Add(value, timestamp, s.cfg.alpha, s.cfg.beta)

	return nil
}

func (s *holtWithTimeState) Merge(other State) error {
	o, ok := other.(*holtWithTimeState)
	if !ok || o.cfg != s.cfg {
		return fmt.Errorf("foreign state: %w", smoothing.ErrMergeNotSupported)
	}

	s.state.Merge(o.state, s.cfg.alpha, s.cfg.beta)

	return nil
}

func (s *holtWithTimeState) Result() Result {
	level, trend := s.state.Get()

	return Result{Level: level, Trend: trend}
}

func (s *holtWithTimeState) Serialize(w io.Writer) error {
	if err := writeBin(w, s.state.Value, s.state.Trend, s.state.Timestamp); err != nil {
		return err
	}

	if err := writeMarker(w, s.state.FirstValue); err != nil {
		return err
	}

	return writeMarker(w, s.state.FirstTrend)
}

func (s *holtWithTimeState) Deserialize(r io.Reader) error {
	if err := readBin(r, &s.state.Value, &s.state.Trend, &s.state.Timestamp); err != nil {
		return err
	}

	if err := readMarker(r, &s.state.FirstValue); err != nil {
		return err
	}

	return readMarker(r, &s.state.FirstTrend)
}

type holtFillGapsState struct {
	cfg   stateConfig
	state smoothing.HoltWithTimeFillGaps
}

func (s *holtFillGapsState) Add(value float64, timestamp uint64) error {
	return s.state.Add(value, timestamp, s.cfg.alpha, s.cfg.beta)
}

func (s *holtFillGapsState) Merge(other State) error {
	o, ok := other.(*holtFillGapsState)
	if !ok || o.cfg != s.cfg {
		return fmt.Errorf("foreign state: %w", smoothing.ErrMergeNotSupported)
	}

	return s.state.Merge(o.state, s.cfg.alpha, s.cfg.beta)
}

func (s *holtFillGapsState) Result() Result {
	level, trend := s.state.Get()

	return Result{Level: level, Trend: trend}
}

func (s *holtFillGapsState) Serialize(w io.Writer) error {
	return writeBin(w, s.state.Value, s.state.Trend, s.state.Timestamp, s.state.Count)
}

func (s *holtFillGapsState) Deserialize(r io.Reader) error {
	return readBin(r, &s.state.Value, &s.state.Trend, &s.state.Timestamp, &s.state.Count)
}
