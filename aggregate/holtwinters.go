package aggregate

import (
	"fmt"
	"io"

	"github.com/sgostarter/libsmoothing/smoothing"
)

type holtWintersState struct {
	cfg   stateConfig
	state smoothing.HoltWinters
}

func (s *holtWintersState) Add(value float64, _ uint64) error {
	s.state.Add(value, s.cfg.alpha, s.cfg.beta, s.cfg.gamma, s.cfg.seasonsCount)

	return nil
}

func (s *holtWintersState) Merge(other State) error {
	o, ok := other.(*holtWintersState)
	if !ok || o.cfg != s.cfg || o.state.Method != s.state.Method {
		return fmt.Errorf("foreign state: %w", smoothing.ErrMergeNotSupported)
	}

	return s.state.Merge(o.state, s.cfg.alpha, s.cfg.beta, s.cfg.gamma, s.cfg.seasonsCount)
}

func (s *holtWintersState) Result() Result {
	level, trend, seasons := s.state.Get()

	return Result{Level: level, Trend: trend, Seasons: seasons}
}

func (s *holtWintersState) Serialize(w io.Writer) error {
	if err := writeBin(w, s.state.Value, s.state.Trend); err != nil {
		return err
	}

	if err := writeSeasons(w, s.state.Seasons); err != nil {
		return err
	}

	return writeBin(w, s.state.Count)
}

func (s *holtWintersState) Deserialize(r io.Reader) error {
	if err := readBin(r, &s.state.Value, &s.state.Trend); err != nil {
		return err
	}

	seasons, err := readSeasons(r, s.cfg.seasonsCount)
	if err != nil {
		return err
	}

	s.state.Seasons = seasons

	return readBin(r, &s.state.Count)
}

type holtWintersWithTimeState struct {
	cfg   stateConfig
	state smoothing.HoltWintersWithTime
}

func (s *holtWintersWithTimeState) Add(value float64, timestamp uint64) error {
	s.state.Add(value, timestamp, s.cfg.alpha, s.cfg.beta, s.cfg.gamma, s.cfg.seasonsCount)

	return nil
}

func (s *holtWintersWithTimeState) Merge(other State) error {
	o, ok := other.(*holtWintersWithTimeState)
	if !ok || o.cfg != s.cfg || o.state.Method != s.state.Method {
		return fmt.Errorf("foreign state: %w", smoothing.ErrMergeNotSupported)
	}

	s.state.Merge(o.state, s.cfg.alpha, s.cfg.beta, s.cfg.gamma, s.cfg.seasonsCount)

	return nil
}

func (s *holtWintersWithTimeState) Result() Result {
	level, trend, seasons := s.state.Get()

	return Result{Level: level, Trend: trend, Seasons: seasons}
}

func (s *holtWintersWithTimeState) Serialize(w io.Writer) error {
	if err := writeBin(w, s.state.Value, s.state.Trend); err != nil {
		return err
	}

	if err := writeSeasons(w, s.state.Seasons); err != nil {
		return err
	}

	if err := writeBin(w, s.state.Timestamp); err != nil {
		return err
	}

	if err := writeMarker(w, s.state.FirstValue); err != nil {
		return err
	}

	return writeMarker(w, s.state.FirstTrend)
}

func (s *holtWintersWithTimeState) Deserialize(r io.Reader) error {
	if err := readBin(r, &s.state.Value, &s.state.Trend); err != nil {
		return err
	}

	seasons, err := readSeasons(r, s.cfg.seasonsCount)
	if err != nil {
		return err
	}

	s.state.Seasons = seasons

	if err = readBin(r, &s.state.Timestamp); err != nil {
		return err
	}

	if err = readMarker(r, &s.state.FirstValue); err != nil {
		return err
	}

	return readMarker(r, &s.state.FirstTrend)
}

type holtWintersFillGapsState struct {
	cfg   stateConfig
	state smoothing.HoltWintersWithTimeFillGaps
}

func (s *holtWintersFillGapsState) Add(value float64, timestamp uint64) error {
	return s.state.Add(value, timestamp, s.cfg.alpha, s.cfg.beta, s.cfg.gamma, s.cfg.seasonsCount)
}

func (s *holtWintersFillGapsState) Merge(other State) error {
	o, ok := other.(*holtWintersFillGapsState)
	if !ok || o.cfg != s.cfg || o.state.Method != s.state.Method {
		return fmt.Errorf("foreign state: %w", smoothing.ErrMergeNotSupported)
	}

	return s.state.Merge(o.state, s.cfg.alpha, s.cfg.beta, s.cfg.gamma, s.cfg.seasonsCount)
}

func (s *holtWintersFillGapsState) Result() Result {
	level, trend, seasons := s.state.Get()

	return Result{Level: level, Trend: trend, Seasons: seasons}
}

func (s *holtWintersFillGapsState) Serialize(w io.Writer) error {
	if err := writeBin(w, s.state.Value, s.state.Trend); err != nil {
		return err
	}

	if err := writeSeasons(w, s.state.Seasons); err != nil {
		return err
	}

	return writeBin(w, s.state.Timestamp, s.state.Count)
}

func (s *holtWintersFillGapsState) Deserialize(r io.Reader) error {
	if err := readBin(r, &s.state.Value, &s.state.Trend); err != nil {
		return err
	}

	seasons, err := readSeasons(r, s.cfg.seasonsCount)
	if err != nil {
		return err
	}

	s.state.Seasons = seasons

	return readBin(r, &s.state.Timestamp, &s.state.Count)
}
