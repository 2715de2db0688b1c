package aggregate

import (
	"encoding/binary"
	"io"

	"github.com/sgostarter/libsmoothing/smoothing"
)

// The state codec is a fixed little-endian field dump: floats and counters in
// declaration order, first-contribution markers as value, timestamp, was
// triples, the seasonal ring as a presence flag followed by the slots. The
// slot count is part of the function configuration, not of the bytes.

func writeBin(w io.Writer, vs ...interface{}) error {
	for _, v := range vs {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	return nil
}

func readBin(r io.Reader, vs ...interface{}) error {
	for _, v := range vs {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	return nil
}

func writeMarker(w io.Writer, m smoothing.Marker) error {
	return writeBin(w, m.Value, m.Timestamp, m.Was)
}

func readMarker(r io.Reader, m *smoothing.Marker) error {
	return readBin(r, &m.Value, &m.Timestamp, &m.Was)
}

func writeSeasons(w io.Writer, seasons []float64) error {
	if err := writeBin(w, seasons != nil); err != nil {
		return err
	}

	if seasons == nil {
		return nil
	}

	return writeBin(w, seasons)
}

func readSeasons(r io.Reader, seasonsCount uint32) ([]float64, error) {
	var present bool
	if err := readBin(r, &present); err != nil {
		return nil, err
	}

	if !present {
		return nil, nil
	}

	seasons := make([]float64, seasonsCount)
	if err := readBin(r, seasons); err != nil {
		return nil, err
	}

	return seasons, nil
}
