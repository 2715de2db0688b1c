package fmstate

import (
	"bytes"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libeasygo/stg/mwf"
	"github.com/sgostarter/libsmoothing/aggregate"
)

// NewFMCheckpointStore keeps the latest serialized state per group in a
// memory map mirrored to one file, so a restarted process can pick up its
// accumulators where it left off.
func NewFMCheckpointStore(root string, storage stg.FileStorage) aggregate.CheckpointStore {
	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	return &fmCheckpointStoreImpl{
		stateStorage: mwf.NewMemWithFile[map[string][]byte, mwf.Serial, mwf.Lock](
			make(map[string][]byte), &mwf.JSONSerial{}, &sync.RWMutex{}, filepath.Join(root, "smoothingStates.json"), storage),
	}
}

type fmCheckpointStoreImpl struct {
	stateStorage *mwf.MemWithFile[map[string][]byte, mwf.Serial, mwf.Lock]
}

func (impl *fmCheckpointStoreImpl) Checkpoint(group string, state aggregate.State) error {
	var buf bytes.Buffer

	if err := state.Serialize(&buf); err != nil {
		return err
	}

	return impl.stateStorage.Change(func(oldM map[string][]byte) (newM map[string][]byte, err error) {
		newM = oldM
		if len(newM) == 0 {
			newM = make(map[string][]byte)
		}

		newM[group] = buf.Bytes()

		return
	})
}

func (impl *fmCheckpointStoreImpl) Restore(group string, state aggregate.State) (err error) {
	impl.stateStorage.Read(func(m map[string][]byte) {
		if d, ok := m[group]; ok {
			err = state.Deserialize(bytes.NewReader(d))
		} else {
			err = commerr.ErrNotFound
		}
	})

	return
}

func (impl *fmCheckpointStoreImpl) Groups() (groups []string, err error) {
	impl.stateStorage.Read(func(m map[string][]byte) {
		for group := range m {
			groups = append(groups, group)
		}
	})

	sort.Strings(groups)

	return
}
