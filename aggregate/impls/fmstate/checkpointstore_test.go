// nolint
package fmstate

import (
	"os"
	"testing"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libeasygo/pathutils"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libsmoothing/aggregate"
	"github.com/stretchr/testify/assert"
)

const (
	utRoot = "ut-data"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(utRoot)
	_ = pathutils.MustDirExists(utRoot)

	code := m.Run()

	_ = os.RemoveAll(utRoot)

	os.Exit(code)
}

func TestFMCheckpointStore(t *testing.T) {
	_ = os.RemoveAll(utRoot)
	_ = pathutils.MustDirExists(utRoot)

	store := NewFMCheckpointStore("", rawfs.NewFSStorage(utRoot))

	s, err := aggregate.New(aggregate.FunctionHolt, []interface{}{0.5, 0.5}, true)
	assert.Nil(t, err)
	assert.Nil(t, s.Add(10, 0))
	assert.Nil(t, s.Add(14, 1))

	assert.Nil(t, store.Checkpoint("metric-a", s))

	restored, err := aggregate.New(aggregate.FunctionHolt, []interface{}{0.5, 0.5}, true)
	assert.Nil(t, err)
	assert.Nil(t, store.Restore("metric-a", restored))
	assert.Equal(t, s.Result(), restored.Result())

	missing, err := aggregate.New(aggregate.FunctionHolt, []interface{}{0.5, 0.5}, true)
	assert.Nil(t, err)
	assert.ErrorIs(t, store.Restore("metric-b", missing), commerr.ErrNotFound)

	assert.Nil(t, store.Checkpoint("metric-b", missing))

	groups, err := store.Groups()
	assert.Nil(t, err)
	assert.Equal(t, []string{"metric-a", "metric-b"}, groups)

	// a second store over the same file sees the checkpoints
	reopened := NewFMCheckpointStore("", rawfs.NewFSStorage(utRoot))

	again, err := aggregate.New(aggregate.FunctionHolt, []interface{}{0.5, 0.5}, true)
	assert.Nil(t, err)
	assert.Nil(t, reopened.Restore("metric-a", again))
	assert.Equal(t, s.Result(), again.Result())
}
