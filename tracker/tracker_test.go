// nolint
package tracker

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libeasygo/pathutils"
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

func TestCommonStorage(t *testing.T) {
	_ = os.RemoveAll(utRoot)
	_ = pathutils.MustDirExists(utRoot)

	stg := NewCommonStorage(utRoot)

	keys, err := stg.Keys()
	assert.Nil(t, err)
	assert.Len(t, keys, 0)

	err = stg.Save("k1", []*PointWithTimestamp{
		{At: 60, Point: Point{Level: 1.5, Trend: 0.5}},
		{At: 120, Point: Point{Level: 2, Trend: 0.5}},
	})
	assert.Nil(t, err)

	keys, err = stg.Keys()
	assert.Nil(t, err)
	assert.Equal(t, []string{"k1"}, keys)

	ds, err := stg.Load("k1")
	assert.Nil(t, err)
	assert.Len(t, ds, 2)
	assert.EqualValues(t, 120, ds[1].At)
	assert.EqualValues(t, 2, ds[1].Level)
	assert.EqualValues(t, 0.5, ds[1].Trend)
}

func TestTrackerFold(t *testing.T) {
	_ = os.RemoveAll(utRoot)
	_ = pathutils.MustDirExists(utRoot)

	tracker := NewTracker(time.Minute, 10, 1, 1, NewCommonStorage(utRoot), nil)
	defer func() {
		tracker.TriggerStop()
		tracker.Wait()
	}()

	tracker.foldSample("k1", 10, 100, 6000)
	tracker.foldSample("k1", 12, 101, 6060)

	// the line 10 + 2n continues through predicted ticks
	level, err := tracker.Forecast("k1", time.Unix(103*60, 0))
	assert.Nil(t, err)
	assert.InDelta(t, 18, level, 1e-12)

	_, err = tracker.Forecast("nobody", time.Now())
	assert.ErrorIs(t, err, commerr.ErrNotFound)

	// a stale tick is dropped, not folded
	tracker.foldSample("k1", 99, 100, 6000)

	level, err = tracker.Forecast("k1", time.Unix(103*60, 0))
	assert.Nil(t, err)
	assert.InDelta(t, 18, level, 1e-12)
}

func TestTrackerRestore(t *testing.T) {
	_ = os.RemoveAll(utRoot)
	_ = pathutils.MustDirExists(utRoot)

	tracker := NewTracker(time.Minute, 10, 1, 1, NewCommonStorage(utRoot), nil)

	tracker.foldSample("k1", 10, 100, 6000)
	tracker.foldSample("k1", 12, 101, 6060)

	tracker.TriggerStop()
	tracker.Wait()

	reborn := NewTracker(time.Minute, 10, 1, 1, NewCommonStorage(utRoot), nil)
	defer func() {
		reborn.TriggerStop()
		reborn.Wait()
	}()

	level, err := reborn.Forecast("k1", time.Unix(102*60, 0))
	assert.Nil(t, err)
	assert.InDelta(t, 16, level, 1e-12)
}

func TestTracker1(t *testing.T) {
	_ = os.RemoveAll(utRoot)
	_ = pathutils.MustDirExists(utRoot)

	tracker := NewTracker(time.Second*2, 20, 0.5, 0.5, NewCommonStorage(utRoot), nil)
	defer func() {
		tracker.TriggerStop()
		tracker.Wait()
	}()

	for i := 0; i < 10; i++ {
		tracker.SetValue("k1", float64(10+i))
		tracker.SetValue("k2", 5)
		time.Sleep(time.Millisecond * 500)
	}

	tss, ps := tracker.GetCurve("k1", 10)
	assert.Len(t, tss, 10)
	assert.Len(t, ps, 10)

	var ss strings.Builder

	for idx, at := range tss {
		ss.WriteString(fmt.Sprintf("  %s %+v\n", time.Unix(at, 0).Format("15:04:05"), ps[idx]))
	}

	t.Log("\n" + ss.String())
}
