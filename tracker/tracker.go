package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/routineman"
	"github.com/sgostarter/libeasygo/timespan"
	"github.com/sgostarter/libsmoothing/smoothing"
	"github.com/spf13/cast"
)

// Tracker folds sampled values into one gap-filling double smoothing
// accumulator per key, on a fixed tick grid. Samples inside a tick are
// averaged, every finished tick appends a level/trend point to the key's
// history, and ticks without samples are filled by the accumulator itself
// when the next sample arrives.
type Tracker struct {
	logger l.Wrapper

	tickDuration  time.Duration
	maxPointCount int
	alpha         float64
	beta          float64
	storage       Storage

	span *timespan.TimeSpan

	routineMan routineman.RoutineMan

	accLock sync.Mutex
	accs    map[string]*smoothing.HoltWithTimeFillGaps

	historyLock sync.RWMutex
	history     map[string][]*PointWithTimestamp

	cachedSamples *cache.Cache
}

func NewTracker(tickDuration time.Duration, maxPointCount int, alpha, beta float64,
	storage Storage, logger l.Wrapper) *Tracker {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "smoothingTracker"))

	if tickDuration <= 0 {
		tickDuration = time.Minute
	}

	if maxPointCount <= 0 {
		maxPointCount = 512
	}

	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		logger.Fatal("decay parameters must be within [0, 1]")
	}

	if storage == nil {
		logger.Fatal("no storage")
	}

	cacheDuration := tickDuration * 2
	if cacheDuration < time.Second {
		cacheDuration = time.Second
	}

	t := &Tracker{
		logger:        logger,
		tickDuration:  tickDuration,
		maxPointCount: maxPointCount,
		alpha:         alpha,
		beta:          beta,
		storage:       storage,
		span:          timespan.NewTimeSpan(tickDuration),
		routineMan:    routineman.NewRoutineMan(context.Background(), logger),
		accs:          make(map[string]*smoothing.HoltWithTimeFillGaps),
		history:       make(map[string][]*PointWithTimestamp),
		cachedSamples: cache.New(cacheDuration, cacheDuration),
	}

	t.init()

	return t
}

func (impl *Tracker) TriggerStop() {
	impl.routineMan.TriggerStop()
}

func (impl *Tracker) Wait() {
	impl.routineMan.Wait()
}

func (impl *Tracker) init() {
	keys, err := impl.storage.Keys()
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err)).Error("list storage keys failed")
	}

	for _, key := range keys {
		history, errL := impl.storage.Load(key)
		if errL != nil || len(history) == 0 {
			continue
		}

		impl.history[key] = history

		// the last snapshot restores the accumulator after a restart
		last := history[len(history)-1]
		impl.accs[key] = &smoothing.HoltWithTimeFillGaps{
			Value:     last.Level,
			Trend:     last.Trend,
			Timestamp: impl.tickIndexAt(time.Unix(last.At, 0)),
			Count:     2,
		}
	}

	impl.routineMan.StartRoutine(impl.tickRoutine, "tickRoutine")
}

func (impl *Tracker) tickSeconds() int64 {
	seconds := int64(impl.tickDuration / time.Second)
	if seconds <= 0 {
		seconds = 1
	}

	return seconds
}

func (impl *Tracker) tickIndexAt(t time.Time) uint64 {
	return uint64(t.Unix() / impl.tickSeconds())
}

func (impl *Tracker) genCachedKey(timeLabel string) string {
	return fmt.Sprintf("s:%s", timeLabel)
}

func (impl *Tracker) getCachedSamplesOnCurrent(t time.Time) *sync.Map {
	s := impl.genCachedKey(impl.span.GetLabel(t))

	if i, ok := impl.cachedSamples.Get(s); ok {
		m, _ := i.(*sync.Map)

		return m
	}

	m := sync.Map{}
	impl.cachedSamples.Set(s, &m, impl.tickDuration*2)

	return &m
}

// SetValue records one sample for the key in the current tick. Samples within
// a tick are averaged before they reach the accumulator.
func (impl *Tracker) SetValue(key string, v float64) {
	m := impl.getCachedSamplesOnCurrent(time.Now())

	if old, ok := m.Load(key); ok {
		// nolint:forcetypeassert
		m.Store(key, old.(avgSample).combine(v))
	} else {
		m.Store(key, genAVGSample(v))
	}
}

func (impl *Tracker) tickRoutine(ctx context.Context, _ func() bool) {
	label := impl.span.GetCurrentLabel()

	sleepDuration := time.Second * 10
	if impl.tickDuration/2 < sleepDuration {
		sleepDuration = impl.tickDuration / 2
	}

	loop := true

	for loop {
		select {
		case <-ctx.Done():
			loop = false

			continue
		case <-time.After(sleepDuration):
			newLabel := impl.span.GetCurrentLabel()
			if newLabel == label {
				continue
			}

			impl.finishTick(label)

			label = newLabel
		}
	}
}

func (impl *Tracker) finishTick(label string) {
	i, ok := impl.cachedSamples.Get(impl.genCachedKey(label))
	if !ok {
		return
	}

	m, ok := i.(*sync.Map)
	if !ok {
		impl.logger.Fatal("logic error: not a map")

		return
	}

	t, _ := impl.span.Label2Time(label)

	tickIndex := impl.tickIndexAt(t)

	m.Range(func(key, value any) bool {
		// nolint:forcetypeassert
		impl.foldSample(cast.ToString(key), value.(avgSample).calc(), tickIndex, t.Unix())

		return true
	})
}

func (impl *Tracker) foldSample(key string, v float64, tickIndex uint64, at int64) {
	impl.accLock.Lock()

	acc := impl.accs[key]
	if acc == nil {
		acc = &smoothing.HoltWithTimeFillGaps{}
		impl.accs[key] = acc
	}

	err := acc.Add(v, tickIndex, impl.alpha, impl.beta)
	point := Point{Level: acc.Value, Trend: acc.Trend}

	impl.accLock.Unlock()

	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Warn("stale tick dropped")

		return
	}

	impl.historyLock.Lock()

	impl.history[key] = append(impl.history[key], &PointWithTimestamp{
		At:    at,
		Point: point,
	})

	if len(impl.history[key]) > impl.maxPointCount {
		impl.history[key] = append([]*PointWithTimestamp{}, impl.history[key][1:]...)
	}

	ds := impl.history[key]

	impl.historyLock.Unlock()

	_ = impl.storage.Save(key, ds)
}

// GetCurve returns the last pointCnt grid slots ending at the previous tick,
// oldest first, with zero points where the key had no sample.
func (impl *Tracker) GetCurve(key string, pointCnt int) (tss []int64, ps []Point) {
	ts, _ := impl.span.Label2Time(impl.span.GetCurrentLabel())

	var points []*PointWithTimestamp

	impl.historyLock.RLock()

	for idx := len(impl.history[key]) - 1; idx >= 0; idx-- {
		points = append(points, impl.history[key][idx])
	}

	impl.historyLock.RUnlock()

	var idx int

	for ts = ts.Add(-impl.tickDuration); pointCnt > 0; pointCnt-- {
		tss = append(tss, ts.Unix())

		if idx >= len(points) || ts.Unix() != points[idx].At {
			ps = append(ps, Point{})
		} else {
			ps = append(ps, points[idx].Point)
			idx++
		}

		ts = ts.Add(-impl.tickDuration)
	}

	for i, j := 0, len(tss)-1; i < j; i, j = i+1, j-1 {
		tss[i], tss[j] = tss[j], tss[i]
		ps[i], ps[j] = ps[j], ps[i]
	}

	return
}

// Forecast extrapolates the key's accumulator to the tick holding at.
func (impl *Tracker) Forecast(key string, at time.Time) (float64, error) {
	impl.accLock.Lock()
	defer impl.accLock.Unlock()

	acc := impl.accs[key]
	if acc == nil {
		return 0, commerr.ErrNotFound
	}

	level, _, err := acc.GetAt(impl.tickIndexAt(at), impl.alpha, impl.beta)
	if err != nil {
		return 0, err
	}

	return level, nil
}

type avgSample struct {
	sum   float64
	count int
}

func genAVGSample(v float64) avgSample {
	return avgSample{sum: v, count: 1}
}

func (o avgSample) combine(v float64) avgSample {
	return avgSample{sum: o.sum + v, count: o.count + 1}
}

func (o avgSample) calc() float64 {
	return o.sum / float64(o.count)
}
