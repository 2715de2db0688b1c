// nolint
package redisstate

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/libconfig/ut"
	"github.com/sgostarter/libsmoothing/aggregate"
	"github.com/stretchr/testify/assert"
)

func initRedis(dsn string) (cli *redis.Client, err error) {
	options, err := redis.ParseURL(dsn)
	if err != nil {
		return
	}

	cli = redis.NewClient(options)

	ctx, cf := context.WithTimeout(context.Background(), 3*time.Second)
	defer cf()

	err = cli.Ping(ctx).Err()
	if err != nil {
		return
	}

	return
}

func TestRedisPartialStore(t *testing.T) {
	cfg := ut.SetupUTConfig4Redis(t)
	redisCli, err := initRedis(cfg.RedisDSN)
	assert.Nil(t, err)

	blank := func() (aggregate.State, error) {
		return aggregate.New(aggregate.FunctionAlpha, []interface{}{0.5}, true)
	}

	store := NewRedisPartialStore("ut-smoothing", redisCli, blank, nil)

	group := "metric-a"

	assert.Nil(t, store.Clear(group))

	left, err := blank()
	assert.Nil(t, err)
	assert.Nil(t, left.Add(10, 0))
	assert.Nil(t, left.Add(30, 2))

	right, err := blank()
	assert.Nil(t, err)
	assert.Nil(t, right.Add(20, 1))
	assert.Nil(t, right.Add(40, 3))

	idLeft, err := store.Save(group, left)
	assert.Nil(t, err)

	idRight, err := store.Save(group, right)
	assert.Nil(t, err)
	assert.NotEqual(t, idLeft, idRight)

	states, err := store.LoadAll(group)
	assert.Nil(t, err)
	assert.Len(t, states, 2)

	merged, err := blank()
	assert.Nil(t, err)
	assert.Nil(t, store.MergeAll(group, merged))

	one, err := blank()
	assert.Nil(t, err)
	for ts, v := range []float64{10, 20, 30, 40} {
		assert.Nil(t, one.Add(v, uint64(ts)))
	}

	assert.InDelta(t, one.Result().Level, merged.Result().Level, 1e-12)

	assert.Nil(t, store.Clear(group))

	states, err = store.LoadAll(group)
	assert.Nil(t, err)
	assert.Len(t, states, 0)
}
