package redisstate

import (
	"bytes"
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/godruoyi/go-snowflake"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libsmoothing/aggregate"
)

// NewRedisPartialStore parks serialized partial states in a Redis hash per
// group, one field per saved partial, so workers on other hosts can fetch and
// merge them. blank must build the empty state of the same function shape the
// saved states came from.
func NewRedisPartialStore(preKey string, redisCli *redis.Client, blank aggregate.NewBlankState, logger l.Wrapper) aggregate.PartialStore {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "partialStore"))

	if redisCli == nil {
		logger.Fatal("no redis client")
	}

	if blank == nil {
		logger.Fatal("no blank state factory")
	}

	return &partialStore{
		logger:   logger,
		preKey:   preKey,
		redisCli: redisCli,
		blank:    blank,
	}
}

type partialStore struct {
	logger   l.Wrapper
	preKey   string
	redisCli *redis.Client
	blank    aggregate.NewBlankState
}

func (impl *partialStore) groupKey(group string) string {
	return impl.preKey + ":partial:" + group
}

func (impl *partialStore) Save(group string, state aggregate.State) (id uint64, err error) {
	var buf bytes.Buffer

	err = state.Serialize(&buf)
	if err != nil {
		return
	}

	id = snowflake.ID()

	err = impl.redisCli.HSet(context.Background(), impl.groupKey(group),
		strconv.FormatUint(id, 10), buf.Bytes()).Err()

	return
}

func (impl *partialStore) LoadAll(group string) (states map[uint64]aggregate.State, err error) {
	ds, err := impl.redisCli.HGetAll(context.Background(), impl.groupKey(group)).Result()
	if err != nil {
		return
	}

	states = make(map[uint64]aggregate.State, len(ds))

	for field, d := range ds {
		id, errP := strconv.ParseUint(field, 10, 64)
		if errP != nil {
			err = errP

			return
		}

		state, errB := impl.blank()
		if errB != nil {
			err = errB

			return
		}

		err = state.Deserialize(bytes.NewReader([]byte(d)))
		if err != nil {
			return
		}

		states[id] = state
	}

	return
}

func (impl *partialStore) MergeAll(group string, into aggregate.State) error {
	states, err := impl.LoadAll(group)
	if err != nil {
		return err
	}

	for id, state := range states {
		if err = into.Merge(state); err != nil {
			impl.logger.WithFields(l.ErrorField(err), l.StringField("group", group),
				l.UInt64Field("id", id)).Error("merge saved partial failed")

			return err
		}
	}

	return nil
}

func (impl *partialStore) Clear(group string) error {
	return impl.redisCli.Del(context.Background(), impl.groupKey(group)).Err()
}
