package playback

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix   = "musicroom:playback:"
	redisMaxAttempts = 5
)

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisStore shares snapshots between server instances. Keys expire after
// ttl of inactivity; an expired session starts again from defaults.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context, key string) (Snapshot, error) {
	return r.read(ctx, r.rdb, key)
}

func (r *RedisStore) Update(ctx context.Context, key string, fn func(Snapshot) Snapshot) (Snapshot, error) {
	k := redisKeyPrefix + key
	var out Snapshot

	txf := func(tx *redis.Tx) error {
		cur, err := r.read(ctx, tx, key)
		if err != nil {
			return err
		}
		out = fn(cur)
		data, err := json.Marshal(out)
		if err != nil {
			return errors.Wrap(err, "encode snapshot")
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, data, r.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < redisMaxAttempts; i++ {
		err := r.rdb.Watch(ctx, txf, k)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return Snapshot{}, errors.Wrapf(err, "update snapshot %s", key)
	}
	return Snapshot{}, errors.Errorf("update snapshot %s: too much contention", key)
}

func (r *RedisStore) read(ctx context.Context, c getter, key string) (Snapshot, error) {
	data, err := c.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewSnapshot(), nil
	}
	if err != nil {
		return Snapshot{}, errors.Wrapf(err, "load snapshot %s", key)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, errors.Wrapf(err, "decode snapshot %s", key)
	}
	return s, nil
}
