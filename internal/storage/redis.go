package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/friendbook/internal/shared"
	"github.com/redis/go-redis/v9"
)

// RedisBridge stores values as plain redis strings under prefix+key, without expiry.
type RedisBridge struct {
	rdb    *redis.Client
	prefix string
	owned  bool
}

// NewRedisBridge wraps an existing client. The caller keeps ownership of rdb.
func NewRedisBridge(rdb *redis.Client, prefix string) *RedisBridge {
	return &RedisBridge{rdb: rdb, prefix: prefix}
}

// DialRedis connects to addr and verifies the server answers PING.
func DialRedis(addr string, db int, prefix string) (*RedisBridge, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("%w: redis %s: %v", shared.ErrStorage, addr, err)
	}
	return &RedisBridge{rdb: rdb, prefix: prefix, owned: true}, nil
}

func (b *RedisBridge) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := b.rdb.Get(ctx, b.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storageErr("get", key, err)
	}
	return v, true, nil
}

func (b *RedisBridge) Set(ctx context.Context, key, value string) error {
	if err := b.rdb.Set(ctx, b.prefix+key, value, 0).Err(); err != nil {
		return storageErr("set", key, err)
	}
	return nil
}

func (b *RedisBridge) Remove(ctx context.Context, key string) error {
	if err := b.rdb.Del(ctx, b.prefix+key).Err(); err != nil {
		return storageErr("remove", key, err)
	}
	return nil
}

func (b *RedisBridge) Close() error {
	if !b.owned {
		return nil
	}
	return b.rdb.Close()
}
