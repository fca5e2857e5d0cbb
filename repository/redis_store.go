package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"fincalc/domain"
)

const redisHistoryCap = 500

// RedisStore keeps keys as plain strings under a prefix and the calculation
// history as a capped list, newest at the head.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(addr, prefix string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{client: rdb, prefix: prefix}
}

func (r *RedisStore) key(k string) string {
	return r.prefix + k
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) SaveCalculation(ctx context.Context, rec domain.CalculationRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding calculation: %w", err)
	}
	listKey := r.key("calculations")
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, listKey, payload)
		pipe.LTrim(ctx, listKey, 0, redisHistoryCap-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save calculation: %w", err)
	}
	return nil
}

func (r *RedisStore) ListCalculations(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	raw, err := r.client.LRange(ctx, r.key("calculations"), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list calculations: %w", err)
	}
	out := make([]domain.CalculationRecord, 0, len(raw))
	for _, item := range raw {
		var rec domain.CalculationRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("decoding calculation: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
