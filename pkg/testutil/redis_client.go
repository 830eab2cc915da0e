package testutil

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient is an in-memory xredis.Client. Any behavior can be
// overridden per test through the function fields.
type MockRedisClient struct {
	mutex   sync.Mutex
	strings map[string]string
	zsets   map[string]map[string]float64

	ExistFunc               func(ctx context.Context, key string) (bool, error)
	DelFunc                 func(ctx context.Context, key ...string) error
	ZAddFunc                func(ctx context.Context, key string, z redis.Z) error
	ZIncrByFunc             func(ctx context.Context, key string, incr int64, member string) error
	ZRevRangeWithScoresFunc func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error)
	ZRevRankFunc            func(ctx context.Context, key string, member string) (uint64, error)
	SetFunc                 func(ctx context.Context, key, value string) error
	GetFunc                 func(ctx context.Context, key string) (string, error)
	SetObjFunc              func(ctx context.Context, key string, obj any, ttl time.Duration) error
	GetObjFunc              func(ctx context.Context, key string, v any) error
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		strings: make(map[string]string),
		zsets:   make(map[string]map[string]float64),
	}
}

func (c *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if c.ExistFunc != nil {
		return c.ExistFunc(ctx, key)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.strings[key]; ok {
		return true, nil
	}

	_, ok := c.zsets[key]
	return ok, nil
}

func (c *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if c.DelFunc != nil {
		return c.DelFunc(ctx, key...)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, k := range key {
		delete(c.strings, k)
		delete(c.zsets, k)
	}

	return nil
}

func (c *MockRedisClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	if c.ZAddFunc != nil {
		return c.ZAddFunc(ctx, key, z)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.zset(key)[z.Member.(string)] = z.Score
	return nil
}

func (c *MockRedisClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	if c.ZIncrByFunc != nil {
		return c.ZIncrByFunc(ctx, key, incr, member)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.zset(key)[member] += float64(incr)
	return nil
}

func (c *MockRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	if c.ZRevRangeWithScoresFunc != nil {
		return c.ZRevRangeWithScoresFunc(ctx, key, offset, limit)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	all := make([]redis.Z, 0, len(c.zset(key)))
	for member, score := range c.zset(key) {
		all = append(all, redis.Z{Member: member, Score: score})
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}

		return all[i].Member.(string) > all[j].Member.(string)
	})

	if offset >= len(all) {
		return nil, nil
	}

	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	return all[offset:end], nil
}

func (c *MockRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	if c.ZRevRankFunc != nil {
		return c.ZRevRankFunc(ctx, key, member)
	}

	rows, err := c.ZRevRangeWithScores(ctx, key, 0, len(c.zsets[key]))
	if err != nil {
		return 0, err
	}

	for i, z := range rows {
		if z.Member.(string) == member {
			return uint64(i), nil
		}
	}

	return 0, redis.Nil
}

func (c *MockRedisClient) Set(ctx context.Context, key, value string) error {
	if c.SetFunc != nil {
		return c.SetFunc(ctx, key, value)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.strings[key] = value
	return nil
}

func (c *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, key)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	value, ok := c.strings[key]
	if !ok {
		return "", redis.Nil
	}

	return value, nil
}

func (c *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	if c.SetObjFunc != nil {
		return c.SetObjFunc(ctx, key, obj, ttl)
	}

	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	return c.Set(ctx, key, string(b))
}

func (c *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	if c.GetObjFunc != nil {
		return c.GetObjFunc(ctx, key, v)
	}

	s, err := c.Get(ctx, key)
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(s), v)
}

func (c *MockRedisClient) zset(key string) map[string]float64 {
	if c.zsets[key] == nil {
		c.zsets[key] = make(map[string]float64)
	}

	return c.zsets[key]
}
