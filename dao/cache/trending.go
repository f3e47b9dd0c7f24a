package cache

import (
	"Mingle/config"
	"Mingle/types"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	trendingCacheKey   = "mingle:interests:trending"
	trendingVersionKey = "mingle:interests:trending:ver"
)

// TrendingStorage 热门兴趣缓存，redis 未配置时所有操作为空操作
type TrendingStorage struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewTrendingStorage(rds *redis.Client, conf *config.Config) *TrendingStorage {
	return &TrendingStorage{redis: rds, ttl: conf.Feed.TrendingTTL}
}

func (t *TrendingStorage) Enabled() bool {
	return t != nil && t.redis != nil
}

// Get 命中返回 true
func (t *TrendingStorage) Get(ctx context.Context) ([]types.TrendingInterest, bool, error) {
	if !t.Enabled() {
		return nil, false, nil
	}
	val, err := t.redis.Get(ctx, trendingCacheKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	items := make([]types.TrendingInterest, 0)
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

// Version 计算前先取版本号，写回时用它判断期间是否有失效
func (t *TrendingStorage) Version(ctx context.Context) (int64, error) {
	if !t.Enabled() {
		return 0, nil
	}
	ver, err := t.redis.Get(ctx, trendingVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return ver, err
}

// Set 版本号变化说明结果已过期，直接放弃写入
func (t *TrendingStorage) Set(ctx context.Context, items []types.TrendingInterest, ver int64) error {
	if !t.Enabled() {
		return nil
	}
	text, err := json.Marshal(items)
	if err != nil {
		return err
	}

	err = t.redis.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, trendingVersionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != ver {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, trendingCacheKey, text, t.ttl)
			return nil
		})
		return err
	}, trendingVersionKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Invalidate 资料变更后调用
func (t *TrendingStorage) Invalidate(ctx context.Context) error {
	if !t.Enabled() {
		return nil
	}
	_, err := t.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, trendingVersionKey)
		pipe.Del(ctx, trendingCacheKey)
		return nil
	})
	return err
}
