package client

import (
	"Mingle/config"
	"Mingle/pkg/log"
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient 未配置地址时返回 nil，缓存层自动降级
func NewRedisClient(conf *config.Config) (*redis.Client, func(), error) {
	if !conf.Redis.Enabled() {
		log.L.Info("redis disabled")
		return nil, func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.Redis.Address, conf.Redis.Port),
		Password: conf.Redis.Password,
		Username: conf.Redis.Username,
		DB:       conf.Redis.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.L.Error("connect redis error", zap.Error(err))
		_ = client.Close()
		return nil, nil, err
	}
	log.L.Info("redis client success")
	return client, func() { _ = client.Close() }, nil
}
