package cache

import (
	"github.com/redis/go-redis/v9"

	"github.com/skillswap/skillswap-api/internal/config"
)

func NewClient(conf *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
}
