// Package cache est un adaptateur fin au-dessus de Redis. Une panne du
// cache n'est jamais une erreur fonctionnelle : les appelants replient
// sur la source de vérité.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Redis struct {
	Client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{Client: client}
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	return r.Client.Get(ctx, key).Result()
}

func (r *Redis) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return r.Client.Set(ctx, key, payload, ttl).Err()
}
