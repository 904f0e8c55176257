package applicationinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const guardKeyPrefix = "hirely:"

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisSubmitGuard implements application.SubmitGuard with SET NX
type RedisSubmitGuard struct {
	client redis.Cmdable
}

func NewRedisSubmitGuard(client redis.Cmdable) *RedisSubmitGuard {
	return &RedisSubmitGuard{client: client}
}

func (g *RedisSubmitGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (string, error) {
	token := uuid.NewString()

	ok, err := g.client.SetNX(ctx, guardKeyPrefix+key, token, ttl).Result()
	if err != nil {
		return "", fmt.Errorf("acquire %s: %w", key, err)
	}
	if !ok {
		return "", nil
	}
	return token, nil
}

func (g *RedisSubmitGuard) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, g.client, []string{guardKeyPrefix + key}, token).Err(); err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}
