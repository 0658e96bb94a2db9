// Package lock распределённая блокировка на Redis: один тик жизненного цикла
// выполняет только одна реплика сервиса.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotAcquired блокировка занята другим владельцем
	ErrNotAcquired = errors.New("lock: not acquired")

	// ErrRedis ошибка обращения к Redis
	ErrRedis = errors.New("lock: redis error")
)

// releaseScript удаляет ключ, только если он принадлежит владельцу
var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// Client часть *redis.Client, нужная блокировщику
type Client interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// RedisLocker выдаёт блокировки через SET NX PX
type RedisLocker struct {
	client Client
	prefix string
}

// NewRedisLocker создает блокировщик, ключи получают префикс prefix
func NewRedisLocker(client Client, prefix string) *RedisLocker {
	return &RedisLocker{client: client, prefix: prefix}
}

// Acquire пытается взять блокировку name на ttl
// Возвращает функцию освобождения или ErrNotAcquired
func (l *RedisLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (func(context.Context) error, error) {
	key := l.prefix + name
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: acquire %s: %v", ErrRedis, key, err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("%w: release %s: %v", ErrRedis, key, err)
		}
		return nil
	}
	return release, nil
}

// NoopLocker всегда выдаёт блокировку, используется при одной реплике
type NoopLocker struct{}

// Acquire всегда успешен
func (NoopLocker) Acquire(context.Context, string, time.Duration) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
