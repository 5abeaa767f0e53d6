package repositories

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss - ключа нет в кеше.
var ErrCacheMiss = errors.New("ключ не найден в кеше")

// CacheRepositoryInterface - кеш каталога статусов и состояние диалогов бота.
type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	// SetNX - запись только если ключа ещё нет. false - ключ уже был.
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
}
