package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RequestDeduplicator гасит повторные нажатия и команды из одного чата.
type RequestDeduplicator struct {
	locks sync.Map
}

func NewRequestDeduplicator() *RequestDeduplicator {
	return &RequestDeduplicator{}
}

func (d *RequestDeduplicator) TryAcquire(chatID int64, keySuffix string, ttl time.Duration) bool {
	key := fmt.Sprintf("%d_%s", chatID, keySuffix)
	now := time.Now()

	if val, exists := d.locks.Load(key); exists {
		if now.Before(val.(time.Time)) {
			return false
		}
	}

	d.locks.Store(key, now.Add(ttl))
	return true
}

func (d *RequestDeduplicator) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			d.locks.Range(func(key, value interface{}) bool {
				if now.After(value.(time.Time)) {
					d.locks.Delete(key)
				}
				return true
			})
		}
	}
}
