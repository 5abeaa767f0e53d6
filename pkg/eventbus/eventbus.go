package eventbus

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const listenerTimeout = 1 * time.Minute

// Event представляет собой любое событие в системе.
type Event interface {
	Name() string
}

// Keyed - событие с ключом очерёдности. События с одним ключом
// обрабатываются строго в порядке публикации, с разными - параллельно.
type Keyed interface {
	Event
	OrderingKey() string
}

// Listener - это обработчик (слушатель) событий.
type Listener func(ctx context.Context, event Event) error

// Bus - это наша шина событий.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	inflight  sync.WaitGroup
	logger    *zap.Logger

	queuesMu sync.Mutex
	queues   map[string][]func()
}

// New создает новую шину событий.
func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		queues:    make(map[string][]func()),
		logger:    logger,
	}
}

// Subscribe подписывает слушателя на определенное событие.
func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish публикует событие. Обработчики отвязаны от контекста запроса: запрос
// может завершиться раньше рассылки. Обычное событие получает горутину на каждого
// подписчика, Keyed-событие встаёт в очередь своего ключа.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	listeners := append([]Listener(nil), b.listeners[event.Name()]...)
	b.mu.RUnlock()

	// event_id связывает в логах публикацию со всеми обработчиками.
	eventID := uuid.NewString()
	b.logger.Debug("Публикация события",
		zap.String("event", event.Name()),
		zap.String("event_id", eventID),
		zap.Int("listeners", len(listeners)),
	)

	run := func(l Listener) {
		ctxWithTimeout, cancel := context.WithTimeout(context.WithoutCancel(ctx), listenerTimeout)
		defer cancel()

		if err := l(ctxWithTimeout, event); err != nil {
			b.logger.Error("Ошибка в обработчике события",
				zap.String("event", event.Name()),
				zap.String("event_id", eventID),
				zap.Error(err),
			)
		}
	}

	if keyed, ok := event.(Keyed); ok {
		b.enqueue(keyed.OrderingKey(), func() {
			for _, l := range listeners {
				run(l)
			}
		})
		return
	}

	for _, listener := range listeners {
		b.inflight.Add(1)
		go func(l Listener) {
			defer b.inflight.Done()
			run(l)
		}(listener)
	}
}

// enqueue ставит задачу в очередь ключа. Пока очередь не пуста, её разбирает одна горутина.
func (b *Bus) enqueue(key string, job func()) {
	b.inflight.Add(1)

	b.queuesMu.Lock()
	pending, running := b.queues[key]
	if running {
		b.queues[key] = append(pending, job)
		b.queuesMu.Unlock()
		return
	}
	b.queues[key] = nil
	b.queuesMu.Unlock()

	go b.drain(key, job)
}

func (b *Bus) drain(key string, job func()) {
	for job != nil {
		job()
		b.inflight.Done()

		b.queuesMu.Lock()
		if pending := b.queues[key]; len(pending) > 0 {
			job = pending[0]
			b.queues[key] = pending[1:]
		} else {
			delete(b.queues, key)
			job = nil
		}
		b.queuesMu.Unlock()
	}
}

// Wait ждёт завершения всех запущенных обработчиков. Вызывается при остановке сервера.
func (b *Bus) Wait() {
	b.inflight.Wait()
}
