package services

import (
	"context"

	"restaurant-system/pkg/eventbus"
)

// EventPublisher - шина событий; в тестах подменяется записывающей заглушкой.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}
