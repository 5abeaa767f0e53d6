package websocket

import (
	"errors"
	"time"
)

var ErrHubBusy = errors.New("очередь рассылки websocket переполнена")

// Envelope - "конверт" сообщения: тип подсказывает фронтенду, что внутри.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
