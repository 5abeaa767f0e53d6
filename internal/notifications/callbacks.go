package notifications

import (
	"fmt"
	"strconv"
	"strings"

	"restaurant-system/internal/entities"
)

// Действия inline-кнопок. Формат callback_data: "<action>:<arg>:<arg>".
const (
	ActionSetStatus = "status"
	ActionReady     = "ready"
	ActionAccept    = "accept"
)

type Callback struct {
	Action   string
	OrderID  uint64
	StatusID uint64
	Area     entities.PrepArea
}

func StatusCallback(orderID, statusID uint64) string {
	return fmt.Sprintf("%s:%d:%d", ActionSetStatus, orderID, statusID)
}

func ReadyCallback(area entities.PrepArea, orderID uint64) string {
	return fmt.Sprintf("%s:%s:%d", ActionReady, area, orderID)
}

func AcceptCallback(orderID uint64) string {
	return fmt.Sprintf("%s:%d", ActionAccept, orderID)
}

var callbackParsers = map[string]func(args []string) (Callback, error){
	ActionSetStatus: func(args []string) (Callback, error) {
		if len(args) != 2 {
			return Callback{}, fmt.Errorf("ожидалось 2 аргумента, получено %d", len(args))
		}
		orderID, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return Callback{}, err
		}
		statusID, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return Callback{}, err
		}
		return Callback{Action: ActionSetStatus, OrderID: orderID, StatusID: statusID}, nil
	},
	ActionReady: func(args []string) (Callback, error) {
		if len(args) != 2 {
			return Callback{}, fmt.Errorf("ожидалось 2 аргумента, получено %d", len(args))
		}
		area := entities.PrepArea(args[0])
		if !area.Valid() {
			return Callback{}, fmt.Errorf("неизвестный цех %q", args[0])
		}
		orderID, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return Callback{}, err
		}
		return Callback{Action: ActionReady, OrderID: orderID, Area: area}, nil
	},
	ActionAccept: func(args []string) (Callback, error) {
		if len(args) != 1 {
			return Callback{}, fmt.Errorf("ожидался 1 аргумент, получено %d", len(args))
		}
		orderID, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return Callback{}, err
		}
		return Callback{Action: ActionAccept, OrderID: orderID}, nil
	},
}

func ParseCallback(data string) (Callback, error) {
	parts := strings.Split(data, ":")
	parse, ok := callbackParsers[parts[0]]
	if !ok {
		return Callback{}, fmt.Errorf("неизвестное действие %q", parts[0])
	}
	cb, err := parse(parts[1:])
	if err != nil {
		return Callback{}, fmt.Errorf("callback %q: %w", data, err)
	}
	return cb, nil
}
