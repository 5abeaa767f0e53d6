package entities

import (
	"fmt"
	"strconv"
	"strings"
)

const lineSeparator = ", "

// LineItem - одна позиция из текстового списка "Назва x 2, Інше x 1".
type LineItem struct {
	Name     string
	Quantity int
}

func (l LineItem) String() string {
	return fmt.Sprintf("%s x %d", l.Name, l.Quantity)
}

func ParseLineItems(products string) []LineItem {
	var items []LineItem
	for _, part := range strings.Split(products, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		item := LineItem{Name: part, Quantity: 1}
		if idx := strings.LastIndex(part, " x "); idx > 0 {
			if qty, err := strconv.Atoi(strings.TrimSpace(part[idx+3:])); err == nil && qty > 0 {
				item.Name = strings.TrimSpace(part[:idx])
				item.Quantity = qty
			}
		}
		items = append(items, item)
	}
	return items
}

func FormatLineItems(items []LineItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.String())
	}
	return strings.Join(parts, lineSeparator)
}
