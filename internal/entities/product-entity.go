package entities

import "github.com/shopspring/decimal"

// PrepArea - цех приготовления позиции.
type PrepArea string

const (
	AreaKitchen PrepArea = "kitchen"
	AreaBar     PrepArea = "bar"
)

// PrepAreas - порядок, в котором цеха получают тикеты.
var PrepAreas = []PrepArea{AreaKitchen, AreaBar}

var prepAreaTitles = map[PrepArea]string{
	AreaKitchen: "🍳 Кухня",
	AreaBar:     "🍹 Бар",
}

func (a PrepArea) Valid() bool {
	_, ok := prepAreaTitles[a]
	return ok
}

func (a PrepArea) Title() string {
	if title, ok := prepAreaTitles[a]; ok {
		return title
	}
	return string(a)
}

type Product struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	IsActive    bool            `json:"is_active"`
	Area        PrepArea        `json:"preparation_area"`
}
