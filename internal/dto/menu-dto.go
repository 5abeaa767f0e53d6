package dto

import (
	"restaurant-system/internal/entities"
)

type SetAreaDTO struct {
	Area string `json:"preparation_area" validate:"required,prep_area"`
}

type CreateTableDTO struct {
	Name string `json:"name" validate:"required,max=50"`
}

type SetWaitersDTO struct {
	EmployeeIDs []uint64 `json:"employee_ids" validate:"dive,required"`
}

type RequestBillDTO struct {
	Method string `json:"method" validate:"required,bill_method"`
}

type MenuCategoryDTO struct {
	Category string             `json:"category"`
	Products []entities.Product `json:"products"`
}

// MenuDTO - ответ меню столика. Токен наружу не отдаём.
type MenuDTO struct {
	TableID    uint64            `json:"table_id"`
	TableName  string            `json:"table_name"`
	Categories []MenuCategoryDTO `json:"categories"`
}

// NewMenuDTO группирует товары по категориям, сохраняя порядок первого появления.
func NewMenuDTO(table entities.Table, products []entities.Product) MenuDTO {
	menu := MenuDTO{TableID: table.ID, TableName: table.Name, Categories: []MenuCategoryDTO{}}
	index := map[string]int{}
	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = len(menu.Categories)
			index[p.Category] = i
			menu.Categories = append(menu.Categories, MenuCategoryDTO{Category: p.Category})
		}
		menu.Categories[i].Products = append(menu.Categories[i].Products, p)
	}
	return menu
}
