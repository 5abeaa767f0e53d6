package customvalidator

import (
	"restaurant-system/internal/entities"
	"restaurant-system/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует правила для DTO заказов, товаров и столиков.
func RegisterCustomValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"order_type":  isOrderType,
		"prep_area":   isPrepArea,
		"bill_method": isBillMethod,
		"phone":       isPhone,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isOrderType(fl validator.FieldLevel) bool {
	return entities.OrderType(fl.Field().String()).Valid()
}

func isPrepArea(fl validator.FieldLevel) bool {
	return entities.PrepArea(fl.Field().String()).Valid()
}

func isBillMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "cash", "card":
		return true
	}
	return false
}

// isPhone - после нормализации остаются 10 цифр.
func isPhone(fl validator.FieldLevel) bool {
	return utils.NormalizePhone(fl.Field().String()) != ""
}
