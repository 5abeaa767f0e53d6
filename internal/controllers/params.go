package controllers

import (
	"net/http"

	apperrors "restaurant-system/pkg/errors"

	"github.com/labstack/echo/v4"
)

// bindAndValidate разбирает тело и прогоняет валидатор echo.
func bindAndValidate(ctx echo.Context, target interface{}) error {
	if err := ctx.Bind(target); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil)
	}
	return ctx.Validate(target)
}
