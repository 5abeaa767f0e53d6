package controllers

import (
	"net/http"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/entities"
	"restaurant-system/internal/services"
	"restaurant-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ProductController struct {
	productService services.ProductServiceInterface
	logger         *zap.Logger
}

func NewProductController(productService services.ProductServiceInterface, logger *zap.Logger) *ProductController {
	return &ProductController{productService: productService, logger: logger}
}

func (c *ProductController) GetProducts(ctx echo.Context) error {
	res, err := c.productService.List(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список товаров получен", http.StatusOK)
}

// SetArea - кухня или бар, куда уходит тикет по товару.
func (c *ProductController) SetArea(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.SetAreaDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.productService.SetArea(ctx.Request().Context(), id, entities.PrepArea(payload.Area)); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]interface{}{"id": id, "preparation_area": payload.Area}, "Цех товара обновлен", http.StatusOK)
}
