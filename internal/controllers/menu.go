package controllers

import (
	"net/http"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/services"
	apperrors "restaurant-system/pkg/errors"
	"restaurant-system/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// MenuController - публичные ручки столика по QR-токену.
type MenuController struct {
	tableService services.TableServiceInterface
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewMenuController(tableService services.TableServiceInterface, orderService services.OrderServiceInterface, logger *zap.Logger) *MenuController {
	return &MenuController{tableService: tableService, orderService: orderService, logger: logger}
}

// Кривой токен неотличим от несуществующего столика.
func parseTableToken(ctx echo.Context) (uuid.UUID, error) {
	token, err := uuid.Parse(ctx.Param("token"))
	if err != nil {
		return uuid.Nil, apperrors.NewHttpError(http.StatusNotFound, "Столик не найден", apperrors.ErrNotFound, nil)
	}
	return token, nil
}

func (c *MenuController) GetMenu(ctx echo.Context) error {
	token, err := parseTableToken(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	table, products, err := c.tableService.Menu(ctx.Request().Context(), token)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewMenuDTO(*table, products), "Меню получено", http.StatusOK)
}

func (c *MenuController) CreateTableOrder(ctx echo.Context) error {
	token, err := parseTableToken(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateTableOrderDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	order, err := c.orderService.PlaceTableOrder(ctx.Request().Context(), token, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewOrderDTO(*order), "Заказ принят", http.StatusCreated)
}

func (c *MenuController) CallWaiter(ctx echo.Context) error {
	token, err := parseTableToken(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.tableService.CallWaiter(ctx.Request().Context(), token); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Официант вызван", http.StatusOK)
}

func (c *MenuController) RequestBill(ctx echo.Context) error {
	token, err := parseTableToken(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.RequestBillDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.tableService.RequestBill(ctx.Request().Context(), token, payload.Method); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Счёт запрошен", http.StatusOK)
}
