package controllers

import (
	"net/http"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/services"
	"restaurant-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type TableController struct {
	tableService services.TableServiceInterface
	logger       *zap.Logger
}

func NewTableController(tableService services.TableServiceInterface, logger *zap.Logger) *TableController {
	return &TableController{tableService: tableService, logger: logger}
}

func (c *TableController) GetTables(ctx echo.Context) error {
	res, err := c.tableService.List(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список столиков получен", http.StatusOK)
}

func (c *TableController) CreateTable(ctx echo.Context) error {
	var payload dto.CreateTableDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.tableService.Create(ctx.Request().Context(), payload.Name)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, created, "Столик создан", http.StatusCreated)
}

func (c *TableController) SetWaiters(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.SetWaitersDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	updated, err := c.tableService.SetWaiters(ctx.Request().Context(), id, payload.EmployeeIDs)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, updated, "Официанты столика обновлены", http.StatusOK)
}
