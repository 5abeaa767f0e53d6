package controllers

import (
	"net/http"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/services"
	"restaurant-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type StatusController struct {
	statusService services.StatusServiceInterface
	logger        *zap.Logger
}

func NewStatusController(statusService services.StatusServiceInterface, logger *zap.Logger) *StatusController {
	return &StatusController{statusService: statusService, logger: logger}
}

func (c *StatusController) GetStatuses(ctx echo.Context) error {
	res, err := c.statusService.ListStatuses(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список статусов успешно получен", http.StatusOK)
}

func (c *StatusController) FindStatus(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.statusService.FindStatus(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статус успешно найден", http.StatusOK)
}

func (c *StatusController) CreateStatus(ctx echo.Context) error {
	var payload dto.CreateStatusDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CreateStatus: неверные данные", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.statusService.CreateStatus(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.logger.Info("CreateStatus: Статус успешно создан", zap.Uint64("id", created.ID), zap.String("code", created.Code))
	return utils.SuccessResponse(ctx, created, "Статус успешно создан", http.StatusCreated)
}

func (c *StatusController) UpdateStatus(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateStatusDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	updated, err := c.statusService.UpdateStatus(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, updated, "Статус успешно обновлен", http.StatusOK)
}

func (c *StatusController) DeleteStatus(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.statusService.DeleteStatus(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Статус успешно удален", http.StatusOK)
}
