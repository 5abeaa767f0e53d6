package controllers

import (
	"context"
	"net/http"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/entities"
	"restaurant-system/internal/services"
	apperrors "restaurant-system/pkg/errors"
	"restaurant-system/pkg/middleware"
	"restaurant-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CustomerIdentity достаёт chat id клиента из подписанных данных клиентского бота.
type CustomerIdentity interface {
	UserID(initData string) (int64, error)
}

type OrderController struct {
	orderService services.OrderServiceInterface
	customers    CustomerIdentity
	logger       *zap.Logger
}

// customers может быть nil, если клиентский бот не настроен: тогда заказ остаётся без chat id.
func NewOrderController(orderService services.OrderServiceInterface, customers CustomerIdentity, logger *zap.Logger) *OrderController {
	return &OrderController{orderService: orderService, customers: customers, logger: logger}
}

// CreateWebOrder - публичный заказ с сайта.
func (c *OrderController) CreateWebOrder(ctx echo.Context) error {
	var payload dto.CreateWebOrderDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	payload.CustomerChatID = 0
	if payload.TelegramInitData != "" && c.customers != nil {
		chatID, err := c.customers.UserID(payload.TelegramInitData)
		if err != nil {
			c.logger.Warn("initData клиента не прошли проверку", zap.Error(err))
			return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("недействительные данные Telegram"), c.logger)
		}
		payload.CustomerChatID = chatID
	}

	order, err := c.orderService.PlaceWebOrder(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewOrderDTO(*order), "Заказ успешно создан", http.StatusCreated)
}

func (c *OrderController) FindOrder(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	order, err := c.orderService.FindOrder(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewOrderDTO(*order), "Заказ найден", http.StatusOK)
}

func (c *OrderController) ChangeStatus(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ChangeStatusDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx := ctx.Request().Context()
	order, err := c.orderService.ChangeStatus(reqCtx, id, payload.StatusID, adminActor(reqCtx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewOrderDTO(*order), "Статус заказа изменен", http.StatusOK)
}

func (c *OrderController) AssignCourier(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.AssignCourierDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx := ctx.Request().Context()
	order, err := c.orderService.AssignCourier(reqCtx, id, payload.CourierID, adminActor(reqCtx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewOrderDTO(*order), "Курьер назначен", http.StatusOK)
}

func (c *OrderController) GetHistory(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	history, err := c.orderService.GetHistory(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewOrderHistoryDTOs(history), "История заказа получена", http.StatusOK)
}

// adminActor - автор изменения из токена администратора.
func adminActor(ctx context.Context) entities.Actor {
	login, ok := middleware.AdminLogin(ctx)
	if !ok {
		return entities.SystemActor("Адміністратор")
	}
	return entities.SystemActor("Адміністратор: " + login)
}
