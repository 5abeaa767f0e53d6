package controllers

import (
	"net/http"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/services"
	"restaurant-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EmployeeController struct {
	employeeService services.EmployeeServiceInterface
	logger          *zap.Logger
}

func NewEmployeeController(employeeService services.EmployeeServiceInterface, logger *zap.Logger) *EmployeeController {
	return &EmployeeController{employeeService: employeeService, logger: logger}
}

func (c *EmployeeController) GetEmployees(ctx echo.Context) error {
	res, err := c.employeeService.List(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewEmployeeDTOs(res), "Список сотрудников получен", http.StatusOK)
}

func (c *EmployeeController) CreateEmployee(ctx echo.Context) error {
	var payload dto.CreateEmployeeDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.employeeService.Create(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewEmployeeDTO(*created), "Сотрудник создан", http.StatusCreated)
}

func (c *EmployeeController) SetShift(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.SetShiftDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	updated, err := c.employeeService.SetShift(ctx.Request().Context(), id, payload.OnShift)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewEmployeeDTO(*updated), "Смена обновлена", http.StatusOK)
}

func (c *EmployeeController) GetRoles(ctx echo.Context) error {
	roles, err := c.employeeService.ListRoles(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewRoleDTOs(roles), "Список ролей получен", http.StatusOK)
}
