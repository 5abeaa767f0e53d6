package controllers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/entities"
	"restaurant-system/internal/services"
	"restaurant-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetOrdersReport выгружает заказы за период в xlsx.
func (c *ReportController) GetOrdersReport(ctx echo.Context) error {
	var query dto.OrdersReportQuery
	if err := bindAndValidate(ctx, &query); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.logger.Debug("Запрос на отчет по заказам", zap.String("from", query.From), zap.String("to", query.To))

	rows, err := c.reportService.OrdersReport(ctx.Request().Context(), query.From, query.To)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileName := fmt.Sprintf("orders_%s_%s.xlsx", query.From, query.To)
	return c.respondWithXLSX(ctx, rows, fileName)
}

var reportHeaders = []interface{}{
	"№", "Дата", "Тип", "Клієнт", "Телефон", "Адреса", "Столик",
	"Позиції", "Сума", "Статус", "Кур'єр", "Офіціант", "Змін статусу",
}

func rowToSlice(r entities.OrderReportRow) []interface{} {
	o := r.Order
	total, _ := o.TotalPrice.Float64()
	return []interface{}{
		o.ID,
		o.CreatedAt.Format("2006-01-02 15:04"),
		o.OrderType.Title(),
		o.CustomerName,
		o.Phone,
		o.Address,
		o.TableName,
		o.Products,
		total,
		r.StatusName,
		r.CourierName,
		r.WaiterName,
		r.HistoryCount,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []entities.OrderReportRow, fileName string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Замовлення"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := f.SetSheetRow(sheet, "A1", &reportHeaders); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "M1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := rowToSlice(item)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
	}
	f.SetColWidth(sheet, "B", "B", 18)
	f.SetColWidth(sheet, "D", "F", 25)
	f.SetColWidth(sheet, "H", "H", 50)
	f.SetColWidth(sheet, "J", "L", 20)

	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
