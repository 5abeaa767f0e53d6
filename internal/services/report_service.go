package services

import (
	"context"
	"time"

	"restaurant-system/internal/entities"
	"restaurant-system/internal/repositories"
	apperrors "restaurant-system/pkg/errors"

	"go.uber.org/zap"
)

const reportDateLayout = "2006-01-02"

// maxReportDays - больше года за раз не выгружаем.
const maxReportDays = 366

type ReportServiceInterface interface {
	OrdersReport(ctx context.Context, from, to string) ([]entities.OrderReportRow, error)
}

type reportService struct {
	orderRepo repositories.OrderRepositoryInterface
	logger    *zap.Logger
}

func NewReportService(orderRepo repositories.OrderRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &reportService{orderRepo: orderRepo, logger: logger}
}

// OrdersReport - заказы за период [from, to] включительно, даты в формате YYYY-MM-DD.
func (s *reportService) OrdersReport(ctx context.Context, from, to string) ([]entities.OrderReportRow, error) {
	start, err := time.ParseInLocation(reportDateLayout, from, time.Local)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("неверная дата from: %s", from)
	}
	end, err := time.ParseInLocation(reportDateLayout, to, time.Local)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("неверная дата to: %s", to)
	}
	if end.Before(start) {
		return nil, apperrors.NewInvalidInputError("дата to раньше from")
	}
	if end.Sub(start) > maxReportDays*24*time.Hour {
		return nil, apperrors.NewInvalidInputError("период отчёта больше %d дней", maxReportDays)
	}

	rows, err := s.orderRepo.ListForReport(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("Не удалось получить данные отчёта", zap.Error(err))
		return nil, err
	}
	return rows, nil
}
