package services

import (
	"context"
	"strings"

	"restaurant-system/internal/entities"
	"restaurant-system/internal/notifications"
	"restaurant-system/internal/repositories"
	apperrors "restaurant-system/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TableCallNotifier - синхронная рассылка вызова со столика.
type TableCallNotifier interface {
	NotifyTableCall(ctx context.Context, table entities.Table, kind notifications.CallKind, billMethod string) (notifications.DeliveryReport, error)
}

type TableServiceInterface interface {
	Create(ctx context.Context, name string) (*entities.Table, error)
	List(ctx context.Context) ([]entities.Table, error)
	SetWaiters(ctx context.Context, tableID uint64, employeeIDs []uint64) (*entities.Table, error)
	Menu(ctx context.Context, token uuid.UUID) (*entities.Table, []entities.Product, error)
	CallWaiter(ctx context.Context, token uuid.UUID) error
	RequestBill(ctx context.Context, token uuid.UUID, method string) error
}

type TableService struct {
	tableRepo    repositories.TableRepositoryInterface
	employeeRepo repositories.EmployeeRepositoryInterface
	productRepo  repositories.ProductRepositoryInterface
	notifier     TableCallNotifier
	logger       *zap.Logger
}

func NewTableService(
	tableRepo repositories.TableRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	productRepo repositories.ProductRepositoryInterface,
	notifier TableCallNotifier,
	logger *zap.Logger,
) TableServiceInterface {
	return &TableService{
		tableRepo:    tableRepo,
		employeeRepo: employeeRepo,
		productRepo:  productRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

func (s *TableService) Create(ctx context.Context, name string) (*entities.Table, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewInvalidInputError("название столика не может быть пустым")
	}
	return s.tableRepo.Create(ctx, name)
}

func (s *TableService) List(ctx context.Context) ([]entities.Table, error) {
	return s.tableRepo.List(ctx)
}

// SetWaiters - закрепить за столиком можно только тех, чья роль обслуживает столики.
func (s *TableService) SetWaiters(ctx context.Context, tableID uint64, employeeIDs []uint64) (*entities.Table, error) {
	for _, id := range employeeIDs {
		employee, err := s.employeeRepo.FindEmployee(ctx, id)
		if err != nil {
			return nil, err
		}
		if !employee.Role.Has(entities.CapabilityServeTables) {
			return nil, apperrors.ErrWrongRole
		}
	}
	if err := s.tableRepo.SetWaiters(ctx, tableID, employeeIDs); err != nil {
		return nil, err
	}
	return s.tableRepo.FindByID(ctx, tableID)
}

func (s *TableService) Menu(ctx context.Context, token uuid.UUID) (*entities.Table, []entities.Product, error) {
	table, err := s.tableRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	products, err := s.productRepo.List(ctx, true)
	if err != nil {
		return nil, nil, err
	}
	return table, products, nil
}

func (s *TableService) CallWaiter(ctx context.Context, token uuid.UUID) error {
	return s.call(ctx, token, notifications.CallWaiter, "")
}

func (s *TableService) RequestBill(ctx context.Context, token uuid.UUID, method string) error {
	return s.call(ctx, token, notifications.RequestBill, method)
}

func (s *TableService) call(ctx context.Context, token uuid.UUID, kind notifications.CallKind, method string) error {
	table, err := s.tableRepo.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	report, err := s.notifier.NotifyTableCall(ctx, *table, kind, method)
	if err != nil {
		s.logger.Warn("Вызов со столика некому доставить", zap.Uint64("tableID", table.ID), zap.Error(err))
		return err
	}
	if report.Delivered == 0 {
		s.logger.Warn("Вызов со столика не доставлен", zap.Uint64("tableID", table.ID), zap.Int("failed", report.Failed))
		return apperrors.ErrNoRecipients
	}
	return nil
}
