package services

import (
	"context"
	"fmt"
	"strings"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/entities"
	"restaurant-system/internal/events"
	"restaurant-system/internal/repositories"
	"restaurant-system/pkg/config"
	apperrors "restaurant-system/pkg/errors"
	"restaurant-system/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderServiceInterface interface {
	PlaceWebOrder(ctx context.Context, payload dto.CreateWebOrderDTO) (*entities.Order, error)
	PlaceTableOrder(ctx context.Context, token uuid.UUID, payload dto.CreateTableOrderDTO) (*entities.Order, error)
	FindOrder(ctx context.Context, id uint64) (*entities.Order, error)
	GetHistory(ctx context.Context, orderID uint64) ([]entities.OrderStatusHistory, error)
	ChangeStatus(ctx context.Context, orderID, statusID uint64, actor entities.Actor) (*entities.Order, error)
	ChangeStatusByEmployee(ctx context.Context, orderID, statusID uint64, employee entities.Employee) (*entities.Order, error)
	AcknowledgeReady(ctx context.Context, orderID uint64, area entities.PrepArea, employee entities.Employee) (*entities.Order, bool, error)
	AcceptByWaiter(ctx context.Context, orderID uint64, waiter entities.Employee) (*entities.Order, error)
	AssignCourier(ctx context.Context, orderID, courierID uint64, actor entities.Actor) (*entities.Order, error)
}

type OrderService struct {
	txManager    repositories.TxManagerInterface
	orderRepo    repositories.OrderRepositoryInterface
	historyRepo  repositories.OrderHistoryRepositoryInterface
	employeeRepo repositories.EmployeeRepositoryInterface
	productRepo  repositories.ProductRepositoryInterface
	tableRepo    repositories.TableRepositoryInterface
	statuses     StatusServiceInterface
	publisher    EventPublisher
	cfg          config.NotifyConfig
	logger       *zap.Logger
}

func NewOrderService(
	txManager repositories.TxManagerInterface,
	orderRepo repositories.OrderRepositoryInterface,
	historyRepo repositories.OrderHistoryRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	productRepo repositories.ProductRepositoryInterface,
	tableRepo repositories.TableRepositoryInterface,
	statuses StatusServiceInterface,
	publisher EventPublisher,
	cfg config.NotifyConfig,
	logger *zap.Logger,
) OrderServiceInterface {
	return &OrderService{
		txManager:    txManager,
		orderRepo:    orderRepo,
		historyRepo:  historyRepo,
		employeeRepo: employeeRepo,
		productRepo:  productRepo,
		tableRepo:    tableRepo,
		statuses:     statuses,
		publisher:    publisher,
		cfg:          cfg,
		logger:       logger,
	}
}

func (s *OrderService) PlaceWebOrder(ctx context.Context, payload dto.CreateWebOrderDTO) (*entities.Order, error) {
	orderType := entities.OrderType(payload.OrderType)
	if !orderType.Valid() || orderType == entities.OrderTypeInHouse {
		return nil, apperrors.NewInvalidInputError("недопустимый тип заказа: %s", payload.OrderType)
	}
	phone := utils.NormalizePhone(payload.Phone)
	if phone == "" {
		return nil, apperrors.NewInvalidInputError("некорректный номер телефона")
	}
	order := &entities.Order{
		CustomerName:   strings.TrimSpace(payload.CustomerName),
		Phone:          phone,
		OrderType:      orderType,
		DeliveryTime:   strings.TrimSpace(payload.DeliveryTime),
		CustomerChatID: payload.CustomerChatID,
	}
	if orderType == entities.OrderTypeDelivery {
		order.Address = strings.TrimSpace(payload.Address)
	}
	actor := entities.SystemActor(fmt.Sprintf("Клієнт: %s", order.CustomerName))
	return s.place(ctx, order, payload.Items, actor)
}

func (s *OrderService) PlaceTableOrder(ctx context.Context, token uuid.UUID, payload dto.CreateTableOrderDTO) (*entities.Order, error) {
	table, err := s.tableRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	order := &entities.Order{
		CustomerName: fmt.Sprintf("Гість за столиком %s", table.Name),
		OrderType:    entities.OrderTypeInHouse,
		TableID:      &table.ID,
		TableName:    table.Name,
	}
	return s.place(ctx, order, payload.Items, entities.SystemActor(order.CustomerName))
}

// place сохраняет заказ с первой записью истории и только после коммита публикует событие.
func (s *OrderService) place(ctx context.Context, order *entities.Order, items []dto.OrderItemDTO, actor entities.Actor) (*entities.Order, error) {
	products, total, err := s.buildLines(ctx, items)
	if err != nil {
		return nil, err
	}
	order.Products = products
	order.TotalPrice = total

	status, err := s.statuses.RequireByCode(ctx, s.cfg.NewStatusCode)
	if err != nil {
		return nil, err
	}
	order.StatusID = status.ID

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.orderRepo.CreateInTx(ctx, tx, order); err != nil {
			return err
		}
		_, err := s.historyRepo.AppendInTx(ctx, tx, order.ID, status.ID, actor.Description)
		return err
	})
	if err != nil {
		s.logger.Error("Не удалось сохранить заказ", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Создан заказ",
		zap.Uint64("orderID", order.ID),
		zap.String("type", string(order.OrderType)),
		zap.String("total", order.TotalPrice.StringFixed(2)),
	)
	s.publisher.Publish(ctx, events.OrderCreated{Order: *order, Status: *status})
	return order, nil
}

// buildLines собирает текст позиций и сумму по актуальным ценам. Повторы одного товара складываются.
func (s *OrderService) buildLines(ctx context.Context, items []dto.OrderItemDTO) (string, decimal.Decimal, error) {
	if len(items) == 0 {
		return "", decimal.Zero, apperrors.ErrEmptyOrder
	}

	quantities := make(map[uint64]int, len(items))
	var ids []uint64
	for _, item := range items {
		if item.Quantity <= 0 {
			return "", decimal.Zero, apperrors.NewInvalidInputError("количество товара %d должно быть больше нуля", item.ProductID)
		}
		if _, seen := quantities[item.ProductID]; !seen {
			ids = append(ids, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return "", decimal.Zero, err
	}
	byID := make(map[uint64]entities.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]entities.LineItem, 0, len(ids))
	total := decimal.Zero
	for _, id := range ids {
		p, ok := byID[id]
		if !ok || !p.IsActive {
			return "", decimal.Zero, apperrors.NewInvalidInputError("товар %d недоступен", id)
		}
		qty := quantities[id]
		lines = append(lines, entities.LineItem{Name: p.Name, Quantity: qty})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return entities.FormatLineItems(lines), total, nil
}

func (s *OrderService) FindOrder(ctx context.Context, id uint64) (*entities.Order, error) {
	return s.orderRepo.FindOrder(ctx, id)
}

func (s *OrderService) GetHistory(ctx context.Context, orderID uint64) ([]entities.OrderStatusHistory, error) {
	if _, err := s.orderRepo.FindOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return s.historyRepo.FindByOrderID(ctx, orderID)
}

func (s *OrderService) ChangeStatus(ctx context.Context, orderID, statusID uint64, actor entities.Actor) (*entities.Order, error) {
	newStatus, err := s.statuses.FindStatus(ctx, statusID)
	if err != nil {
		return nil, err
	}

	var order *entities.Order
	var oldStatus *entities.OrderStatus
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		locked, err := s.orderRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if locked.StatusID == newStatus.ID {
			return apperrors.ErrStatusUnchanged
		}
		if oldStatus, err = s.statuses.FindStatus(ctx, locked.StatusID); err != nil {
			return err
		}
		if err := s.transitionInTx(ctx, tx, locked, *newStatus, actor); err != nil {
			return err
		}
		order = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Статус заказа изменён",
		zap.Uint64("orderID", order.ID),
		zap.String("from", oldStatus.Code),
		zap.String("to", newStatus.Code),
		zap.String("actor", actor.Description),
	)
	s.publisher.Publish(ctx, events.StatusChanged{Order: *order, OldStatus: oldStatus, NewStatus: *newStatus, Actor: actor})
	return order, nil
}

// ChangeStatusByEmployee - смена статуса из бота: сотрудник на смене и видит целевой статус.
func (s *OrderService) ChangeStatusByEmployee(ctx context.Context, orderID, statusID uint64, employee entities.Employee) (*entities.Order, error) {
	if !employee.IsOnShift {
		return nil, apperrors.ErrNotOnShift
	}
	target, err := s.statuses.FindStatus(ctx, statusID)
	if err != nil {
		return nil, err
	}
	if !canSee(employee.Role, *target) {
		return nil, apperrors.ErrWrongRole
	}
	return s.ChangeStatus(ctx, orderID, statusID, entities.EmployeeActor(employee))
}

// AcknowledgeReady - цех отметил свою часть готовой. Второй bool - статус уже был "готово".
func (s *OrderService) AcknowledgeReady(ctx context.Context, orderID uint64, area entities.PrepArea, employee entities.Employee) (*entities.Order, bool, error) {
	capability, ok := entities.CapabilityForArea(area)
	if !ok {
		return nil, false, apperrors.NewInvalidInputError("неизвестный цех: %s", area)
	}
	if !employee.Role.Has(capability) {
		return nil, false, apperrors.ErrWrongRole
	}
	ready, err := s.statuses.RequireByCode(ctx, s.cfg.ReadyStatusCode)
	if err != nil {
		return nil, false, err
	}
	actor := entities.EmployeeActor(employee)

	var order *entities.Order
	var oldStatus *entities.OrderStatus
	repeated := false
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		locked, err := s.orderRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		order = locked
		if locked.StatusID == ready.ID {
			repeated = true
			return nil
		}
		if oldStatus, err = s.statuses.FindStatus(ctx, locked.StatusID); err != nil {
			return err
		}
		if oldStatus.IsTerminal() {
			return fmt.Errorf("%w: заказ уже закрыт", apperrors.ErrConflict)
		}
		return s.transitionInTx(ctx, tx, locked, *ready, actor)
	})
	if err != nil {
		return nil, false, err
	}

	if repeated {
		s.logger.Info("Повторная отметка готовности", zap.Uint64("orderID", order.ID), zap.String("area", string(area)))
		s.publisher.Publish(ctx, events.ReadyRepeated{Order: *order, Area: area})
		return order, true, nil
	}
	s.publisher.Publish(ctx, events.StatusChanged{Order: *order, OldStatus: oldStatus, NewStatus: *ready, Actor: actor})
	return order, false, nil
}

// AcceptByWaiter закрепляет заказ столика за официантом. Новый заказ при этом уходит в работу.
func (s *OrderService) AcceptByWaiter(ctx context.Context, orderID uint64, waiter entities.Employee) (*entities.Order, error) {
	if !waiter.Role.Has(entities.CapabilityServeTables) {
		return nil, apperrors.ErrWrongRole
	}
	if !waiter.IsOnShift {
		return nil, apperrors.ErrNotOnShift
	}
	processing, err := s.statuses.RequireByCode(ctx, s.cfg.ProcessingStatusCode)
	if err != nil {
		return nil, err
	}
	actor := entities.EmployeeActor(waiter)

	var order *entities.Order
	var oldStatus *entities.OrderStatus
	moved := false
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		locked, err := s.orderRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if locked.OrderType != entities.OrderTypeInHouse {
			return apperrors.NewInvalidInputError("официант принимает только заказы столиков")
		}
		if locked.AcceptedByWaiterID != nil {
			return apperrors.ErrAlreadyAccepted
		}
		if err := s.orderRepo.SetAcceptedWaiterInTx(ctx, tx, locked.ID, waiter.ID); err != nil {
			return err
		}
		if err := s.employeeRepo.SetCurrentOrderInTx(ctx, tx, waiter.ID, locked.ID); err != nil {
			return err
		}
		locked.AcceptedByWaiterID = &waiter.ID

		if oldStatus, err = s.statuses.FindStatus(ctx, locked.StatusID); err != nil {
			return err
		}
		if oldStatus.Code == s.cfg.NewStatusCode && locked.StatusID != processing.ID {
			if err := s.transitionInTx(ctx, tx, locked, *processing, actor); err != nil {
				return err
			}
			moved = true
		}
		order = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.WaiterAccepted{Order: *order, Waiter: waiter})
	if moved {
		s.publisher.Publish(ctx, events.StatusChanged{Order: *order, OldStatus: oldStatus, NewStatus: *processing, Actor: actor})
	}
	return order, nil
}

// AssignCourier - только для доставки и только сотруднику, которого можно назначать. История не пишется.
func (s *OrderService) AssignCourier(ctx context.Context, orderID, courierID uint64, actor entities.Actor) (*entities.Order, error) {
	courier, err := s.employeeRepo.FindEmployee(ctx, courierID)
	if err != nil {
		return nil, err
	}
	if !courier.Role.Has(entities.CapabilityBeAssigned) {
		return nil, apperrors.ErrWrongRole
	}
	if !courier.IsOnShift {
		return nil, apperrors.ErrNotOnShift
	}

	var order *entities.Order
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		locked, err := s.orderRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !locked.IsDelivery() {
			return apperrors.NewInvalidInputError("курьера можно назначить только на доставку")
		}
		if err := s.orderRepo.SetCourierInTx(ctx, tx, locked.ID, courier.ID); err != nil {
			return err
		}
		if err := s.employeeRepo.SetCurrentOrderInTx(ctx, tx, courier.ID, locked.ID); err != nil {
			return err
		}
		locked.CourierID = &courier.ID
		order = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	status, err := s.statuses.FindStatus(ctx, order.StatusID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Назначен курьер",
		zap.Uint64("orderID", order.ID),
		zap.Uint64("courierID", courier.ID),
		zap.String("actor", actor.Description),
	)
	s.publisher.Publish(ctx, events.CourierAssigned{Order: *order, Status: *status, Courier: *courier})
	return order, nil
}

// transitionInTx - смена статуса и запись истории в одной транзакции.
// Завершённый заказ фиксирует курьера и снимается с сотрудников.
func (s *OrderService) transitionInTx(ctx context.Context, tx pgx.Tx, order *entities.Order, status entities.OrderStatus, actor entities.Actor) error {
	var completedBy *uint64
	if status.IsCompletedStatus && order.CourierID != nil {
		completedBy = order.CourierID
	}
	if err := s.orderRepo.UpdateStatusInTx(ctx, tx, order.ID, status.ID, completedBy); err != nil {
		return err
	}
	if status.IsTerminal() {
		if err := s.employeeRepo.ClearCurrentOrderInTx(ctx, tx, order.ID); err != nil {
			return err
		}
	}
	if _, err := s.historyRepo.AppendInTx(ctx, tx, order.ID, status.ID, actor.Description); err != nil {
		return err
	}
	order.StatusID = status.ID
	if completedBy != nil {
		order.CompletedByCourierID = completedBy
	}
	return nil
}

// canSee - хотя бы одна возможность роли видит статус.
func canSee(role entities.Role, status entities.OrderStatus) bool {
	for _, c := range role.Capabilities() {
		if status.VisibleTo(c) {
			return true
		}
	}
	return false
}
