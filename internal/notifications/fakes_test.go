package notifications

import (
	"context"
	"errors"
	"sync"

	"restaurant-system/internal/entities"
	apperrors "restaurant-system/pkg/errors"
)

type fakeRoster struct {
	employees    []entities.Employee
	tableWaiters map[uint64][]uint64
	onShiftErr   error
}

func (r *fakeRoster) OnShift(ctx context.Context, c entities.Capability) ([]entities.Employee, error) {
	if r.onShiftErr != nil {
		return nil, r.onShiftErr
	}
	var result []entities.Employee
	for _, e := range r.employees {
		if e.IsOnShift && e.Role.Has(c) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeRoster) FindEmployee(ctx context.Context, id uint64) (*entities.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeRoster) TableWaiters(ctx context.Context, tableID uint64) ([]entities.Employee, error) {
	var result []entities.Employee
	for _, id := range r.tableWaiters[tableID] {
		if e, err := r.FindEmployee(ctx, id); err == nil {
			result = append(result, *e)
		}
	}
	return result, nil
}

type fakeAreas map[string]entities.PrepArea

func (a fakeAreas) AreasByProductNames(ctx context.Context, names []string) (map[string]entities.PrepArea, error) {
	result := make(map[string]entities.PrepArea)
	for _, n := range names {
		if area, ok := a[n]; ok {
			result[n] = area
		}
	}
	return result, nil
}

type fakeCatalog []entities.OrderStatus

func (c fakeCatalog) ListStatuses(ctx context.Context) ([]entities.OrderStatus, error) {
	return c, nil
}

type recordingSender struct {
	mu     sync.Mutex
	sent   []Message
	failOn map[int64]bool
}

func (s *recordingSender) Send(ctx context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn[msg.ChatID] {
		return errors.New("bot was blocked by the user")
	}
	s.sent = append(s.sent, msg)
	return nil
}

var (
	roleOperator  = entities.Role{ID: 2, Name: "Оператор", CanManageOrders: true}
	roleCourier   = entities.Role{ID: 3, Name: "Кур'єр", CanBeAssigned: true}
	roleWaiter    = entities.Role{ID: 4, Name: "Офіціант", CanServeTables: true}
	roleChef      = entities.Role{ID: 5, Name: "Повар", CanReceiveKitchenOrders: true}
	roleBartender = entities.Role{ID: 6, Name: "Бармен", CanReceiveBarOrders: true}
)

const adminChat int64 = -1000

func employee(id uint64, role entities.Role, onShift bool, chat int64) entities.Employee {
	return entities.Employee{ID: id, FullName: role.Name, Role: role, RoleID: role.ID, IsOnShift: onShift, TelegramUserID: chat}
}

func uintPtr(v uint64) *uint64 { return &v }

var (
	statusNew = entities.OrderStatus{ID: 1, Name: "Новий", Code: "NEW", VisibleToOperator: true, RequiresKitchenNotify: true}
	statusProcessing = entities.OrderStatus{ID: 2, Name: "В обробці", Code: "PROCESSING",
		VisibleToOperator: true, VisibleToCourier: true, VisibleToWaiter: true}
	statusReady = entities.OrderStatus{ID: 3, Name: "Готовий до видачі", Code: "READY",
		VisibleToOperator: true, VisibleToCourier: true, VisibleToWaiter: true, VisibleToChef: true, NotifyCustomer: true}
	statusDelivered = entities.OrderStatus{ID: 4, Name: "Доставлений", Code: "DELIVERED",
		VisibleToOperator: true, VisibleToCourier: true, IsCompletedStatus: true, NotifyCustomer: true}
)

func messagesOfKind(plan []Message, kind Kind) []Message {
	var result []Message
	for _, m := range plan {
		if m.Kind == kind {
			result = append(result, m)
		}
	}
	return result
}

func chatIDs(plan []Message) []int64 {
	ids := make([]int64, 0, len(plan))
	for _, m := range plan {
		ids = append(ids, m.ChatID)
	}
	return ids
}
