package services

import (
	"context"
	"sync"
	"time"

	"restaurant-system/internal/entities"
	"restaurant-system/internal/notifications"
	"restaurant-system/internal/repositories"
	apperrors "restaurant-system/pkg/errors"
	"restaurant-system/pkg/eventbus"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type fakeTx struct{ calls int }

func (f *fakeTx) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	f.calls++
	return fn(nil)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) names() []string {
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.Name())
	}
	return names
}

// memoryOrders - заказы в памяти; достаточно для логики сервиса.
type memoryOrders struct {
	orders map[uint64]*entities.Order
	nextID uint64
}

func newMemoryOrders(orders ...entities.Order) *memoryOrders {
	m := &memoryOrders{orders: map[uint64]*entities.Order{}, nextID: 100}
	for i := range orders {
		o := orders[i]
		m.orders[o.ID] = &o
	}
	return m
}

func (m *memoryOrders) get(id uint64) (*entities.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (m *memoryOrders) CreateInTx(_ context.Context, _ pgx.Tx, order *entities.Order) error {
	m.nextID++
	order.ID = m.nextID
	order.CreatedAt = time.Now()
	stored := *order
	m.orders[order.ID] = &stored
	return nil
}

func (m *memoryOrders) FindOrder(_ context.Context, id uint64) (*entities.Order, error) {
	return m.get(id)
}

func (m *memoryOrders) FindForUpdate(_ context.Context, _ pgx.Tx, id uint64) (*entities.Order, error) {
	return m.get(id)
}

func (m *memoryOrders) UpdateStatusInTx(_ context.Context, _ pgx.Tx, orderID, statusID uint64, completedBy *uint64) error {
	o, ok := m.orders[orderID]
	if !ok {
		return apperrors.ErrNotFound
	}
	o.StatusID = statusID
	if completedBy != nil {
		o.CompletedByCourierID = completedBy
	}
	return nil
}

func (m *memoryOrders) SetCourierInTx(_ context.Context, _ pgx.Tx, orderID, courierID uint64) error {
	m.orders[orderID].CourierID = &courierID
	return nil
}

func (m *memoryOrders) SetAcceptedWaiterInTx(_ context.Context, _ pgx.Tx, orderID, waiterID uint64) error {
	m.orders[orderID].AcceptedByWaiterID = &waiterID
	return nil
}

func (m *memoryOrders) ListForReport(context.Context, time.Time, time.Time) ([]entities.OrderReportRow, error) {
	return nil, nil
}

type historyEntry struct {
	orderID, statusID uint64
	actor             string
}

type memoryHistory struct{ entries []historyEntry }

func (h *memoryHistory) AppendInTx(_ context.Context, _ pgx.Tx, orderID, statusID uint64, actor string) (*entities.OrderStatusHistory, error) {
	h.entries = append(h.entries, historyEntry{orderID, statusID, actor})
	return &entities.OrderStatusHistory{ID: uint64(len(h.entries)), OrderID: orderID, StatusID: statusID, ActorInfo: actor}, nil
}

func (h *memoryHistory) FindByOrderID(_ context.Context, orderID uint64) ([]entities.OrderStatusHistory, error) {
	var result []entities.OrderStatusHistory
	for i, e := range h.entries {
		if e.orderID == orderID {
			result = append(result, entities.OrderStatusHistory{ID: uint64(i + 1), OrderID: e.orderID, StatusID: e.statusID, ActorInfo: e.actor})
		}
	}
	return result, nil
}

type fakeEmployees struct {
	byID           map[uint64]entities.Employee
	currentOrders  map[uint64]uint64
	clearedOrders  []uint64
	linked         map[uint64]int64
	shifts         map[uint64]bool
	findByPhoneErr error
}

func newFakeEmployees(employees ...entities.Employee) *fakeEmployees {
	f := &fakeEmployees{
		byID:          map[uint64]entities.Employee{},
		currentOrders: map[uint64]uint64{},
		linked:        map[uint64]int64{},
		shifts:        map[uint64]bool{},
	}
	for _, e := range employees {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEmployees) OnShift(_ context.Context, c entities.Capability) ([]entities.Employee, error) {
	var result []entities.Employee
	for _, e := range f.byID {
		if e.Reachable() && e.Role.Has(c) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeEmployees) FindEmployee(_ context.Context, id uint64) (*entities.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (f *fakeEmployees) TableWaiters(context.Context, uint64) ([]entities.Employee, error) {
	return nil, nil
}

func (f *fakeEmployees) FindByPhone(_ context.Context, phone string) (*entities.Employee, error) {
	if f.findByPhoneErr != nil {
		return nil, f.findByPhoneErr
	}
	for _, e := range f.byID {
		if e.Phone == phone {
			found := e
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeEmployees) FindByTelegramID(_ context.Context, chatID int64) (*entities.Employee, error) {
	for _, e := range f.byID {
		if e.TelegramUserID == chatID {
			found := e
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeEmployees) List(context.Context) ([]entities.Employee, error) {
	result := make([]entities.Employee, 0, len(f.byID))
	for _, e := range f.byID {
		result = append(result, e)
	}
	return result, nil
}

func (f *fakeEmployees) Create(_ context.Context, e *entities.Employee) error {
	e.ID = uint64(len(f.byID) + 1)
	f.byID[e.ID] = *e
	return nil
}

func (f *fakeEmployees) LinkTelegram(_ context.Context, id uint64, chatID int64) error {
	f.linked[id] = chatID
	return nil
}

func (f *fakeEmployees) Logout(_ context.Context, chatID int64) error {
	for id, e := range f.byID {
		if e.TelegramUserID == chatID {
			e.TelegramUserID = 0
			e.IsOnShift = false
			f.byID[id] = e
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeEmployees) SetShift(_ context.Context, id uint64, onShift bool) error {
	e, ok := f.byID[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.IsOnShift = onShift
	f.byID[id] = e
	f.shifts[id] = onShift
	return nil
}

func (f *fakeEmployees) SetCurrentOrderInTx(_ context.Context, _ pgx.Tx, employeeID, orderID uint64) error {
	f.currentOrders[employeeID] = orderID
	return nil
}

func (f *fakeEmployees) ClearCurrentOrderInTx(_ context.Context, _ pgx.Tx, orderID uint64) error {
	f.clearedOrders = append(f.clearedOrders, orderID)
	return nil
}

type fakeProducts struct {
	products []entities.Product
	areas    map[uint64]entities.PrepArea
}

func (f *fakeProducts) AreasByProductNames(context.Context, []string) (map[string]entities.PrepArea, error) {
	return map[string]entities.PrepArea{}, nil
}

func (f *fakeProducts) List(_ context.Context, onlyActive bool) ([]entities.Product, error) {
	var result []entities.Product
	for _, p := range f.products {
		if !onlyActive || p.IsActive {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeProducts) FindByIDs(_ context.Context, ids []uint64) ([]entities.Product, error) {
	var result []entities.Product
	for _, p := range f.products {
		for _, id := range ids {
			if p.ID == id {
				result = append(result, p)
			}
		}
	}
	return result, nil
}

func (f *fakeProducts) UpdateArea(_ context.Context, id uint64, area entities.PrepArea) error {
	if f.areas == nil {
		f.areas = map[uint64]entities.PrepArea{}
	}
	f.areas[id] = area
	return nil
}

type fakeTables struct {
	tables  []entities.Table
	waiters map[uint64][]uint64
}

func (f *fakeTables) Create(_ context.Context, name string) (*entities.Table, error) {
	t := entities.Table{ID: uint64(len(f.tables) + 1), Name: name, AccessToken: uuid.NewString()}
	f.tables = append(f.tables, t)
	return &t, nil
}

func (f *fakeTables) List(context.Context) ([]entities.Table, error) { return f.tables, nil }

func (f *fakeTables) FindByID(_ context.Context, id uint64) (*entities.Table, error) {
	for _, t := range f.tables {
		if t.ID == id {
			found := t
			found.WaiterIDs = f.waiters[id]
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeTables) FindByToken(_ context.Context, token uuid.UUID) (*entities.Table, error) {
	for _, t := range f.tables {
		if t.AccessToken == token.String() {
			found := t
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeTables) SetWaiters(_ context.Context, tableID uint64, ids []uint64) error {
	if f.waiters == nil {
		f.waiters = map[uint64][]uint64{}
	}
	f.waiters[tableID] = ids
	return nil
}

type fakeStatusRepo struct {
	statuses  []entities.OrderStatus
	listCalls int
}

func (f *fakeStatusRepo) ListStatuses(context.Context) ([]entities.OrderStatus, error) {
	f.listCalls++
	return append([]entities.OrderStatus(nil), f.statuses...), nil
}

func (f *fakeStatusRepo) FindStatus(_ context.Context, id uint64) (*entities.OrderStatus, error) {
	for _, s := range f.statuses {
		if s.ID == id {
			found := s
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeStatusRepo) FindByCode(_ context.Context, code string) (*entities.OrderStatus, error) {
	for _, s := range f.statuses {
		if s.Code == code {
			found := s
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeStatusRepo) CreateStatus(_ context.Context, s *entities.OrderStatus) error {
	s.ID = uint64(len(f.statuses) + 1)
	f.statuses = append(f.statuses, *s)
	return nil
}

func (f *fakeStatusRepo) UpdateStatus(_ context.Context, s *entities.OrderStatus) error {
	for i := range f.statuses {
		if f.statuses[i].ID == s.ID {
			f.statuses[i] = *s
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeStatusRepo) DeleteStatus(_ context.Context, id uint64) error {
	for i := range f.statuses {
		if f.statuses[i].ID == id {
			f.statuses = append(f.statuses[:i], f.statuses[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type memoryCache struct {
	values map[string]string
}

func newMemoryCache() *memoryCache { return &memoryCache{values: map[string]string{}} }

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		c.values[key] = string(v)
	case string:
		c.values[key] = v
	}
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	v, ok := c.values[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *memoryCache) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) (bool, error) {
	if _, ok := c.values[key]; ok {
		return false, nil
	}
	return true, c.Set(context.Background(), key, value, 0)
}

type fakeNotifier struct {
	report notifications.DeliveryReport
	err    error
	kinds  []notifications.CallKind
}

func (f *fakeNotifier) NotifyTableCall(_ context.Context, _ entities.Table, kind notifications.CallKind, _ string) (notifications.DeliveryReport, error) {
	f.kinds = append(f.kinds, kind)
	return f.report, f.err
}
