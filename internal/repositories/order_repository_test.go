package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"restaurant-system/internal/entities"
	"restaurant-system/pkg/database/postgresql"
	apperrors "restaurant-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPool *pgxpool.Pool

// TestMain поднимает схему в тестовой БД. Без TEST_DATABASE_URL тесты пропускаются.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn != "" {
		ctx := context.Background()
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			panic(err)
		}
		if err := postgresql.Migrate(ctx, pool); err != nil {
			panic(err)
		}
		testPool = pool
	}

	code := m.Run()
	if testPool != nil {
		testPool.Close()
	}
	os.Exit(code)
}

func requireDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL не задан")
	}
	_, err := testPool.Exec(context.Background(), `TRUNCATE order_status_history, table_waiters, orders,
		restaurant_tables, products, employees, order_statuses, roles RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return testPool
}

func seedStatuses(t *testing.T, pool *pgxpool.Pool) (newStatus, ready entities.OrderStatus) {
	t.Helper()
	repo := NewStatusRepository(pool)
	newStatus = entities.OrderStatus{Name: "Новий", Code: "NEW", VisibleToOperator: true}
	ready = entities.OrderStatus{Name: "Готово", Code: "READY", VisibleToOperator: true, VisibleToWaiter: true}
	require.NoError(t, repo.CreateStatus(context.Background(), &newStatus))
	require.NoError(t, repo.CreateStatus(context.Background(), &ready))
	return newStatus, ready
}

func TestOrderRepository_CreateAndChangeStatus(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	newStatus, ready := seedStatuses(t, pool)

	orders := NewOrderRepository(pool)
	history := NewOrderHistoryRepository(pool)
	txManager := NewTxManager(pool)

	order := &entities.Order{
		Products:     "Борщ x 2, Кава x 1",
		TotalPrice:   decimal.RequireFromString("215.50"),
		CustomerName: "Олена",
		Phone:        "0501234567",
		OrderType:    entities.OrderTypePickup,
		StatusID:     newStatus.ID,
	}
	err := txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := orders.CreateInTx(ctx, tx, order); err != nil {
			return err
		}
		_, err := history.AppendInTx(ctx, tx, order.ID, newStatus.ID, "Клієнт: Олена")
		return err
	})
	require.NoError(t, err)
	require.NotZero(t, order.ID)

	err = txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		locked, err := orders.FindForUpdate(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		if err := orders.UpdateStatusInTx(ctx, tx, locked.ID, ready.ID, nil); err != nil {
			return err
		}
		_, err = history.AppendInTx(ctx, tx, locked.ID, ready.ID, "Адміністратор")
		return err
	})
	require.NoError(t, err)

	stored, err := orders.FindOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, ready.ID, stored.StatusID)
	assert.True(t, decimal.RequireFromString("215.5").Equal(stored.TotalPrice))
	assert.Nil(t, stored.CompletedByCourierID)

	entries, err := history.FindByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Новий", entries[0].StatusName)
	assert.Equal(t, "Готово", entries[1].StatusName)

	report, err := orders.ListForReport(ctx, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, 2, report[0].HistoryCount)
}

func TestOrderRepository_FindMissing(t *testing.T) {
	pool := requireDB(t)

	_, err := NewOrderRepository(pool).FindOrder(context.Background(), 999)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestOrderHistory_RejectsUpdates(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	newStatus, _ := seedStatuses(t, pool)

	order := &entities.Order{Products: "Чай x 1", StatusID: newStatus.ID, OrderType: entities.OrderTypePickup}
	err := NewTxManager(pool).RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := NewOrderRepository(pool).CreateInTx(ctx, tx, order); err != nil {
			return err
		}
		_, err := NewOrderHistoryRepository(pool).AppendInTx(ctx, tx, order.ID, newStatus.ID, "Система")
		return err
	})
	require.NoError(t, err)

	_, err = pool.Exec(ctx, "UPDATE order_status_history SET actor_info = 'x' WHERE order_id = $1", order.ID)
	assert.Error(t, err)
}

func TestEmployeeRepository_OnShiftFiltersByCapability(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()

	var chefRole, courierRole uint64
	require.NoError(t, pool.QueryRow(ctx,
		"INSERT INTO roles (name, can_receive_kitchen_orders) VALUES ('Кухар', TRUE) RETURNING id").Scan(&chefRole))
	require.NoError(t, pool.QueryRow(ctx,
		"INSERT INTO roles (name, can_be_assigned) VALUES ('Кур''єр', TRUE) RETURNING id").Scan(&courierRole))

	repo := NewEmployeeRepository(pool)
	chef := &entities.Employee{FullName: "Іван", Phone: "0500000001", RoleID: chefRole}
	offline := &entities.Employee{FullName: "Петро", Phone: "0500000002", RoleID: chefRole}
	courier := &entities.Employee{FullName: "Марко", Phone: "0500000003", RoleID: courierRole}
	for _, e := range []*entities.Employee{chef, offline, courier} {
		require.NoError(t, repo.Create(ctx, e))
	}
	require.NoError(t, repo.LinkTelegram(ctx, chef.ID, 1001))
	require.NoError(t, repo.SetShift(ctx, chef.ID, true))
	require.NoError(t, repo.SetShift(ctx, offline.ID, true))
	require.NoError(t, repo.LinkTelegram(ctx, courier.ID, 1003))
	require.NoError(t, repo.SetShift(ctx, courier.ID, true))

	chefs, err := repo.OnShift(ctx, entities.CapabilityKitchenOrders)
	require.NoError(t, err)
	require.Len(t, chefs, 1)
	assert.Equal(t, chef.ID, chefs[0].ID)
	assert.True(t, chefs[0].Role.CanReceiveKitchenOrders)

	_, err = repo.OnShift(ctx, entities.Capability("unknown"))
	assert.Error(t, err)
}

func TestProductRepository_AreasByProductNames(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	_, err := pool.Exec(ctx, `INSERT INTO products (name, price, preparation_area) VALUES
		('Борщ', 120, 'kitchen'), ('Мохіто', 150, 'bar')`)
	require.NoError(t, err)

	areas, err := NewProductRepository(pool).AreasByProductNames(ctx, []string{"Борщ", "Мохіто", "Невідоме"})

	require.NoError(t, err)
	assert.Equal(t, map[string]entities.PrepArea{"Борщ": entities.AreaKitchen, "Мохіто": entities.AreaBar}, areas)
}
