package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"restaurant-system/internal/entities"
	"restaurant-system/pkg/utils"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const employeeSelectFields = `e.id, e.full_name, e.phone, e.role_id, e.telegram_user_id, e.is_on_shift, e.current_order_id,
	r.id, r.name, r.can_manage_orders, r.can_be_assigned, r.can_serve_tables,
	r.can_receive_kitchen_orders, r.can_receive_bar_orders`

const employeeFrom = "employees e JOIN roles r ON r.id = e.role_id"

// capabilityColumns - колонка роли для каждой возможности.
var capabilityColumns = map[entities.Capability]string{
	entities.CapabilityManageOrders:  "r.can_manage_orders",
	entities.CapabilityBeAssigned:    "r.can_be_assigned",
	entities.CapabilityServeTables:   "r.can_serve_tables",
	entities.CapabilityKitchenOrders: "r.can_receive_kitchen_orders",
	entities.CapabilityBarOrders:     "r.can_receive_bar_orders",
}

type dbEmployee struct {
	ID             uint64
	FullName       string
	Phone          string
	RoleID         uint64
	TelegramUserID sql.NullInt64
	IsOnShift      bool
	CurrentOrderID sql.NullInt64
	Role           entities.Role
}

func (db *dbEmployee) scanTargets() []interface{} {
	return []interface{}{
		&db.ID, &db.FullName, &db.Phone, &db.RoleID, &db.TelegramUserID, &db.IsOnShift, &db.CurrentOrderID,
		&db.Role.ID, &db.Role.Name, &db.Role.CanManageOrders, &db.Role.CanBeAssigned, &db.Role.CanServeTables,
		&db.Role.CanReceiveKitchenOrders, &db.Role.CanReceiveBarOrders,
	}
}

func (db *dbEmployee) ToEntity() entities.Employee {
	return entities.Employee{
		ID:             db.ID,
		FullName:       db.FullName,
		Phone:          db.Phone,
		RoleID:         db.RoleID,
		Role:           db.Role,
		TelegramUserID: db.TelegramUserID.Int64,
		IsOnShift:      db.IsOnShift,
		CurrentOrderID: utils.NullInt64ToUint64Ptr(db.CurrentOrderID),
	}
}

type EmployeeRepositoryInterface interface {
	OnShift(ctx context.Context, capability entities.Capability) ([]entities.Employee, error)
	FindEmployee(ctx context.Context, id uint64) (*entities.Employee, error)
	TableWaiters(ctx context.Context, tableID uint64) ([]entities.Employee, error)
	FindByPhone(ctx context.Context, phone string) (*entities.Employee, error)
	FindByTelegramID(ctx context.Context, telegramUserID int64) (*entities.Employee, error)
	List(ctx context.Context) ([]entities.Employee, error)
	Create(ctx context.Context, e *entities.Employee) error
	LinkTelegram(ctx context.Context, employeeID uint64, telegramUserID int64) error
	Logout(ctx context.Context, telegramUserID int64) error
	SetShift(ctx context.Context, employeeID uint64, onShift bool) error
	SetCurrentOrderInTx(ctx context.Context, tx pgx.Tx, employeeID, orderID uint64) error
	ClearCurrentOrderInTx(ctx context.Context, tx pgx.Tx, orderID uint64) error
}

type employeeRepository struct{ storage *pgxpool.Pool }

func NewEmployeeRepository(storage *pgxpool.Pool) EmployeeRepositoryInterface {
	return &employeeRepository{storage: storage}
}

// OnShift - сотрудники на смене с привязанным Telegram, чья роль даёт capability.
func (r *employeeRepository) OnShift(ctx context.Context, capability entities.Capability) ([]entities.Employee, error) {
	column, ok := capabilityColumns[capability]
	if !ok {
		return nil, fmt.Errorf("неизвестная возможность роли: %q", capability)
	}
	query, args, err := psql.Select(employeeSelectFields).
		From(employeeFrom).
		Where(sq.Eq{"e.is_on_shift": true}).
		Where(sq.NotEq{"e.telegram_user_id": nil}).
		Where(column).
		OrderBy("e.id").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.list(ctx, query, args...)
}

func (r *employeeRepository) FindEmployee(ctx context.Context, id uint64) (*entities.Employee, error) {
	return r.findOne(ctx, sq.Eq{"e.id": id})
}

func (r *employeeRepository) FindByPhone(ctx context.Context, phone string) (*entities.Employee, error) {
	return r.findOne(ctx, sq.Eq{"e.phone": phone})
}

func (r *employeeRepository) FindByTelegramID(ctx context.Context, telegramUserID int64) (*entities.Employee, error) {
	return r.findOne(ctx, sq.Eq{"e.telegram_user_id": telegramUserID})
}

func (r *employeeRepository) TableWaiters(ctx context.Context, tableID uint64) ([]entities.Employee, error) {
	query, args, err := psql.Select(employeeSelectFields).
		From(employeeFrom).
		Join("table_waiters tw ON tw.employee_id = e.id").
		Where(sq.Eq{"tw.table_id": tableID}).
		OrderBy("e.id").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.list(ctx, query, args...)
}

func (r *employeeRepository) List(ctx context.Context) ([]entities.Employee, error) {
	query, args, err := psql.Select(employeeSelectFields).From(employeeFrom).OrderBy("e.full_name", "e.id").ToSql()
	if err != nil {
		return nil, err
	}
	return r.list(ctx, query, args...)
}

func (r *employeeRepository) Create(ctx context.Context, e *entities.Employee) error {
	query := `INSERT INTO employees (full_name, phone, role_id) VALUES ($1, $2, $3) RETURNING id`
	if err := r.storage.QueryRow(ctx, query, e.FullName, e.Phone, e.RoleID).Scan(&e.ID); err != nil {
		return mapPgError(err)
	}
	created, err := r.FindEmployee(ctx, e.ID)
	if err != nil {
		return err
	}
	*e = *created
	return nil
}

// LinkTelegram привязывает чат к сотруднику. Старую привязку этого чата снимаем,
// иначе упрёмся в уникальность telegram_user_id.
func (r *employeeRepository) LinkTelegram(ctx context.Context, employeeID uint64, telegramUserID int64) error {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		"UPDATE employees SET telegram_user_id = NULL, is_on_shift = FALSE WHERE telegram_user_id = $1 AND id <> $2",
		telegramUserID, employeeID); err != nil {
		return mapPgError(err)
	}
	if err := execOne(ctx, tx, "UPDATE employees SET telegram_user_id = $2 WHERE id = $1", employeeID, telegramUserID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Logout отвязывает чат и снимает сотрудника со смены.
func (r *employeeRepository) Logout(ctx context.Context, telegramUserID int64) error {
	return execOne(ctx, r.storage,
		"UPDATE employees SET telegram_user_id = NULL, is_on_shift = FALSE WHERE telegram_user_id = $1",
		telegramUserID)
}

func (r *employeeRepository) SetShift(ctx context.Context, employeeID uint64, onShift bool) error {
	return execOne(ctx, r.storage, "UPDATE employees SET is_on_shift = $2 WHERE id = $1", employeeID, onShift)
}

func (r *employeeRepository) SetCurrentOrderInTx(ctx context.Context, tx pgx.Tx, employeeID, orderID uint64) error {
	return execOne(ctx, tx, "UPDATE employees SET current_order_id = $2 WHERE id = $1", employeeID, orderID)
}

// ClearCurrentOrderInTx снимает заказ со всех, у кого он текущий. Ноль строк - не ошибка.
func (r *employeeRepository) ClearCurrentOrderInTx(ctx context.Context, tx pgx.Tx, orderID uint64) error {
	_, err := tx.Exec(ctx, "UPDATE employees SET current_order_id = NULL WHERE current_order_id = $1", orderID)
	return mapPgError(err)
}

func (r *employeeRepository) findOne(ctx context.Context, where sq.Eq) (*entities.Employee, error) {
	query, args, err := psql.Select(employeeSelectFields).From(employeeFrom).Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}
	var dbRow dbEmployee
	if err := r.storage.QueryRow(ctx, query, args...).Scan(dbRow.scanTargets()...); err != nil {
		return nil, mapPgError(err)
	}
	employee := dbRow.ToEntity()
	return &employee, nil
}

func (r *employeeRepository) list(ctx context.Context, query string, args ...interface{}) ([]entities.Employee, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]entities.Employee, 0)
	for rows.Next() {
		var dbRow dbEmployee
		if err := rows.Scan(dbRow.scanTargets()...); err != nil {
			return nil, err
		}
		employees = append(employees, dbRow.ToEntity())
	}
	return employees, rows.Err()
}
