package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"restaurant-system/internal/entities"
	apperrors "restaurant-system/pkg/errors"
	"restaurant-system/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const orderSelectFields = `o.id, o.products, o.total_price::text, o.customer_name, o.phone, o.address, o.order_type,
	o.delivery_time, o.table_id, t.name, o.status_id, o.courier_id, o.completed_by_courier_id,
	o.accepted_by_waiter_id, o.customer_chat_id, o.created_at`

const orderFrom = "orders o LEFT JOIN restaurant_tables t ON t.id = o.table_id"

type dbOrder struct {
	ID                   uint64
	Products             string
	TotalPrice           string
	CustomerName         string
	Phone                string
	Address              string
	OrderType            string
	DeliveryTime         string
	TableID              sql.NullInt64
	TableName            sql.NullString
	StatusID             uint64
	CourierID            sql.NullInt64
	CompletedByCourierID sql.NullInt64
	AcceptedByWaiterID   sql.NullInt64
	CustomerChatID       sql.NullInt64
	CreatedAt            time.Time
}

func (db *dbOrder) scanTargets() []interface{} {
	return []interface{}{
		&db.ID, &db.Products, &db.TotalPrice, &db.CustomerName, &db.Phone, &db.Address, &db.OrderType,
		&db.DeliveryTime, &db.TableID, &db.TableName, &db.StatusID, &db.CourierID, &db.CompletedByCourierID,
		&db.AcceptedByWaiterID, &db.CustomerChatID, &db.CreatedAt,
	}
}

func (db *dbOrder) ToEntity() (*entities.Order, error) {
	total, err := decimal.NewFromString(db.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("заказ %d: неверная сумма %q: %w", db.ID, db.TotalPrice, err)
	}
	return &entities.Order{
		ID:                   db.ID,
		Products:             db.Products,
		TotalPrice:           total,
		CustomerName:         db.CustomerName,
		Phone:                db.Phone,
		Address:              db.Address,
		OrderType:            entities.OrderType(db.OrderType),
		DeliveryTime:         db.DeliveryTime,
		TableID:              utils.NullInt64ToUint64Ptr(db.TableID),
		TableName:            utils.NullStringToString(db.TableName),
		StatusID:             db.StatusID,
		CourierID:            utils.NullInt64ToUint64Ptr(db.CourierID),
		CompletedByCourierID: utils.NullInt64ToUint64Ptr(db.CompletedByCourierID),
		AcceptedByWaiterID:   utils.NullInt64ToUint64Ptr(db.AcceptedByWaiterID),
		CustomerChatID:       db.CustomerChatID.Int64,
		CreatedAt:            db.CreatedAt,
	}, nil
}

type OrderRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, order *entities.Order) error
	FindOrder(ctx context.Context, id uint64) (*entities.Order, error)
	FindForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Order, error)
	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, orderID, statusID uint64, completedByCourierID *uint64) error
	SetCourierInTx(ctx context.Context, tx pgx.Tx, orderID, courierID uint64) error
	SetAcceptedWaiterInTx(ctx context.Context, tx pgx.Tx, orderID, waiterID uint64) error
	ListForReport(ctx context.Context, from, to time.Time) ([]entities.OrderReportRow, error)
}

type orderRepository struct{ storage *pgxpool.Pool }

func NewOrderRepository(storage *pgxpool.Pool) OrderRepositoryInterface {
	return &orderRepository{storage: storage}
}

func (r *orderRepository) CreateInTx(ctx context.Context, tx pgx.Tx, o *entities.Order) error {
	query := `INSERT INTO orders (products, total_price, customer_name, phone, address, order_type, delivery_time,
		table_id, status_id, customer_chat_id)
		VALUES ($1, $2::numeric, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`
	var chatID sql.NullInt64
	if o.CustomerChatID != 0 {
		chatID = sql.NullInt64{Int64: o.CustomerChatID, Valid: true}
	}
	err := tx.QueryRow(ctx, query,
		o.Products, o.TotalPrice.String(), o.CustomerName, o.Phone, o.Address, string(o.OrderType), o.DeliveryTime,
		utils.Uint64PtrToNullInt64(o.TableID), o.StatusID, chatID,
	).Scan(&o.ID, &o.CreatedAt)
	return mapPgError(err)
}

func (r *orderRepository) FindOrder(ctx context.Context, id uint64) (*entities.Order, error) {
	return findOrder(ctx, r.storage, id, "")
}

// FindForUpdate блокирует строку заказа до конца транзакции.
func (r *orderRepository) FindForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Order, error) {
	return findOrder(ctx, tx, id, " FOR UPDATE OF o")
}

func findOrder(ctx context.Context, q querier, id uint64, suffix string) (*entities.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE o.id = $1%s", orderSelectFields, orderFrom, suffix)
	var dbRow dbOrder
	if err := q.QueryRow(ctx, query, id).Scan(dbRow.scanTargets()...); err != nil {
		return nil, mapPgError(err)
	}
	return dbRow.ToEntity()
}

func (r *orderRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, orderID, statusID uint64, completedByCourierID *uint64) error {
	query := `UPDATE orders SET status_id = $2,
		completed_by_courier_id = COALESCE($3, completed_by_courier_id)
		WHERE id = $1`
	return execOne(ctx, tx, query, orderID, statusID, utils.Uint64PtrToNullInt64(completedByCourierID))
}

func (r *orderRepository) SetCourierInTx(ctx context.Context, tx pgx.Tx, orderID, courierID uint64) error {
	return execOne(ctx, tx, "UPDATE orders SET courier_id = $2 WHERE id = $1", orderID, courierID)
}

func (r *orderRepository) SetAcceptedWaiterInTx(ctx context.Context, tx pgx.Tx, orderID, waiterID uint64) error {
	return execOne(ctx, tx, "UPDATE orders SET accepted_by_waiter_id = $2 WHERE id = $1", orderID, waiterID)
}

func (r *orderRepository) ListForReport(ctx context.Context, from, to time.Time) ([]entities.OrderReportRow, error) {
	query, args, err := psql.
		Select(orderSelectFields,
			"s.name",
			"COALESCE(c.full_name, '')",
			"COALESCE(w.full_name, '')",
			"(SELECT COUNT(*) FROM order_status_history h WHERE h.order_id = o.id)").
		From(orderFrom).
		Join("order_statuses s ON s.id = o.status_id").
		LeftJoin("employees c ON c.id = o.courier_id").
		LeftJoin("employees w ON w.id = o.accepted_by_waiter_id").
		Where("o.created_at >= ?", from).
		Where("o.created_at < ?", to).
		OrderBy("o.created_at", "o.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]entities.OrderReportRow, 0)
	for rows.Next() {
		var dbRow dbOrder
		var row entities.OrderReportRow
		targets := append(dbRow.scanTargets(), &row.StatusName, &row.CourierName, &row.WaiterName, &row.HistoryCount)
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		order, err := dbRow.ToEntity()
		if err != nil {
			return nil, err
		}
		row.Order = *order
		result = append(result, row)
	}
	return result, rows.Err()
}

func execOne(ctx context.Context, q querier, query string, args ...interface{}) error {
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
