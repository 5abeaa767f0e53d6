package repositories

import (
	"context"
	"fmt"
	"time"

	"restaurant-system/internal/entities"
	apperrors "restaurant-system/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type dbStatus struct {
	ID                    uint64
	Name                  string
	Code                  string
	NotifyCustomer        bool
	VisibleToOperator     bool
	VisibleToCourier      bool
	VisibleToWaiter       bool
	VisibleToChef         bool
	VisibleToBartender    bool
	RequiresKitchenNotify bool
	IsCompletedStatus     bool
	IsCancelledStatus     bool
	CreatedAt             time.Time
}

func (db *dbStatus) ToEntity() entities.OrderStatus {
	return entities.OrderStatus{
		ID:                    db.ID,
		Name:                  db.Name,
		Code:                  db.Code,
		NotifyCustomer:        db.NotifyCustomer,
		VisibleToOperator:     db.VisibleToOperator,
		VisibleToCourier:      db.VisibleToCourier,
		VisibleToWaiter:       db.VisibleToWaiter,
		VisibleToChef:         db.VisibleToChef,
		VisibleToBartender:    db.VisibleToBartender,
		RequiresKitchenNotify: db.RequiresKitchenNotify,
		IsCompletedStatus:     db.IsCompletedStatus,
		IsCancelledStatus:     db.IsCancelledStatus,
		CreatedAt:             db.CreatedAt,
	}
}

func (db *dbStatus) scanTargets() []interface{} {
	return []interface{}{
		&db.ID, &db.Name, &db.Code, &db.NotifyCustomer,
		&db.VisibleToOperator, &db.VisibleToCourier, &db.VisibleToWaiter, &db.VisibleToChef, &db.VisibleToBartender,
		&db.RequiresKitchenNotify, &db.IsCompletedStatus, &db.IsCancelledStatus, &db.CreatedAt,
	}
}

const (
	statusTable  = "order_statuses"
	statusFields = "id, name, code, notify_customer, visible_to_operator, visible_to_courier, visible_to_waiter, " +
		"visible_to_chef, visible_to_bartender, requires_kitchen_notify, is_completed_status, is_cancelled_status, created_at"
)

type StatusRepositoryInterface interface {
	ListStatuses(ctx context.Context) ([]entities.OrderStatus, error)
	FindStatus(ctx context.Context, id uint64) (*entities.OrderStatus, error)
	FindByCode(ctx context.Context, code string) (*entities.OrderStatus, error)
	CreateStatus(ctx context.Context, status *entities.OrderStatus) error
	UpdateStatus(ctx context.Context, status *entities.OrderStatus) error
	DeleteStatus(ctx context.Context, id uint64) error
}

type statusRepository struct{ storage *pgxpool.Pool }

func NewStatusRepository(storage *pgxpool.Pool) StatusRepositoryInterface {
	return &statusRepository{storage: storage}
}

func (r *statusRepository) ListStatuses(ctx context.Context) ([]entities.OrderStatus, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", statusFields, statusTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make([]entities.OrderStatus, 0)
	for rows.Next() {
		var dbRow dbStatus
		if err := rows.Scan(dbRow.scanTargets()...); err != nil {
			return nil, err
		}
		statuses = append(statuses, dbRow.ToEntity())
	}
	return statuses, rows.Err()
}

func (r *statusRepository) FindStatus(ctx context.Context, id uint64) (*entities.OrderStatus, error) {
	return findStatus(ctx, r.storage, "id = $1", id)
}

func (r *statusRepository) FindByCode(ctx context.Context, code string) (*entities.OrderStatus, error) {
	return findStatus(ctx, r.storage, "code = $1", code)
}

func findStatus(ctx context.Context, q querier, where string, arg interface{}) (*entities.OrderStatus, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s LIMIT 1", statusFields, statusTable, where)
	var dbRow dbStatus
	if err := q.QueryRow(ctx, query, arg).Scan(dbRow.scanTargets()...); err != nil {
		return nil, mapPgError(err)
	}
	status := dbRow.ToEntity()
	return &status, nil
}

func (r *statusRepository) CreateStatus(ctx context.Context, s *entities.OrderStatus) error {
	query := fmt.Sprintf(`INSERT INTO %s (name, code, notify_customer, visible_to_operator, visible_to_courier,
		visible_to_waiter, visible_to_chef, visible_to_bartender, requires_kitchen_notify, is_completed_status, is_cancelled_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING %s`, statusTable, statusFields)
	var dbRow dbStatus
	err := r.storage.QueryRow(ctx, query,
		s.Name, s.Code, s.NotifyCustomer, s.VisibleToOperator, s.VisibleToCourier,
		s.VisibleToWaiter, s.VisibleToChef, s.VisibleToBartender, s.RequiresKitchenNotify,
		s.IsCompletedStatus, s.IsCancelledStatus,
	).Scan(dbRow.scanTargets()...)
	if err != nil {
		return mapPgError(err)
	}
	*s = dbRow.ToEntity()
	return nil
}

func (r *statusRepository) UpdateStatus(ctx context.Context, s *entities.OrderStatus) error {
	query := fmt.Sprintf(`UPDATE %s SET name = $2, code = $3, notify_customer = $4, visible_to_operator = $5,
		visible_to_courier = $6, visible_to_waiter = $7, visible_to_chef = $8, visible_to_bartender = $9,
		requires_kitchen_notify = $10, is_completed_status = $11, is_cancelled_status = $12
		WHERE id = $1 RETURNING %s`, statusTable, statusFields)
	var dbRow dbStatus
	err := r.storage.QueryRow(ctx, query,
		s.ID, s.Name, s.Code, s.NotifyCustomer, s.VisibleToOperator, s.VisibleToCourier,
		s.VisibleToWaiter, s.VisibleToChef, s.VisibleToBartender, s.RequiresKitchenNotify,
		s.IsCompletedStatus, s.IsCancelledStatus,
	).Scan(dbRow.scanTargets()...)
	if err != nil {
		return mapPgError(err)
	}
	*s = dbRow.ToEntity()
	return nil
}

// DeleteStatus - статус, на который ссылаются заказы или история, удалить нельзя (ErrConflict).
func (r *statusRepository) DeleteStatus(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", statusTable), id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
