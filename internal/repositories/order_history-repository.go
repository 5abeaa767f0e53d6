package repositories

import (
	"context"

	"restaurant-system/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderHistoryRepositoryInterface - журнал только дополняется: методов изменения и удаления нет.
type OrderHistoryRepositoryInterface interface {
	AppendInTx(ctx context.Context, tx pgx.Tx, orderID, statusID uint64, actorInfo string) (*entities.OrderStatusHistory, error)
	FindByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderStatusHistory, error)
}

type OrderHistoryRepository struct {
	storage *pgxpool.Pool
}

func NewOrderHistoryRepository(storage *pgxpool.Pool) OrderHistoryRepositoryInterface {
	return &OrderHistoryRepository{storage: storage}
}

func (r *OrderHistoryRepository) AppendInTx(ctx context.Context, tx pgx.Tx, orderID, statusID uint64, actorInfo string) (*entities.OrderStatusHistory, error) {
	query := `INSERT INTO order_status_history (order_id, status_id, actor_info)
		VALUES ($1, $2, $3) RETURNING id, created_at`
	h := entities.OrderStatusHistory{OrderID: orderID, StatusID: statusID, ActorInfo: actorInfo}
	if err := tx.QueryRow(ctx, query, orderID, statusID, actorInfo).Scan(&h.ID, &h.CreatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return &h, nil
}

func (r *OrderHistoryRepository) FindByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderStatusHistory, error) {
	query := `
		SELECT h.id, h.order_id, h.status_id, s.name, h.actor_info, h.created_at
		FROM order_status_history h
		JOIN order_statuses s ON s.id = h.status_id
		WHERE h.order_id = $1
		ORDER BY h.created_at ASC, h.id ASC`

	rows, err := r.storage.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]entities.OrderStatusHistory, 0)
	for rows.Next() {
		var h entities.OrderStatusHistory
		if err := rows.Scan(&h.ID, &h.OrderID, &h.StatusID, &h.StatusName, &h.ActorInfo, &h.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
