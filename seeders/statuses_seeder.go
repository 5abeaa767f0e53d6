package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Статус ищем по коду: имя и флаги сидер приводит к эталону.
func seedStatuses(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'order_statuses'...")

	query := `
		INSERT INTO order_statuses (name, code, notify_customer, visible_to_operator, visible_to_courier,
			visible_to_waiter, visible_to_chef, visible_to_bartender, requires_kitchen_notify,
			is_completed_status, is_cancelled_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			notify_customer = EXCLUDED.notify_customer,
			visible_to_operator = EXCLUDED.visible_to_operator,
			visible_to_courier = EXCLUDED.visible_to_courier,
			visible_to_waiter = EXCLUDED.visible_to_waiter,
			visible_to_chef = EXCLUDED.visible_to_chef,
			visible_to_bartender = EXCLUDED.visible_to_bartender,
			requires_kitchen_notify = EXCLUDED.requires_kitchen_notify,
			is_completed_status = EXCLUDED.is_completed_status,
			is_cancelled_status = EXCLUDED.is_cancelled_status`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, s := range statusesData {
		if _, err := tx.Exec(ctx, query,
			s.Name, s.Code, s.NotifyCustomer, s.VisibleToOperator, s.VisibleToCourier,
			s.VisibleToWaiter, s.VisibleToChef, s.VisibleToBartender, s.RequiresKitchenNotify,
			s.IsCompleted, s.IsCancelled,
		); err != nil {
			log.Printf("Ошибка при вставке/обновлении статуса '%s': %v", s.Code, err)
			return err
		}
	}

	return tx.Commit(ctx)
}
