package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedRoles(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'roles'...")

	query := `
		INSERT INTO roles (name, can_manage_orders, can_be_assigned, can_serve_tables,
			can_receive_kitchen_orders, can_receive_bar_orders)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET
			can_manage_orders = EXCLUDED.can_manage_orders,
			can_be_assigned = EXCLUDED.can_be_assigned,
			can_serve_tables = EXCLUDED.can_serve_tables,
			can_receive_kitchen_orders = EXCLUDED.can_receive_kitchen_orders,
			can_receive_bar_orders = EXCLUDED.can_receive_bar_orders`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, r := range rolesData {
		if _, err := tx.Exec(ctx, query, r.Name, r.ManageOrders, r.BeAssigned, r.ServeTables, r.KitchenOrders, r.BarOrders); err != nil {
			log.Printf("Ошибка при вставке роли '%s': %v", r.Name, err)
			return err
		}
	}

	return tx.Commit(ctx)
}
