package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func seedMenu(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'products'...")

	query := `
		INSERT INTO products (name, description, price, category, preparation_area)
		VALUES ($1, $2, $3::numeric, $4, $5)
		ON CONFLICT (name) DO UPDATE SET
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			category = EXCLUDED.category,
			preparation_area = EXCLUDED.preparation_area`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, p := range productsData {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, p.Name, p.Description, price.StringFixed(2), p.Category, p.Area); err != nil {
			log.Printf("Ошибка при вставке товара '%s': %v", p.Name, err)
			return err
		}
	}

	return tx.Commit(ctx)
}
