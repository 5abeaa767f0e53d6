package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCoreDictionaries - статусы и роли. Без них сервис не стартует осмысленно.
func SeedCoreDictionaries(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("🌱 Справочники: статусы и роли")
	if err := seedStatuses(ctx, db); err != nil {
		return err
	}
	return seedRoles(ctx, db)
}

// SeedDemoMenu - тестовое меню для локальной разработки.
func SeedDemoMenu(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("🌱 Демо-меню")
	return seedMenu(ctx, db)
}
