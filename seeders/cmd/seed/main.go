package main

import (
	"context"
	"flag"
	"log"

	"restaurant-system/pkg/config"
	"restaurant-system/pkg/database/postgresql"
	"restaurant-system/pkg/logger"
	"restaurant-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runCore := flag.Bool("core", false, "Статусы заказов и роли")
	runMenu := flag.Bool("menu", false, "Демо-меню")
	runAll := flag.Bool("all", false, "Все сидеры")
	flag.Parse()

	if !*runCore && !*runMenu && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		flag.PrintDefaults()
		log.Println("Пример: go run ./seeders/cmd/seed -all")
		return
	}

	ctx := context.Background()
	cfg := config.New()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger.NewLogger(""))
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer dbPool.Close()

	if err := postgresql.Migrate(ctx, dbPool); err != nil {
		log.Fatalf("❌ %v", err)
	}

	if *runAll || *runCore {
		if err := seeders.SeedCoreDictionaries(ctx, dbPool); err != nil {
			log.Fatalf("❌ Справочники: %v", err)
		}
	}
	if *runAll || *runMenu {
		if err := seeders.SeedDemoMenu(ctx, dbPool); err != nil {
			log.Fatalf("❌ Меню: %v", err)
		}
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
}
