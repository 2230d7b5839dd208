package main

import (
	"flag"
	"log"

	"maintenance-system/pkg/config"
	"maintenance-system/pkg/database/postgresql"
	"maintenance-system/seeders"
)

func main() {
	runCore := flag.Bool("core", false, "Наполнить права, роли и их связи")
	runAdmin := flag.Bool("admin", false, "Создать суперпользователя")
	runDemo := flag.Bool("demo", false, "Наполнить демонстрационные данные")
	runAll := flag.Bool("all", false, "Запустить все сидеры")
	flag.Parse()

	if !*runCore && !*runAdmin && !*runDemo && !*runAll {
		log.Println("❌ Не выбран ни один сидер.")
		flag.PrintDefaults()
		log.Println("Пример: go run ./seeders/cmd/seed -core -admin")
		return
	}

	cfg := config.New()
	log.Println("📦 DSN:", cfg.Postgres.DSN)
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *runCore {
		seeders.SeedCore(dbPool)
	}
	if *runAll || *runAdmin {
		seeders.SeedAdmin(dbPool)
	}
	if *runAll || *runDemo {
		seeders.SeedDemo(dbPool)
	}
}
