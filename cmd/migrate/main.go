package main

import (
	"flag"
	"log"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"maintenance-system/pkg/config"
)

// Применение миграций: go run ./cmd/migrate -dir migrations up
func main() {
	dir := flag.String("dir", "migrations", "каталог с файлами миграций")
	flag.Parse()

	command := "up"
	var rest []string
	if args := flag.Args(); len(args) > 0 {
		command = args[0]
		rest = args[1:]
	}

	cfg := config.New()
	db, err := goose.OpenDBWithDriver("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("❌ Не удалось подключиться к БД: %v", err)
	}
	defer db.Close()

	if err := goose.Run(command, db, *dir, rest...); err != nil {
		log.Fatalf("❌ Миграция завершилась с ошибкой: %v", err)
	}
	log.Println("✅ Миграции применены")
}
