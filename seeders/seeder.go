package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCore наполняет права, роли и их связи.
func SeedCore(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Наполнение прав и ролей...")

	if err := seedPermissions(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения прав: %v", err)
	}
	if err := seedRoles(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения ролей: %v", err)
	}
	if err := seedRolePermissions(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения связей ролей и прав: %v", err)
	}
	log.Println("✅ Права и роли готовы")
}

// SeedAdmin создаёт суперпользователя из переменных окружения.
func SeedAdmin(db *pgxpool.Pool) {
	log.Println("▶️  Создание суперпользователя...")
	if err := seedSuperuser(context.Background(), db); err != nil {
		log.Fatalf("❌ Ошибка создания суперпользователя: %v", err)
	}
	log.Println("✅ Суперпользователь готов")
}

// SeedDemo наполняет демонстрационные данные: департаменты, зоны,
// оборудование и пользователей всех ролей.
func SeedDemo(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Наполнение демонстрационных данных...")

	if err := seedDepartmentsAndZones(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения департаментов и зон: %v", err)
	}
	if err := seedEquipments(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения оборудования: %v", err)
	}
	if err := seedDemoUsers(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения пользователей: %v", err)
	}
	log.Println("✅ Демонстрационные данные готовы")
}
