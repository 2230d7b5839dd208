package seeders

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"maintenance-system/pkg/constants"
	"maintenance-system/pkg/utils"
)

func seedSuperuser(ctx context.Context, db *pgxpool.Pool) error {
	email := os.Getenv("SUPERUSER_EMAIL")
	if email == "" {
		email = "root@maintenance.local"
	}
	password := os.Getenv("SUPERUSER_PASSWORD")
	if password == "" {
		password = "ChangeMe123!"
		log.Println("  ⚠️  SUPERUSER_PASSWORD не задан, используется пароль по умолчанию")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, `
		INSERT INTO users (fio, email, phone_number, password, role_id)
		SELECT 'Superuser', $1, '+992000000000', $2, r.id
		FROM roles r WHERE r.name = $3
		ON CONFLICT (email) DO NOTHING`,
		email, hashed, constants.RoleSuperuser)
	return err
}
