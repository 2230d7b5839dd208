package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedRoles(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - таблица 'roles'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, name := range rolesData {
		if _, err := tx.Exec(ctx,
			`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedRolePermissions(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - таблица 'role_permissions'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO role_permissions (role_id, permission_id)
		SELECT r.id, p.id FROM roles r, permissions p
		WHERE r.name = $1 AND p.name = $2
		ON CONFLICT DO NOTHING`
	for roleName, permNames := range rolePermissionsData {
		for _, permName := range permNames {
			if _, err := tx.Exec(ctx, query, roleName, permName); err != nil {
				return err
			}
		}
	}
	return tx.Commit(ctx)
}
