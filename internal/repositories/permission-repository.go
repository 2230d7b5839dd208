package repositories

import (
	"context"
	"fmt"

	"maintenance-system/internal/entities"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PermissionRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entities.Permission, error)
	// PermissionNamesByRoleID — имена прав, выданных роли.
	PermissionNamesByRoleID(ctx context.Context, roleID uint64) ([]string, error)
}

type PermissionRepository struct {
	storage *pgxpool.Pool
}

func NewPermissionRepository(storage *pgxpool.Pool) PermissionRepositoryInterface {
	return &PermissionRepository{storage: storage}
}

func (r *PermissionRepository) GetAll(ctx context.Context) ([]entities.Permission, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, name, COALESCE(description, '') FROM permissions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка прав: %w", err)
	}
	defer rows.Close()

	perms := make([]entities.Permission, 0)
	for rows.Next() {
		var p entities.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, fmt.Errorf("ошибка чтения права: %w", err)
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (r *PermissionRepository) PermissionNamesByRoleID(ctx context.Context, roleID uint64) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT p.name
		 FROM role_permissions rp
		 JOIN permissions p ON p.id = rp.permission_id
		 WHERE rp.role_id = $1
		 ORDER BY p.name`, roleID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения прав роли id=%d: %w", roleID, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("ошибка чтения имени права: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
