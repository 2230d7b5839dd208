package repositories

import (
	"context"
	"errors"
	"fmt"

	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepositoryInterface interface {
	// AdminUserIDs возвращает user_id всех администраторов — адресаты
	// уведомлений о новых заявках и авто-назначениях.
	AdminUserIDs(ctx context.Context) ([]uint64, error)
	AdminUserIDsInTx(ctx context.Context, q Querier) ([]uint64, error)
	FindByUserID(ctx context.Context, userID uint64) (*entities.Admin, error)
}

type AdminRepository struct {
	storage *pgxpool.Pool
}

func NewAdminRepository(storage *pgxpool.Pool) AdminRepositoryInterface {
	return &AdminRepository{storage: storage}
}

func (r *AdminRepository) AdminUserIDs(ctx context.Context) ([]uint64, error) {
	return r.AdminUserIDsInTx(ctx, r.storage)
}

func (r *AdminRepository) AdminUserIDsInTx(ctx context.Context, q Querier) ([]uint64, error) {
	rows, err := q.Query(ctx,
		`SELECT a.user_id FROM admins a
		 JOIN users u ON u.id = a.user_id
		 WHERE u.deleted_at IS NULL
		 ORDER BY a.user_id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка администраторов: %w", err)
	}
	defer rows.Close()

	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка чтения администратора: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *AdminRepository) FindByUserID(ctx context.Context, userID uint64) (*entities.Admin, error) {
	var a entities.Admin
	err := r.storage.QueryRow(ctx,
		`SELECT id, user_id FROM admins WHERE user_id = $1`, userID,
	).Scan(&a.ID, &a.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска администратора user_id=%d: %w", userID, err)
	}
	return &a, nil
}
