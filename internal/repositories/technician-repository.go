package repositories

import (
	"context"
	"errors"
	"fmt"

	"maintenance-system/internal/dispatch"
	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TechnicianRepositoryInterface interface {
	// LockAndLoadInTx блокирует строки техников (FOR UPDATE) до конца
	// транзакции и возвращает их вместе с текущим числом ордеров.
	// Две параллельные транзакции, дошедшие сюда, выполняются строго
	// одна за другой, поэтому загрузка считается по уже зафиксированным
	// назначениям конкурента.
	LockAndLoadInTx(ctx context.Context, q Querier) ([]dispatch.TechnicianLoad, error)
	GetAll(ctx context.Context) ([]entities.MaintenanceTechnician, error)
	FindByID(ctx context.Context, id uint64) (*entities.MaintenanceTechnician, error)
	FindByUserID(ctx context.Context, userID uint64) (*entities.MaintenanceTechnician, error)
	UpdateStatus(ctx context.Context, id uint64, status int16) error
}

type TechnicianRepository struct {
	storage *pgxpool.Pool
}

func NewTechnicianRepository(storage *pgxpool.Pool) TechnicianRepositoryInterface {
	return &TechnicianRepository{storage: storage}
}

func (r *TechnicianRepository) LockAndLoadInTx(ctx context.Context, q Querier) ([]dispatch.TechnicianLoad, error) {
	// Подзапрос с блокировкой отделён от агрегата: FOR UPDATE нельзя
	// сочетать с GROUP BY в одном запросе.
	query := `
		WITH locked AS (
			SELECT mt.id, mt.user_id, mt.status
			FROM maintenance_technicians mt
			WHERE mt.deleted_at IS NULL
			ORDER BY mt.id
			FOR UPDATE
		)
		SELECT l.id, l.user_id, l.status,
		       COALESCE(u.device_token, '') AS device_token,
		       COUNT(wo.id) AS orders_count
		FROM locked l
		JOIN users u ON u.id = l.user_id
		LEFT JOIN work_orders wo
		       ON wo.maintenance_technician_id = l.id AND wo.deleted_at IS NULL
		GROUP BY l.id, l.user_id, l.status, u.device_token
		ORDER BY l.id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка блокировки списка техников: %w", err)
	}
	defer rows.Close()

	loads := make([]dispatch.TechnicianLoad, 0)
	for rows.Next() {
		var t dispatch.TechnicianLoad
		if err := rows.Scan(&t.TechnicianID, &t.UserID, &t.Status, &t.DeviceToken, &t.OrdersCount); err != nil {
			return nil, fmt.Errorf("ошибка чтения загрузки техника: %w", err)
		}
		loads = append(loads, t)
	}
	return loads, rows.Err()
}

func (r *TechnicianRepository) GetAll(ctx context.Context) ([]entities.MaintenanceTechnician, error) {
	query := `
		SELECT mt.id, mt.user_id, mt.status, u.fio,
		       COUNT(wo.id) AS orders_count
		FROM maintenance_technicians mt
		JOIN users u ON u.id = mt.user_id
		LEFT JOIN work_orders wo
		       ON wo.maintenance_technician_id = mt.id AND wo.deleted_at IS NULL
		WHERE mt.deleted_at IS NULL
		GROUP BY mt.id, mt.user_id, mt.status, u.fio
		ORDER BY mt.id`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка техников: %w", err)
	}
	defer rows.Close()

	techs := make([]entities.MaintenanceTechnician, 0)
	for rows.Next() {
		var t entities.MaintenanceTechnician
		var fio string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Status, &fio, &t.OrdersCount); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки техника: %w", err)
		}
		t.User = &entities.User{ID: t.UserID, Fio: fio}
		techs = append(techs, t)
	}
	return techs, rows.Err()
}

func (r *TechnicianRepository) FindByID(ctx context.Context, id uint64) (*entities.MaintenanceTechnician, error) {
	var t entities.MaintenanceTechnician
	var fio string
	err := r.storage.QueryRow(ctx,
		`SELECT mt.id, mt.user_id, mt.status, u.fio
		 FROM maintenance_technicians mt
		 JOIN users u ON u.id = mt.user_id
		 WHERE mt.id = $1 AND mt.deleted_at IS NULL`, id,
	).Scan(&t.ID, &t.UserID, &t.Status, &fio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска техника id=%d: %w", id, err)
	}
	t.User = &entities.User{ID: t.UserID, Fio: fio}
	return &t, nil
}

func (r *TechnicianRepository) FindByUserID(ctx context.Context, userID uint64) (*entities.MaintenanceTechnician, error) {
	var t entities.MaintenanceTechnician
	err := r.storage.QueryRow(ctx,
		`SELECT id, user_id, status FROM maintenance_technicians
		 WHERE user_id = $1 AND deleted_at IS NULL`, userID,
	).Scan(&t.ID, &t.UserID, &t.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска техника user_id=%d: %w", userID, err)
	}
	return &t, nil
}

func (r *TechnicianRepository) UpdateStatus(ctx context.Context, id uint64, status int16) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE maintenance_technicians SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND deleted_at IS NULL`, status, id)
	if err != nil {
		return fmt.Errorf("ошибка смены статуса техника id=%d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
