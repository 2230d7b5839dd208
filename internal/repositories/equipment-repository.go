package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EquipmentRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter, departmentID *uint64) ([]entities.Equipment, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Equipment, error)
	Create(ctx context.Context, eq *entities.Equipment) (uint64, error)
	Update(ctx context.Context, eq *entities.Equipment) error
	Delete(ctx context.Context, id uint64) error
	// UpsertByCode — вставка либо обновление по уникальному коду,
	// используется пакетным импортом. Возвращает true при вставке.
	UpsertByCode(ctx context.Context, eq *entities.Equipment) (bool, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

// List: клиентам передаётся их departmentID, и выборка сужается до
// оборудования этого департамента.
func (r *EquipmentRepository) List(ctx context.Context, filter types.Filter, departmentID *uint64) ([]entities.Equipment, uint64, error) {
	countQ := psql.Select("COUNT(*)").
		From("equipments e").
		Where(sq.Eq{"e.deleted_at": nil})

	listQ := psql.Select("e.id", "e.name", "e.code", "e.zone_id", "e.department_id", "e.created_at").
		From("equipments e").
		Where(sq.Eq{"e.deleted_at": nil})

	if departmentID != nil {
		countQ = countQ.Where(sq.Eq{"e.department_id": *departmentID})
		listQ = listQ.Where(sq.Eq{"e.department_id": *departmentID})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		cond := sq.Or{sq.ILike{"e.name": like}, sq.ILike{"e.code": like}}
		countQ = countQ.Where(cond)
		listQ = listQ.Where(cond)
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса подсчёта оборудования: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта оборудования: %w", err)
	}

	listQ = listQ.OrderBy("e.name ASC")
	if filter.Limit > 0 {
		listQ = listQ.Limit(filter.Limit).Offset(filter.Offset)
	}
	listSQL, listArgs, err := listQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка оборудования: %w", err)
	}

	rows, err := r.storage.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка оборудования: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Equipment, 0)
	for rows.Next() {
		var eq entities.Equipment
		var createdAt time.Time
		if err := rows.Scan(&eq.ID, &eq.Name, &eq.Code, &eq.ZoneID, &eq.DepartmentID, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("ошибка чтения строки оборудования: %w", err)
		}
		eq.CreatedAt = &createdAt
		items = append(items, eq)
	}
	return items, total, rows.Err()
}

func (r *EquipmentRepository) FindByID(ctx context.Context, id uint64) (*entities.Equipment, error) {
	var eq entities.Equipment
	var createdAt time.Time
	err := r.storage.QueryRow(ctx,
		`SELECT id, name, code, zone_id, department_id, created_at
		 FROM equipments WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&eq.ID, &eq.Name, &eq.Code, &eq.ZoneID, &eq.DepartmentID, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска оборудования id=%d: %w", id, err)
	}
	eq.CreatedAt = &createdAt
	return &eq, nil
}

func (r *EquipmentRepository) Create(ctx context.Context, eq *entities.Equipment) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO equipments (name, code, zone_id, department_id)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		eq.Name, eq.Code, eq.ZoneID, eq.DepartmentID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания оборудования: %w", err)
	}
	return id, nil
}

func (r *EquipmentRepository) Update(ctx context.Context, eq *entities.Equipment) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE equipments SET name = $1, code = $2, zone_id = $3, department_id = $4, updated_at = NOW()
		 WHERE id = $5 AND deleted_at IS NULL`,
		eq.Name, eq.Code, eq.ZoneID, eq.DepartmentID, eq.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления оборудования id=%d: %w", eq.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE equipments SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления оборудования id=%d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) UpsertByCode(ctx context.Context, eq *entities.Equipment) (bool, error) {
	var inserted bool
	err := r.storage.QueryRow(ctx,
		`INSERT INTO equipments (name, code, zone_id, department_id)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (code) DO UPDATE
		 SET name = EXCLUDED.name, zone_id = EXCLUDED.zone_id,
		     department_id = EXCLUDED.department_id, updated_at = NOW()
		 RETURNING (xmax = 0)`,
		eq.Name, eq.Code, eq.ZoneID, eq.DepartmentID,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("ошибка импорта оборудования code=%s: %w", eq.Code, err)
	}
	return inserted, nil
}
