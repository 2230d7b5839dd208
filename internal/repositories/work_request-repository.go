package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const workRequestColumns = `
	wr.id, wr.user_id, wr.equipment_id, wr.description, wr.priority,
	wr.status, wr.date::text, wr.hour::text, wr.created_at, wr.updated_at,
	u.fio, e.name, e.code`

type WorkRequestRepositoryInterface interface {
	CreateInTx(ctx context.Context, q Querier, req *entities.WorkRequest) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.WorkRequest, error)
	FindByIDInTx(ctx context.Context, q Querier, id uint64) (*entities.WorkRequest, error)
	List(ctx context.Context, filter types.Filter, requesterID *uint64) ([]entities.WorkRequest, uint64, error)
	UpdateInTx(ctx context.Context, q Querier, req *entities.WorkRequest) error
	UpdateStatusInTx(ctx context.Context, q Querier, id uint64, status int16) error
	Delete(ctx context.Context, id uint64) error
}

type WorkRequestRepository struct {
	storage *pgxpool.Pool
}

func NewWorkRequestRepository(storage *pgxpool.Pool) WorkRequestRepositoryInterface {
	return &WorkRequestRepository{storage: storage}
}

func (r *WorkRequestRepository) CreateInTx(ctx context.Context, q Querier, req *entities.WorkRequest) (uint64, error) {
	query := `
		INSERT INTO work_requests (user_id, equipment_id, description, priority, status, date, hour)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id uint64
	err := q.QueryRow(ctx, query,
		req.UserID, req.EquipmentID, req.Description, req.Priority,
		req.Status, req.Date, req.Hour,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания заявки на обслуживание: %w", err)
	}
	return id, nil
}

func (r *WorkRequestRepository) FindByID(ctx context.Context, id uint64) (*entities.WorkRequest, error) {
	return r.FindByIDInTx(ctx, r.storage, id)
}

func (r *WorkRequestRepository) FindByIDInTx(ctx context.Context, q Querier, id uint64) (*entities.WorkRequest, error) {
	query := `
		SELECT ` + workRequestColumns + `
		FROM work_requests wr
		JOIN users u ON u.id = wr.user_id
		JOIN equipments e ON e.id = wr.equipment_id
		WHERE wr.id = $1 AND wr.deleted_at IS NULL`

	req, err := scanWorkRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска заявки id=%d: %w", id, err)
	}
	return req, nil
}

// List возвращает страницу заявок. Если requesterID задан, выборка
// ограничивается заявками этого пользователя (режим "только свои").
func (r *WorkRequestRepository) List(ctx context.Context, filter types.Filter, requesterID *uint64) ([]entities.WorkRequest, uint64, error) {
	countQ := psql.Select("COUNT(*)").
		From("work_requests wr").
		Where(sq.Eq{"wr.deleted_at": nil})

	listQ := psql.Select(workRequestColumns).
		From("work_requests wr").
		Join("users u ON u.id = wr.user_id").
		Join("equipments e ON e.id = wr.equipment_id").
		Where(sq.Eq{"wr.deleted_at": nil})

	if requesterID != nil {
		countQ = countQ.Where(sq.Eq{"wr.user_id": *requesterID})
		listQ = listQ.Where(sq.Eq{"wr.user_id": *requesterID})
	}
	if raw, ok := filter.Filter["status"]; ok {
		if status, err := strconv.ParseInt(fmt.Sprint(raw), 10, 16); err == nil {
			countQ = countQ.Where(sq.Eq{"wr.status": status})
			listQ = listQ.Where(sq.Eq{"wr.status": status})
		}
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		countQ = countQ.Where(sq.ILike{"wr.description": like})
		listQ = listQ.Where(sq.ILike{"wr.description": like})
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса подсчёта заявок: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта заявок: %w", err)
	}

	listQ = listQ.OrderBy("wr.created_at DESC")
	if filter.Limit > 0 {
		listQ = listQ.Limit(filter.Limit).Offset(filter.Offset)
	}
	listSQL, listArgs, err := listQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка заявок: %w", err)
	}

	rows, err := r.storage.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка заявок: %w", err)
	}
	defer rows.Close()

	requests := make([]entities.WorkRequest, 0)
	for rows.Next() {
		req, err := scanWorkRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка чтения строки заявки: %w", err)
		}
		requests = append(requests, *req)
	}
	return requests, total, rows.Err()
}

func (r *WorkRequestRepository) UpdateInTx(ctx context.Context, q Querier, req *entities.WorkRequest) error {
	query := `
		UPDATE work_requests
		SET equipment_id = $1, description = $2, priority = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL`

	tag, err := q.Exec(ctx, query, req.EquipmentID, req.Description, req.Priority, req.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления заявки id=%d: %w", req.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *WorkRequestRepository) UpdateStatusInTx(ctx context.Context, q Querier, id uint64, status int16) error {
	tag, err := q.Exec(ctx,
		`UPDATE work_requests SET status = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		status, id)
	if err != nil {
		return fmt.Errorf("ошибка смены статуса заявки id=%d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *WorkRequestRepository) Delete(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE work_requests SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления заявки id=%d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanWorkRequest(row pgx.Row) (*entities.WorkRequest, error) {
	var req entities.WorkRequest
	var createdAt, updatedAt time.Time
	var fio, eqName, eqCode string
	err := row.Scan(
		&req.ID, &req.UserID, &req.EquipmentID, &req.Description, &req.Priority,
		&req.Status, &req.Date, &req.Hour, &createdAt, &updatedAt,
		&fio, &eqName, &eqCode,
	)
	if err != nil {
		return nil, err
	}
	req.CreatedAt = &createdAt
	req.UpdatedAt = &updatedAt
	req.Requester = &entities.User{ID: req.UserID, Fio: fio}
	req.Equipment = &entities.Equipment{ID: req.EquipmentID, Name: eqName, Code: eqCode}
	return &req, nil
}
