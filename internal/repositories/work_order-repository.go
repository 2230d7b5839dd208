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

type WorkOrderRepositoryInterface interface {
	CreateInTx(ctx context.Context, q Querier, order *entities.WorkOrder) (uint64, error)
	AppendLogInTx(ctx context.Context, q Querier, orderID uint64, status string) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.WorkOrder, error)
	List(ctx context.Context, filter types.Filter, technicianID *uint64) ([]entities.WorkOrder, uint64, error)
	Logs(ctx context.Context, orderID uint64) ([]entities.WorkOrderLog, error)
}

type WorkOrderRepository struct {
	storage *pgxpool.Pool
}

func NewWorkOrderRepository(storage *pgxpool.Pool) WorkOrderRepositoryInterface {
	return &WorkOrderRepository{storage: storage}
}

func (r *WorkOrderRepository) CreateInTx(ctx context.Context, q Querier, order *entities.WorkOrder) (uint64, error) {
	query := `
		INSERT INTO work_orders (work_request_id, maintenance_technician_id, admin_id, type, description, date, hour)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id uint64
	err := q.QueryRow(ctx, query,
		order.WorkRequestID, order.MaintenanceTechnicianID, order.AdminID,
		order.Type, order.Description, order.Date, order.Hour,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания ордера: %w", err)
	}
	return id, nil
}

// AppendLogInTx добавляет запись журнала ордера. Журнал append-only:
// записи никогда не обновляются и не удаляются.
func (r *WorkOrderRepository) AppendLogInTx(ctx context.Context, q Querier, orderID uint64, status string) (uint64, error) {
	var id uint64
	err := q.QueryRow(ctx,
		`INSERT INTO work_order_logs (work_order_id, status) VALUES ($1, $2) RETURNING id`,
		orderID, status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка записи журнала ордера id=%d: %w", orderID, err)
	}
	return id, nil
}

func (r *WorkOrderRepository) FindByID(ctx context.Context, id uint64) (*entities.WorkOrder, error) {
	query := `
		SELECT wo.id, wo.work_request_id, wo.maintenance_technician_id, wo.admin_id,
		       wo.type, wo.description, wo.date::text, wo.hour::text, wo.created_at, wo.updated_at
		FROM work_orders wo
		WHERE wo.id = $1 AND wo.deleted_at IS NULL`

	order, err := scanWorkOrder(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска ордера id=%d: %w", id, err)
	}
	return order, nil
}

func (r *WorkOrderRepository) List(ctx context.Context, filter types.Filter, technicianID *uint64) ([]entities.WorkOrder, uint64, error) {
	countQ := psql.Select("COUNT(*)").
		From("work_orders wo").
		Where(sq.Eq{"wo.deleted_at": nil})

	listQ := psql.Select(
		"wo.id", "wo.work_request_id", "wo.maintenance_technician_id", "wo.admin_id",
		"wo.type", "wo.description", "wo.date::text", "wo.hour::text", "wo.created_at", "wo.updated_at").
		From("work_orders wo").
		Where(sq.Eq{"wo.deleted_at": nil})

	if technicianID != nil {
		countQ = countQ.Where(sq.Eq{"wo.maintenance_technician_id": *technicianID})
		listQ = listQ.Where(sq.Eq{"wo.maintenance_technician_id": *technicianID})
	}
	if orderType, ok := filter.Filter["type"]; ok {
		countQ = countQ.Where(sq.Eq{"wo.type": orderType})
		listQ = listQ.Where(sq.Eq{"wo.type": orderType})
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса подсчёта ордеров: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта ордеров: %w", err)
	}

	listQ = listQ.OrderBy("wo.created_at DESC")
	if filter.Limit > 0 {
		listQ = listQ.Limit(filter.Limit).Offset(filter.Offset)
	}
	listSQL, listArgs, err := listQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка ордеров: %w", err)
	}

	rows, err := r.storage.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка ордеров: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.WorkOrder, 0)
	for rows.Next() {
		order, err := scanWorkOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка чтения строки ордера: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, total, rows.Err()
}

func (r *WorkOrderRepository) Logs(ctx context.Context, orderID uint64) ([]entities.WorkOrderLog, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, work_order_id, status, created_at
		 FROM work_order_logs WHERE work_order_id = $1 ORDER BY created_at ASC, id ASC`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения журнала ордера id=%d: %w", orderID, err)
	}
	defer rows.Close()

	logs := make([]entities.WorkOrderLog, 0)
	for rows.Next() {
		var l entities.WorkOrderLog
		if err := rows.Scan(&l.ID, &l.WorkOrderID, &l.Status, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения записи журнала: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func scanWorkOrder(row pgx.Row) (*entities.WorkOrder, error) {
	var order entities.WorkOrder
	var createdAt, updatedAt time.Time
	err := row.Scan(
		&order.ID, &order.WorkRequestID, &order.MaintenanceTechnicianID, &order.AdminID,
		&order.Type, &order.Description, &order.Date, &order.Hour, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	order.CreatedAt = &createdAt
	order.UpdatedAt = &updatedAt
	return &order, nil
}
