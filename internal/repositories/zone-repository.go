package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ZoneRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entities.Zone, error)
	FindByID(ctx context.Context, id uint64) (*entities.Zone, error)
	Create(ctx context.Context, zone *entities.Zone) (uint64, error)
}

type ZoneRepository struct {
	storage *pgxpool.Pool
}

func NewZoneRepository(storage *pgxpool.Pool) ZoneRepositoryInterface {
	return &ZoneRepository{storage: storage}
}

func (r *ZoneRepository) GetAll(ctx context.Context) ([]entities.Zone, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, room, room_code, department_id, created_at
		 FROM zones WHERE deleted_at IS NULL ORDER BY room ASC`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка зон: %w", err)
	}
	defer rows.Close()

	zones := make([]entities.Zone, 0)
	for rows.Next() {
		var z entities.Zone
		var createdAt time.Time
		if err := rows.Scan(&z.ID, &z.Room, &z.RoomCode, &z.DepartmentID, &createdAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки зоны: %w", err)
		}
		z.CreatedAt = &createdAt
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

func (r *ZoneRepository) FindByID(ctx context.Context, id uint64) (*entities.Zone, error) {
	var z entities.Zone
	var createdAt time.Time
	err := r.storage.QueryRow(ctx,
		`SELECT id, room, room_code, department_id, created_at
		 FROM zones WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&z.ID, &z.Room, &z.RoomCode, &z.DepartmentID, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска зоны id=%d: %w", id, err)
	}
	z.CreatedAt = &createdAt
	return &z, nil
}

// Create переводит нарушение уникальности room/room_code (23505)
// в ошибку валидации, а не в 500.
func (r *ZoneRepository) Create(ctx context.Context, zone *entities.Zone) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO zones (room, room_code, department_id)
		 VALUES ($1, $2, $3) RETURNING id`,
		zone.Room, zone.RoomCode, zone.DepartmentID,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, &apperrors.InvalidInputError{
				Message: "Зона с таким помещением или кодом уже существует",
				Fields:  map[string]string{"room_code": "unique"},
			}
		}
		return 0, fmt.Errorf("ошибка создания зоны: %w", err)
	}
	return id, nil
}
