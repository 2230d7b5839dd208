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

const userColumns = `
	u.id, u.fio, u.email, u.phone_number, u.password, u.role_id, r.name,
	u.department_id, u.device_token`

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
	FindByLogin(ctx context.Context, login string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) (uint64, error)
	UpdateDeviceToken(ctx context.Context, id uint64, token string) error
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1 AND u.deleted_at IS NULL`

	user, err := scanUser(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка поиска пользователя id=%d: %w", id, err)
	}
	return user, nil
}

// FindByLogin ищет по email или номеру телефона.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE (u.email = $1 OR u.phone_number = $1) AND u.deleted_at IS NULL`

	user, err := scanUser(r.storage.QueryRow(ctx, query, login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка поиска пользователя по логину: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) (uint64, error) {
	query := `
		INSERT INTO users (fio, email, phone_number, password, role_id, department_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		user.Fio, user.Email, user.PhoneNumber, user.Password, user.RoleID, user.DepartmentID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return id, nil
}

func (r *UserRepository) UpdateDeviceToken(ctx context.Context, id uint64, token string) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE users SET device_token = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		token, id)
	if err != nil {
		return fmt.Errorf("ошибка привязки устройства пользователя id=%d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID, &u.Fio, &u.Email, &u.PhoneNumber, &u.Password, &u.RoleID, &u.RoleName,
		&u.DepartmentID, &u.DeviceToken,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
