package repositories

import (
	"context"
	"fmt"
	"time"

	"maintenance-system/pkg/notify"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRecord struct {
	ID        string    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Message   string    `json:"message"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationRepository — журнал доставленных уведомлений.
// Реализует notify.Journal.
type NotificationRepositoryInterface interface {
	notify.Journal
	ListByUser(ctx context.Context, userID uint64, limit, offset uint64) ([]NotificationRecord, uint64, error)
}

type NotificationRepository struct {
	storage *pgxpool.Pool
}

func NewNotificationRepository(storage *pgxpool.Pool) NotificationRepositoryInterface {
	return &NotificationRepository{storage: storage}
}

func (r *NotificationRepository) Append(ctx context.Context, msg notify.Message) error {
	_, err := r.storage.Exec(ctx,
		`INSERT INTO notifications (id, user_id, message, category) VALUES ($1, $2, $3, $4)`,
		msg.ID, msg.UserID, msg.Text, msg.Category)
	if err != nil {
		return fmt.Errorf("ошибка записи уведомления user_id=%d: %w", msg.UserID, err)
	}
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint64, limit, offset uint64) ([]NotificationRecord, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта уведомлений: %w", err)
	}

	rows, err := r.storage.Query(ctx,
		`SELECT id, user_id, message, category, created_at
		 FROM notifications WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения уведомлений user_id=%d: %w", userID, err)
	}
	defer rows.Close()

	records := make([]NotificationRecord, 0)
	for rows.Next() {
		var rec NotificationRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Message, &rec.Category, &rec.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("ошибка чтения уведомления: %w", err)
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}
