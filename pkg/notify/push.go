// Файл: pkg/notify/push.go
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// PushServiceInterface — отправка push-уведомлений на мобильное устройство
// по его device token. Лучший из возможных сервисов: не блокирует и не падает.
type PushServiceInterface interface {
	PushToDevice(ctx context.Context, title, body, category, deviceToken string) error
}

type PushService struct {
	endpoint   string
	serverKey  string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewPushService(endpoint, serverKey string, logger *zap.Logger) PushServiceInterface {
	return &PushService{
		endpoint:   endpoint,
		serverKey:  serverKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

type pushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type pushData struct {
	Category string `json:"category"`
}

type pushRequest struct {
	To           string           `json:"to"`
	Notification pushNotification `json:"notification"`
	Data         pushData         `json:"data"`
}

// PushToDevice шлёт уведомление в FCM. Пустой токен — не ошибка:
// у пользователя просто нет привязанного устройства.
func (s *PushService) PushToDevice(ctx context.Context, title, body, category, deviceToken string) error {
	if deviceToken == "" {
		return nil
	}

	payload := pushRequest{
		To:           deviceToken,
		Notification: pushNotification{Title: title, Body: body},
		Data:         pushData{Category: category},
	}

	rawBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("сериализация push-запроса: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(rawBody))
	if err != nil {
		return fmt.Errorf("создание push-запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.serverKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("отправка push-запроса: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("push-сервис вернул статус %d: %s", resp.StatusCode, string(respBody))
	}

	s.logger.Debug("Push-уведомление отправлено", zap.String("category", category))
	return nil
}

// NopPushService используется в тестах и когда FCM не сконфигурирован.
type NopPushService struct{}

func (NopPushService) PushToDevice(ctx context.Context, title, body, category, deviceToken string) error {
	return nil
}
