package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenIsNotAccess     = fmt.Errorf("токен не является access-токеном")
	ErrTokenIsNotRefresh    = fmt.Errorf("токен не является refresh-токеном")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrForbidden          = fmt.Errorf("доступ запрещён")

	// Контекст
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID не найден в контексте запроса")
	ErrInvalidUserID           = fmt.Errorf("недопустимый UserID")

	// Общие
	ErrNotFound     = fmt.Errorf("запись не найдена")
	ErrUserNotFound = fmt.Errorf("пользователь не найден")
	ErrBadRequest   = fmt.Errorf("неверный запрос")

	// Жизненный цикл заявок
	ErrStatusTransition = fmt.Errorf("недопустимый переход статуса заявки")
)

// HttpError несёт HTTP-статус и человекочитаемое сообщение для клиента.
// Внутренняя ошибка (Err) попадает только в логи, никогда в ответ.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]string
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]string) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

func Forbidden(message string) *HttpError {
	if message == "" {
		message = ErrForbidden.Error()
	}
	return NewHttpError(http.StatusForbidden, message, ErrForbidden, nil)
}

func NotFound(message string) *HttpError {
	if message == "" {
		message = ErrNotFound.Error()
	}
	return NewHttpError(http.StatusNotFound, message, ErrNotFound, nil)
}

// InvalidInputError — ошибка валидации входных данных.
type InvalidInputError struct {
	Message string
	Fields  map[string]string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

func NewValidationError(fields map[string]string) error {
	return &InvalidInputError{Message: "ошибка валидации данных", Fields: fields}
}
