package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrForbidden          = fmt.Errorf("доступ запрещён")

	// Конфигурация
	ErrAdminNotConfigured  = fmt.Errorf("пароль администратора не настроен")
	ErrStatusNotConfigured = fmt.Errorf("обязательный статус заказа не настроен")

	// Заказы и персонал
	ErrAlreadyAccepted   = fmt.Errorf("заказ уже принят другим официантом")
	ErrStatusUnchanged   = fmt.Errorf("заказ уже в этом статусе")
	ErrWrongRole         = fmt.Errorf("роль сотрудника не подходит для этого действия")
	ErrNotOnShift        = fmt.Errorf("сотрудник не на смене")
	ErrNoRecipients      = fmt.Errorf("нет сотрудников, которым можно отправить уведомление")
	ErrEmptyOrder        = fmt.Errorf("заказ не содержит позиций")
	ErrTelegramNotLinked = fmt.Errorf("telegram не привязан к сотруднику")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrConflict   = fmt.Errorf("запись уже существует или используется")
	ErrBadRequest = fmt.Errorf("неверный запрос")
)

// Кастомные типы ошибок
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError - ошибка, которую контроллер отдаёт клиенту как есть.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, ctx map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: ctx}
}

var statusByError = []struct {
	err  error
	code int
}{
	{ErrNotFound, http.StatusNotFound},
	{ErrConflict, http.StatusConflict},
	{ErrAlreadyAccepted, http.StatusConflict},
	{ErrStatusUnchanged, http.StatusConflict},
	{ErrBadRequest, http.StatusBadRequest},
	{ErrEmptyOrder, http.StatusBadRequest},
	{ErrWrongRole, http.StatusForbidden},
	{ErrNotOnShift, http.StatusForbidden},
	{ErrForbidden, http.StatusForbidden},
	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrInvalidCredentials, http.StatusUnauthorized},
	{ErrInvalidToken, http.StatusUnauthorized},
	{ErrTokenExpired, http.StatusUnauthorized},
	{ErrEmptyAuthHeader, http.StatusUnauthorized},
	{ErrInvalidAuthHeader, http.StatusUnauthorized},
	{ErrInvalidSigningMethod, http.StatusUnauthorized},
	{ErrNoRecipients, http.StatusServiceUnavailable},
}

// StatusCode подбирает HTTP-код для ошибки сервиса. Неизвестное - 500.
func StatusCode(err error) int {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	var inputErr *InvalidInputError
	if errors.As(err, &inputErr) {
		return http.StatusBadRequest
	}
	for _, item := range statusByError {
		if errors.Is(err, item.err) {
			return item.code
		}
	}
	return http.StatusInternalServerError
}
