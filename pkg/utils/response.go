package utils

import (
	"errors"
	"net/http"

	apperrors "restaurant-system/pkg/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HttpResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	var response *HttpResponse = &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	return ctx.JSON(
		code,
		response,
	)
}

// ErrorResponse отдаёт ошибку в общем формате. 5xx логируются, 4xx - нет.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := apperrors.StatusCode(err)
	message := err.Error()

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		message = httpErr.Message
	}

	if code >= http.StatusInternalServerError && logger != nil {
		logger.Error("Ошибка обработки запроса",
			zap.String("path", ctx.Path()),
			zap.Int("code", code),
			zap.Error(err),
		)
		if httpErr == nil && code == http.StatusInternalServerError {
			message = "Внутренняя ошибка сервера"
		}
	}

	var response *HttpResponse = &HttpResponse{
		Status:  false,
		Body:    struct{}{},
		Message: message,
	}

	return ctx.JSON(
		code,
		response,
	)
}
