package utils

import (
	"database/sql"
	"net/http"
	"strconv"

	apperrors "restaurant-system/pkg/errors"

	"github.com/labstack/echo/v4"
)

// Uint64PtrToNullInt64 - nil и 0 пишутся в БД как NULL.
func Uint64PtrToNullInt64(id *uint64) sql.NullInt64 {
	if id == nil || *id == 0 {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}

func NullInt64ToUint64Ptr(n sql.NullInt64) *uint64 {
	if !n.Valid {
		return nil
	}
	v := uint64(n.Int64)
	return &v
}

func NullStringToString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// ParseIDParam читает положительный ID из пути. Ошибка уже готова для ErrorResponse.
func ParseIDParam(c echo.Context, name string) (uint64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный ID",
			err,
			map[string]interface{}{"param": raw},
		)
	}
	return id, nil
}
