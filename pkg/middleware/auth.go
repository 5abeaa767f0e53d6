package middleware

import (
	"context"
	"strings"

	"restaurant-system/pkg/contextkeys"
	apperrors "restaurant-system/pkg/errors"
	"restaurant-system/pkg/service"
	"restaurant-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth пропускает только запросы с валидным токеном администратора.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		return m.authenticate(c, next, parts[1])
	}
}

// QueryToken - для websocket: браузер не умеет ставить заголовок, токен идёт в ?token=.
func (m *AuthMiddleware) QueryToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.QueryParam("token")
		if token == "" {
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}
		return m.authenticate(c, next, token)
	}
}

func (m *AuthMiddleware) authenticate(c echo.Context, next echo.HandlerFunc, token string) error {
	claims, err := m.jwtService.ValidateToken(token)
	if err != nil {
		m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
		return utils.ErrorResponse(c, err, m.logger)
	}

	ctx := context.WithValue(c.Request().Context(), contextkeys.AdminLoginKey, claims.Login)
	c.SetRequest(c.Request().WithContext(ctx))
	return next(c)
}

// AdminLogin достаёт логин администратора, положенный Auth.
func AdminLogin(ctx context.Context) (string, bool) {
	login, ok := ctx.Value(contextkeys.AdminLoginKey).(string)
	return login, ok && login != ""
}
