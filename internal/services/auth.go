package services

import (
	"context"

	"restaurant-system/internal/dto"
	"restaurant-system/pkg/config"
	apperrors "restaurant-system/pkg/errors"
	"restaurant-system/pkg/service"
	"restaurant-system/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
}

type AuthService struct {
	admin      config.AdminConfig
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(admin config.AdminConfig, jwtService service.JWTService, logger *zap.Logger) AuthServiceInterface {
	return &AuthService{admin: admin, jwtService: jwtService, logger: logger}
}

// Login - вход администратора. Пустой ADMIN_PASS - ошибка настройки, а не открытый доступ.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	if s.admin.Pass == "" {
		s.logger.Error("ADMIN_PASS не задан, вход администратора невозможен")
		return nil, apperrors.ErrAdminNotConfigured
	}
	if payload.Login != s.admin.User || !utils.CheckSecret(s.admin.Pass, payload.Password) {
		s.logger.Warn("Неудачная попытка входа администратора", zap.String("login", payload.Login))
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(payload.Login)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponseDTO{
		AccessToken: token,
		ExpiresIn:   int64(s.jwtService.GetAccessTokenTTL().Seconds()),
	}, nil
}
