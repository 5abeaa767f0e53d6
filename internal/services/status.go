package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/entities"
	"restaurant-system/internal/repositories"
	apperrors "restaurant-system/pkg/errors"

	"go.uber.org/zap"
)

const statusCacheKey = "order_statuses:all"

type StatusServiceInterface interface {
	ListStatuses(ctx context.Context) ([]entities.OrderStatus, error)
	FindStatus(ctx context.Context, id uint64) (*entities.OrderStatus, error)
	FindByCode(ctx context.Context, code string) (*entities.OrderStatus, error)
	RequireByCode(ctx context.Context, code string) (*entities.OrderStatus, error)
	CreateStatus(ctx context.Context, payload dto.CreateStatusDTO) (*entities.OrderStatus, error)
	UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateStatusDTO) (*entities.OrderStatus, error)
	DeleteStatus(ctx context.Context, id uint64) error
}

// StatusService - каталог статусов. Список целиком кешируется в Redis,
// любая правка каталога сбрасывает кеш.
type StatusService struct {
	statusRepository repositories.StatusRepositoryInterface
	cache            repositories.CacheRepositoryInterface
	cacheTTL         time.Duration
	logger           *zap.Logger
}

func NewStatusService(
	statusRepository repositories.StatusRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *StatusService {
	return &StatusService{
		statusRepository: statusRepository,
		cache:            cache,
		cacheTTL:         cacheTTL,
		logger:           logger,
	}
}

func (s *StatusService) ListStatuses(ctx context.Context) ([]entities.OrderStatus, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	statuses, err := s.statusRepository.ListStatuses(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, statuses)
	return statuses, nil
}

func (s *StatusService) FindStatus(ctx context.Context, id uint64) (*entities.OrderStatus, error) {
	return s.find(ctx, func(st entities.OrderStatus) bool { return st.ID == id })
}

func (s *StatusService) FindByCode(ctx context.Context, code string) (*entities.OrderStatus, error) {
	return s.find(ctx, func(st entities.OrderStatus) bool { return st.Code == code })
}

// RequireByCode - статус, на который опирается логика заказов. Его отсутствие - ошибка настройки.
func (s *StatusService) RequireByCode(ctx context.Context, code string) (*entities.OrderStatus, error) {
	status, err := s.FindByCode(ctx, code)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Error("Обязательный статус не найден в каталоге", zap.String("code", code))
		return nil, fmt.Errorf("%w: %q", apperrors.ErrStatusNotConfigured, code)
	}
	return status, err
}

func (s *StatusService) CreateStatus(ctx context.Context, payload dto.CreateStatusDTO) (*entities.OrderStatus, error) {
	status := payload.ToEntity()
	if err := s.statusRepository.CreateStatus(ctx, &status); err != nil {
		s.logger.Error("ошибка при создании статуса", zap.Error(err))
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("Статус успешно создан", zap.Uint64("id", status.ID), zap.String("code", status.Code))
	return &status, nil
}

func (s *StatusService) UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateStatusDTO) (*entities.OrderStatus, error) {
	status, err := s.statusRepository.FindStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	payload.Apply(status)
	if err := s.statusRepository.UpdateStatus(ctx, status); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return status, nil
}

func (s *StatusService) DeleteStatus(ctx context.Context, id uint64) error {
	if err := s.statusRepository.DeleteStatus(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *StatusService) find(ctx context.Context, match func(entities.OrderStatus) bool) (*entities.OrderStatus, error) {
	statuses, err := s.ListStatuses(ctx)
	if err != nil {
		return nil, err
	}
	for _, st := range statuses {
		if match(st) {
			found := st
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// Ошибки Redis не ломают запрос: идём в базу.
func (s *StatusService) fromCache(ctx context.Context) ([]entities.OrderStatus, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, statusCacheKey)
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			s.logger.Warn("Кеш статусов недоступен", zap.Error(err))
		}
		return nil, false
	}
	var statuses []entities.OrderStatus
	if err := json.Unmarshal([]byte(raw), &statuses); err != nil {
		s.logger.Warn("Повреждённый кеш статусов", zap.Error(err))
		return nil, false
	}
	return statuses, true
}

func (s *StatusService) toCache(ctx context.Context, statuses []entities.OrderStatus) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(statuses)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statusCacheKey, raw, s.cacheTTL); err != nil {
		s.logger.Warn("Не удалось сохранить кеш статусов", zap.Error(err))
	}
}

func (s *StatusService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statusCacheKey); err != nil {
		s.logger.Warn("Не удалось сбросить кеш статусов", zap.Error(err))
	}
}
