package services

import (
	"context"
	"errors"
	"strings"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/entities"
	"restaurant-system/internal/repositories"
	apperrors "restaurant-system/pkg/errors"
	"restaurant-system/pkg/utils"

	"go.uber.org/zap"
)

type EmployeeServiceInterface interface {
	List(ctx context.Context) ([]entities.Employee, error)
	Create(ctx context.Context, payload dto.CreateEmployeeDTO) (*entities.Employee, error)
	SetShift(ctx context.Context, id uint64, onShift bool) (*entities.Employee, error)
	ListRoles(ctx context.Context) ([]entities.Role, error)

	// Для бота персонала.
	FindByChat(ctx context.Context, chatID int64) (*entities.Employee, error)
	Login(ctx context.Context, chatID int64, phone string, capability entities.Capability) (*entities.Employee, error)
	StartShift(ctx context.Context, chatID int64) (*entities.Employee, error)
	EndShift(ctx context.Context, chatID int64) (*entities.Employee, error)
	Logout(ctx context.Context, chatID int64) error
}

type EmployeeService struct {
	employeeRepo repositories.EmployeeRepositoryInterface
	roleRepo     repositories.RoleRepositoryInterface
	logger       *zap.Logger
}

func NewEmployeeService(
	employeeRepo repositories.EmployeeRepositoryInterface,
	roleRepo repositories.RoleRepositoryInterface,
	logger *zap.Logger,
) EmployeeServiceInterface {
	return &EmployeeService{employeeRepo: employeeRepo, roleRepo: roleRepo, logger: logger}
}

func (s *EmployeeService) List(ctx context.Context) ([]entities.Employee, error) {
	return s.employeeRepo.List(ctx)
}

func (s *EmployeeService) ListRoles(ctx context.Context) ([]entities.Role, error) {
	return s.roleRepo.List(ctx)
}

// Create хранит телефон нормализованным: по нему сотрудник входит в бота.
func (s *EmployeeService) Create(ctx context.Context, payload dto.CreateEmployeeDTO) (*entities.Employee, error) {
	phone := utils.NormalizePhone(payload.Phone)
	if phone == "" {
		return nil, apperrors.NewInvalidInputError("неверный номер телефона: %s", payload.Phone)
	}
	if _, err := s.roleRepo.FindByID(ctx, payload.RoleID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInvalidInputError("роль %d не существует", payload.RoleID)
		}
		return nil, err
	}

	employee := &entities.Employee{
		FullName: strings.TrimSpace(payload.FullName),
		Phone:    phone,
		RoleID:   payload.RoleID,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	s.logger.Info("Создан сотрудник", zap.Uint64("id", employee.ID), zap.String("role", employee.Role.Name))
	return employee, nil
}

func (s *EmployeeService) SetShift(ctx context.Context, id uint64, onShift bool) (*entities.Employee, error) {
	if err := s.employeeRepo.SetShift(ctx, id, onShift); err != nil {
		return nil, err
	}
	return s.employeeRepo.FindEmployee(ctx, id)
}

// FindByChat - сотрудник, привязанный к чату. Нет привязки - ErrTelegramNotLinked.
func (s *EmployeeService) FindByChat(ctx context.Context, chatID int64) (*entities.Employee, error) {
	employee, err := s.employeeRepo.FindByTelegramID(ctx, chatID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrTelegramNotLinked
	}
	return employee, err
}

// Login привязывает чат к сотруднику с этим телефоном, если его роль даёт выбранную возможность.
func (s *EmployeeService) Login(ctx context.Context, chatID int64, phone string, capability entities.Capability) (*entities.Employee, error) {
	normalized := utils.NormalizePhone(phone)
	if normalized == "" {
		return nil, apperrors.NewInvalidInputError("неверный номер телефона")
	}
	employee, err := s.employeeRepo.FindByPhone(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if !employee.Role.Has(capability) {
		s.logger.Warn("Вход в бота с чужой ролью",
			zap.Uint64("employeeID", employee.ID),
			zap.String("capability", string(capability)),
		)
		return nil, apperrors.ErrWrongRole
	}
	if err := s.employeeRepo.LinkTelegram(ctx, employee.ID, chatID); err != nil {
		return nil, err
	}
	employee.TelegramUserID = chatID
	s.logger.Info("Сотрудник вошёл в бота", zap.Uint64("employeeID", employee.ID), zap.Int64("chatID", chatID))
	return employee, nil
}

func (s *EmployeeService) StartShift(ctx context.Context, chatID int64) (*entities.Employee, error) {
	return s.setShiftByChat(ctx, chatID, true)
}

func (s *EmployeeService) EndShift(ctx context.Context, chatID int64) (*entities.Employee, error) {
	return s.setShiftByChat(ctx, chatID, false)
}

func (s *EmployeeService) setShiftByChat(ctx context.Context, chatID int64, onShift bool) (*entities.Employee, error) {
	employee, err := s.FindByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if err := s.employeeRepo.SetShift(ctx, employee.ID, onShift); err != nil {
		return nil, err
	}
	employee.IsOnShift = onShift
	s.logger.Info("Смена сотрудника", zap.Uint64("employeeID", employee.ID), zap.Bool("onShift", onShift))
	return employee, nil
}

func (s *EmployeeService) Logout(ctx context.Context, chatID int64) error {
	err := s.employeeRepo.Logout(ctx, chatID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.ErrTelegramNotLinked
	}
	return err
}
