package services

import (
	"context"

	"restaurant-system/internal/entities"
	"restaurant-system/internal/repositories"
	apperrors "restaurant-system/pkg/errors"
)

type ProductServiceInterface interface {
	List(ctx context.Context) ([]entities.Product, error)
	SetArea(ctx context.Context, id uint64, area entities.PrepArea) error
}

type ProductService struct {
	productRepo repositories.ProductRepositoryInterface
}

func NewProductService(productRepo repositories.ProductRepositoryInterface) ProductServiceInterface {
	return &ProductService{productRepo: productRepo}
}

func (s *ProductService) List(ctx context.Context) ([]entities.Product, error) {
	return s.productRepo.List(ctx, false)
}

// SetArea переносит блюдо в другой цех; новые тикеты пойдут уже туда.
func (s *ProductService) SetArea(ctx context.Context, id uint64, area entities.PrepArea) error {
	if !area.Valid() {
		return apperrors.NewInvalidInputError("неизвестный цех: %s", area)
	}
	return s.productRepo.UpdateArea(ctx, id, area)
}
