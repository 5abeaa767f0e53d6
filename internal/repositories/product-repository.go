package repositories

import (
	"context"
	"fmt"

	"restaurant-system/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const productFields = "id, name, description, price::text, category, is_active, preparation_area"

type ProductRepositoryInterface interface {
	AreasByProductNames(ctx context.Context, names []string) (map[string]entities.PrepArea, error)
	List(ctx context.Context, onlyActive bool) ([]entities.Product, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]entities.Product, error)
	UpdateArea(ctx context.Context, id uint64, area entities.PrepArea) error
}

type productRepository struct{ storage *pgxpool.Pool }

func NewProductRepository(storage *pgxpool.Pool) ProductRepositoryInterface {
	return &productRepository{storage: storage}
}

// AreasByProductNames - цех для каждого найденного названия. Неизвестных названий в ответе нет.
func (r *productRepository) AreasByProductNames(ctx context.Context, names []string) (map[string]entities.PrepArea, error) {
	areas := make(map[string]entities.PrepArea, len(names))
	if len(names) == 0 {
		return areas, nil
	}
	query, args, err := psql.Select("name", "preparation_area").
		From("products").
		Where(sq.Eq{"name": names}).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, area string
		if err := rows.Scan(&name, &area); err != nil {
			return nil, err
		}
		areas[name] = entities.PrepArea(area)
	}
	return areas, rows.Err()
}

func (r *productRepository) List(ctx context.Context, onlyActive bool) ([]entities.Product, error) {
	builder := psql.Select(productFields).From("products").OrderBy("category", "name")
	if onlyActive {
		builder = builder.Where(sq.Eq{"is_active": true})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	return r.query(ctx, query, args...)
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []uint64) ([]entities.Product, error) {
	if len(ids) == 0 {
		return []entities.Product{}, nil
	}
	query, args, err := psql.Select(productFields).From("products").Where(sq.Eq{"id": ids}).OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}
	return r.query(ctx, query, args...)
}

func (r *productRepository) UpdateArea(ctx context.Context, id uint64, area entities.PrepArea) error {
	return execOne(ctx, r.storage, "UPDATE products SET preparation_area = $2 WHERE id = $1", id, string(area))
}

func (r *productRepository) query(ctx context.Context, query string, args ...interface{}) ([]entities.Product, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]entities.Product, 0)
	for rows.Next() {
		var p entities.Product
		var price, area string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Category, &p.IsActive, &area); err != nil {
			return nil, err
		}
		if p.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("товар %d: неверная цена %q: %w", p.ID, price, err)
		}
		p.Area = entities.PrepArea(area)
		products = append(products, p)
	}
	return products, rows.Err()
}
