package repositories

import (
	"context"

	"restaurant-system/internal/entities"

	"github.com/jackc/pgx/v5/pgxpool"
)

const roleFields = `id, name, can_manage_orders, can_be_assigned, can_serve_tables,
	can_receive_kitchen_orders, can_receive_bar_orders`

type RoleRepositoryInterface interface {
	List(ctx context.Context) ([]entities.Role, error)
	FindByID(ctx context.Context, id uint64) (*entities.Role, error)
}

type RoleRepository struct {
	storage *pgxpool.Pool
}

func NewRoleRepository(storage *pgxpool.Pool) RoleRepositoryInterface {
	return &RoleRepository{storage: storage}
}

func scanRole(row interface{ Scan(dest ...any) error }) (entities.Role, error) {
	var role entities.Role
	err := row.Scan(&role.ID, &role.Name, &role.CanManageOrders, &role.CanBeAssigned, &role.CanServeTables,
		&role.CanReceiveKitchenOrders, &role.CanReceiveBarOrders)
	return role, err
}

func (r *RoleRepository) List(ctx context.Context) ([]entities.Role, error) {
	rows, err := r.storage.Query(ctx, "SELECT "+roleFields+" FROM roles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]entities.Role, 0)
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) FindByID(ctx context.Context, id uint64) (*entities.Role, error) {
	role, err := scanRole(r.storage.QueryRow(ctx, "SELECT "+roleFields+" FROM roles WHERE id = $1", id))
	if err != nil {
		return nil, mapPgError(err)
	}
	return &role, nil
}
