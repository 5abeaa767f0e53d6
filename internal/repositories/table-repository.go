package repositories

import (
	"context"

	"restaurant-system/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tableFields = `t.id, t.name, t.access_token::text,
	COALESCE(ARRAY(SELECT tw.employee_id FROM table_waiters tw WHERE tw.table_id = t.id ORDER BY tw.employee_id), '{}')`

type TableRepositoryInterface interface {
	Create(ctx context.Context, name string) (*entities.Table, error)
	List(ctx context.Context) ([]entities.Table, error)
	FindByID(ctx context.Context, id uint64) (*entities.Table, error)
	FindByToken(ctx context.Context, token uuid.UUID) (*entities.Table, error)
	SetWaiters(ctx context.Context, tableID uint64, employeeIDs []uint64) error
}

type tableRepository struct{ storage *pgxpool.Pool }

func NewTableRepository(storage *pgxpool.Pool) TableRepositoryInterface {
	return &tableRepository{storage: storage}
}

// Create заводит столик со случайным токеном доступа для QR-кода.
func (r *tableRepository) Create(ctx context.Context, name string) (*entities.Table, error) {
	token := uuid.New()
	table := entities.Table{Name: name, AccessToken: token.String(), WaiterIDs: []uint64{}}
	err := r.storage.QueryRow(ctx,
		"INSERT INTO restaurant_tables (name, access_token) VALUES ($1, $2) RETURNING id",
		table.Name, token,
	).Scan(&table.ID)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &table, nil
}

func (r *tableRepository) List(ctx context.Context) ([]entities.Table, error) {
	query, args, err := psql.Select(tableFields).From("restaurant_tables t").OrderBy("t.id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make([]entities.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, *t)
	}
	return tables, rows.Err()
}

func (r *tableRepository) FindByID(ctx context.Context, id uint64) (*entities.Table, error) {
	return r.findOne(ctx, sq.Eq{"t.id": id})
}

func (r *tableRepository) FindByToken(ctx context.Context, token uuid.UUID) (*entities.Table, error) {
	return r.findOne(ctx, sq.Eq{"t.access_token": token})
}

// SetWaiters полностью заменяет список официантов столика.
func (r *tableRepository) SetWaiters(ctx context.Context, tableID uint64, employeeIDs []uint64) error {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := r.findOneWith(ctx, tx, sq.Eq{"t.id": tableID}); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM table_waiters WHERE table_id = $1", tableID); err != nil {
		return mapPgError(err)
	}
	if len(employeeIDs) > 0 {
		insert := psql.Insert("table_waiters").Columns("table_id", "employee_id")
		for _, id := range employeeIDs {
			insert = insert.Values(tableID, id)
		}
		query, args, err := insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return mapPgError(err)
		}
	}
	return tx.Commit(ctx)
}

func (r *tableRepository) findOne(ctx context.Context, where sq.Eq) (*entities.Table, error) {
	return r.findOneWith(ctx, r.storage, where)
}

func (r *tableRepository) findOneWith(ctx context.Context, q querier, where sq.Eq) (*entities.Table, error) {
	query, args, err := psql.Select(tableFields).From("restaurant_tables t").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}
	t, err := scanTable(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err)
	}
	return t, nil
}

func scanTable(row interface{ Scan(dest ...any) error }) (*entities.Table, error) {
	var t entities.Table
	var waiterIDs []int64
	if err := row.Scan(&t.ID, &t.Name, &t.AccessToken, &waiterIDs); err != nil {
		return nil, err
	}
	t.WaiterIDs = make([]uint64, 0, len(waiterIDs))
	for _, id := range waiterIDs {
		t.WaiterIDs = append(t.WaiterIDs, uint64(id))
	}
	return &t, nil
}
