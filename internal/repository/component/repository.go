package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
	"github.com/dihow/CircuitBoardWarehouse/internal/repository/tx"
)

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewComponentRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) db(ctx context.Context) tx.DB {
	return tx.FromContext(ctx, r.pool)
}

func (r *repository) Create(ctx context.Context, c *model.Component) (int64, error) {
	q := r.sb.
		Insert("components").
		Columns("name", "manufacturer", "price", "type", "stock_quantity").
		Values(c.Name, c.Manufacturer, c.Price, c.Type, c.StockQuantity).
		Suffix("RETURNING id")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

func (r *repository) ByID(ctx context.Context, id int64) (*model.Component, error) {
	q := r.sb.
		Select("id", "name", "manufacturer", "price", "type", "stock_quantity").
		From("components").
		Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var c model.Component
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&c.ID,
		&c.Name,
		&c.Manufacturer,
		&c.Price,
		&c.Type,
		&c.StockQuantity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrComponentNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *repository) All(ctx context.Context) ([]model.Component, error) {
	q := r.sb.
		Select("id", "name", "manufacturer", "price", "type", "stock_quantity").
		From("components").
		OrderBy("name")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Component
	for rows.Next() {
		var c model.Component
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Manufacturer,
			&c.Price,
			&c.Type,
			&c.StockQuantity,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

func (r *repository) Update(ctx context.Context, c *model.Component) error {
	q := r.sb.
		Update("components").
		Set("name", c.Name).
		Set("manufacturer", c.Manufacturer).
		Set("price", c.Price).
		Set("type", c.Type).
		Where(sq.Eq{"id": c.ID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return model.ErrComponentNotFound
	}

	return nil
}

// UpdateStock writes the new shelf quantity. Ledger recording is the stock
// service's job, not this layer's.
func (r *repository) UpdateStock(ctx context.Context, id, newStock int64) error {
	q := r.sb.
		Update("components").
		Set("stock_quantity", newStock).
		Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return model.ErrComponentNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	q := r.sb.
		Delete("components").
		Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return model.ErrComponentNotFound
	}

	return nil
}

func (r *repository) SpecsByComponentID(ctx context.Context, componentID int64) ([]model.ComponentSpecification, error) {
	q := r.sb.
		Select("id", "component_id", "name", "value").
		From("component_specifications").
		Where(sq.Eq{"component_id": componentID}).
		OrderBy("id")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ComponentSpecification
	for rows.Next() {
		var s model.ComponentSpecification
		if err := rows.Scan(&s.ID, &s.ComponentID, &s.Name, &s.Value); err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

// ReplaceSpecs drops the component's whole specification bag and writes the
// given one. Callers wrap it in a transaction together with the component row.
func (r *repository) ReplaceSpecs(ctx context.Context, componentID int64, specs []model.SpecificationParams) error {
	del := r.sb.
		Delete("component_specifications").
		Where(sq.Eq{"component_id": componentID})

	sqlStr, args, err := del.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return err
	}

	if len(specs) == 0 {
		return nil
	}

	ins := r.sb.
		Insert("component_specifications").
		Columns("component_id", "name", "value")
	for _, s := range specs {
		ins = ins.Values(componentID, s.Name, s.Value)
	}

	sqlStr, args, err = ins.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return err
	}

	return nil
}
