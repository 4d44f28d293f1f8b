package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
	"github.com/dihow/CircuitBoardWarehouse/internal/repository/tx"
)

// The movements table is append-only: this repository has no update and no
// delete.
type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewMovementRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) db(ctx context.Context) tx.DB {
	return tx.FromContext(ctx, r.pool)
}

func (r *repository) Create(ctx context.Context, m *model.Movement) (int64, error) {
	q := r.sb.
		Insert("movements").
		Columns("movement_type", "product_type", "description", "value", "occurred_at").
		Values(m.Type, m.ProductType, m.Description, m.Value, m.OccurredAt).
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

func (r *repository) All(ctx context.Context) ([]model.Movement, error) {
	q := r.sb.
		Select("id", "movement_type", "product_type", "description", "value", "occurred_at").
		From("movements").
		OrderBy("occurred_at DESC", "id DESC")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Movement
	for rows.Next() {
		var m model.Movement
		if err := rows.Scan(
			&m.ID,
			&m.Type,
			&m.ProductType,
			&m.Description,
			&m.Value,
			&m.OccurredAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}
