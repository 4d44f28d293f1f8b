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

func NewEmployeeRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) db(ctx context.Context) tx.DB {
	return tx.FromContext(ctx, r.pool)
}

func (r *repository) Create(ctx context.Context, e *model.Employee) (int64, error) {
	q := r.sb.
		Insert("employees").
		Columns("full_name", "address", "phone", "email", "position",
			"salary", "login", "password_hash", "salt").
		Values(e.FullName, e.Address, e.Phone, e.Email, e.Position,
			e.Salary, e.Login, e.PasswordHash, e.Salt).
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

// CredentialsByLogin returns only what password verification needs.
func (r *repository) CredentialsByLogin(ctx context.Context, login string) (*model.Credentials, error) {
	q := r.sb.
		Select("id", "salt", "password_hash").
		From("employees").
		Where(sq.Eq{"login": login})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var c model.Credentials
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&c.EmployeeID, &c.Salt, &c.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEmployeeNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *repository) UpdateCredentials(ctx context.Context, id int64, login, passwordHash, salt string) error {
	q := r.sb.
		Update("employees").
		Set("login", login).
		Set("password_hash", passwordHash).
		Set("salt", salt).
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
		return model.ErrEmployeeNotFound
	}

	return nil
}
