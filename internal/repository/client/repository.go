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

func NewClientRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) db(ctx context.Context) tx.DB {
	return tx.FromContext(ctx, r.pool)
}

func (r *repository) Create(ctx context.Context, c *model.Client) (int64, error) {
	q := r.sb.
		Insert("clients").
		Columns("type", "phone", "email").
		Values(c.Type, c.Phone, c.Email).
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

func (r *repository) ByID(ctx context.Context, id int64) (*model.Client, error) {
	q := r.sb.
		Select("id", "type", "phone", "email").
		From("clients").
		Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var c model.Client
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&c.ID, &c.Type, &c.Phone, &c.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrClientNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *repository) All(ctx context.Context) ([]model.Client, error) {
	q := r.sb.
		Select("id", "type", "phone", "email").
		From("clients").
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

	var out []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Type, &c.Phone, &c.Email); err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

func (r *repository) Update(ctx context.Context, c *model.Client) error {
	q := r.sb.
		Update("clients").
		Set("type", c.Type).
		Set("phone", c.Phone).
		Set("email", c.Email).
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
		return model.ErrClientNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	q := r.sb.
		Delete("clients").
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
		return model.ErrClientNotFound
	}

	return nil
}

func (r *repository) PersonByClientID(ctx context.Context, clientID int64) (*model.PhysicalPerson, error) {
	q := r.sb.
		Select("client_id", "full_name", "address", "age").
		From("physical_persons").
		Where(sq.Eq{"client_id": clientID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var p model.PhysicalPerson
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&p.ClientID, &p.FullName, &p.Address, &p.Age)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrClientNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) EntityByClientID(ctx context.Context, clientID int64) (*model.LegalEntity, error) {
	q := r.sb.
		Select("client_id", "name", "inn", "contact_person", "legal_address", "actual_address").
		From("legal_entities").
		Where(sq.Eq{"client_id": clientID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var e model.LegalEntity
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&e.ClientID,
		&e.Name,
		&e.INN,
		&e.ContactPerson,
		&e.LegalAddress,
		&e.ActualAddress,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrClientNotFound
		}
		return nil, err
	}

	return &e, nil
}

// UpsertPerson writes the PHYSICAL detail record for a client.
func (r *repository) UpsertPerson(ctx context.Context, p *model.PhysicalPerson) error {
	q := r.sb.
		Insert("physical_persons").
		Columns("client_id", "full_name", "address", "age").
		Values(p.ClientID, p.FullName, p.Address, p.Age).
		Suffix("ON CONFLICT (client_id) DO UPDATE SET " +
			"full_name = EXCLUDED.full_name, " +
			"address = EXCLUDED.address, " +
			"age = EXCLUDED.age")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return err
	}

	return nil
}

// UpsertEntity writes the LEGAL detail record for a client.
func (r *repository) UpsertEntity(ctx context.Context, e *model.LegalEntity) error {
	q := r.sb.
		Insert("legal_entities").
		Columns("client_id", "name", "inn", "contact_person", "legal_address", "actual_address").
		Values(e.ClientID, e.Name, e.INN, e.ContactPerson, e.LegalAddress, e.ActualAddress).
		Suffix("ON CONFLICT (client_id) DO UPDATE SET " +
			"name = EXCLUDED.name, " +
			"inn = EXCLUDED.inn, " +
			"contact_person = EXCLUDED.contact_person, " +
			"legal_address = EXCLUDED.legal_address, " +
			"actual_address = EXCLUDED.actual_address")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return err
	}

	return nil
}

func (r *repository) DeletePerson(ctx context.Context, clientID int64) error {
	return r.deleteDetail(ctx, "physical_persons", clientID)
}

func (r *repository) DeleteEntity(ctx context.Context, clientID int64) error {
	return r.deleteDetail(ctx, "legal_entities", clientID)
}

// deleteDetail tolerates a missing row: swapping a client's type removes the
// record of the other kind whether or not it exists.
func (r *repository) deleteDetail(ctx context.Context, table string, clientID int64) error {
	q := r.sb.
		Delete(table).
		Where(sq.Eq{"client_id": clientID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return err
	}

	return nil
}
