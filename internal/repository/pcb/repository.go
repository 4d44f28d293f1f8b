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

const pcbColumns = "id, name, serial_number, batch, description, price, " +
	"total_stock, ordered_quantity, manufacturing_date, length, width, " +
	"layer_count, comment, image_ref"

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewPcbRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) db(ctx context.Context) tx.DB {
	return tx.FromContext(ctx, r.pool)
}

func scanPcb(row pgx.Row) (*model.Pcb, error) {
	var p model.Pcb
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.SerialNumber,
		&p.Batch,
		&p.Description,
		&p.Price,
		&p.TotalStock,
		&p.OrderedQuantity,
		&p.ManufacturingDate,
		&p.Length,
		&p.Width,
		&p.LayerCount,
		&p.Comment,
		&p.ImageRef,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPcbNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *model.Pcb) (int64, error) {
	q := r.sb.
		Insert("pcb").
		Columns("name", "serial_number", "batch", "description", "price",
			"total_stock", "ordered_quantity", "manufacturing_date",
			"length", "width", "layer_count", "comment", "image_ref").
		Values(p.Name, p.SerialNumber, p.Batch, p.Description, p.Price,
			p.TotalStock, p.OrderedQuantity, p.ManufacturingDate,
			p.Length, p.Width, p.LayerCount, p.Comment, p.ImageRef).
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

func (r *repository) ByID(ctx context.Context, id int64) (*model.Pcb, error) {
	sqlStr := "SELECT " + pcbColumns + " FROM pcb WHERE id = $1"
	return scanPcb(r.db(ctx).QueryRow(ctx, sqlStr, id))
}

func (r *repository) All(ctx context.Context) ([]model.Pcb, error) {
	sqlStr := "SELECT " + pcbColumns + " FROM pcb ORDER BY name"

	rows, err := r.db(ctx).Query(ctx, sqlStr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Pcb
	for rows.Next() {
		p, err := scanPcb(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}

	return out, rows.Err()
}

func (r *repository) Update(ctx context.Context, p *model.Pcb) error {
	q := r.sb.
		Update("pcb").
		Set("name", p.Name).
		Set("serial_number", p.SerialNumber).
		Set("batch", p.Batch).
		Set("description", p.Description).
		Set("price", p.Price).
		Set("total_stock", p.TotalStock).
		Set("manufacturing_date", p.ManufacturingDate).
		Set("length", p.Length).
		Set("width", p.Width).
		Set("layer_count", p.LayerCount).
		Set("comment", p.Comment).
		Set("image_ref", p.ImageRef).
		Where(sq.Eq{"id": p.ID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return model.ErrPcbNotFound
	}

	return nil
}

func (r *repository) UpdateTotalStock(ctx context.Context, id, totalStock int64) error {
	return r.setColumn(ctx, id, "total_stock", totalStock)
}

// UpdateOrderedQuantity writes the reservation counter. No ledger entry is
// ever recorded for it.
func (r *repository) UpdateOrderedQuantity(ctx context.Context, id, orderedQuantity int64) error {
	return r.setColumn(ctx, id, "ordered_quantity", orderedQuantity)
}

func (r *repository) setColumn(ctx context.Context, id int64, column string, value int64) error {
	q := r.sb.
		Update("pcb").
		Set(column, value).
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
		return model.ErrPcbNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	q := r.sb.
		Delete("pcb").
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
		return model.ErrPcbNotFound
	}

	return nil
}

func (r *repository) LinesByPcbID(ctx context.Context, pcbID int64) ([]model.BomLine, error) {
	q := r.sb.
		Select("pcb_id", "component_id", "component_count", "coordinates").
		From("pcb_components").
		Where(sq.Eq{"pcb_id": pcbID}).
		OrderBy("component_id")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BomLine
	for rows.Next() {
		var l model.BomLine
		if err := rows.Scan(&l.PcbID, &l.ComponentID, &l.ComponentCount, &l.Coordinates); err != nil {
			return nil, err
		}
		out = append(out, l)
	}

	return out, rows.Err()
}

func (r *repository) LineInfoByPcbID(ctx context.Context, pcbID int64) ([]model.BomLineInfo, error) {
	q := r.sb.
		Select("pc.pcb_id", "pc.component_id", "pc.component_count", "pc.coordinates",
			"c.name", "c.type", "c.price").
		From("pcb_components pc").
		Join("components c ON c.id = pc.component_id").
		Where(sq.Eq{"pc.pcb_id": pcbID}).
		OrderBy("c.name")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BomLineInfo
	for rows.Next() {
		var l model.BomLineInfo
		if err := rows.Scan(
			&l.PcbID,
			&l.ComponentID,
			&l.ComponentCount,
			&l.Coordinates,
			&l.ComponentName,
			&l.ComponentType,
			&l.UnitPrice,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}

	return out, rows.Err()
}

// LineByKey returns the BOM line for (pcbID, componentID) or
// model.ErrBomLineNotFound.
func (r *repository) LineByKey(ctx context.Context, pcbID, componentID int64) (*model.BomLine, error) {
	q := r.sb.
		Select("pcb_id", "component_id", "component_count", "coordinates").
		From("pcb_components").
		Where(sq.Eq{"pcb_id": pcbID, "component_id": componentID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var l model.BomLine
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&l.PcbID,
		&l.ComponentID,
		&l.ComponentCount,
		&l.Coordinates,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBomLineNotFound
		}
		return nil, err
	}

	return &l, nil
}

func (r *repository) UpsertLine(ctx context.Context, l *model.BomLine) error {
	q := r.sb.
		Insert("pcb_components").
		Columns("pcb_id", "component_id", "component_count", "coordinates").
		Values(l.PcbID, l.ComponentID, l.ComponentCount, l.Coordinates).
		Suffix("ON CONFLICT (pcb_id, component_id) DO UPDATE SET " +
			"component_count = EXCLUDED.component_count, " +
			"coordinates = EXCLUDED.coordinates")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return err
	}

	return nil
}

func (r *repository) DeleteLine(ctx context.Context, pcbID, componentID int64) error {
	q := r.sb.
		Delete("pcb_components").
		Where(sq.Eq{"pcb_id": pcbID, "component_id": componentID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return model.ErrBomLineNotFound
	}

	return nil
}
