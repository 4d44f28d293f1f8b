package repository

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
	"github.com/dihow/CircuitBoardWarehouse/internal/repository/tx"
)

const orderColumns = "id, client_id, registration_date, status, total_amount, " +
	"shipping_date, shipping_company, stock_deducted"

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewOrderRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) db(ctx context.Context) tx.DB {
	return tx.FromContext(ctx, r.pool)
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var ord model.Order
	err := row.Scan(
		&ord.ID,
		&ord.ClientID,
		&ord.RegistrationDate,
		&ord.Status,
		&ord.TotalAmount,
		&ord.ShippingDate,
		&ord.ShippingCompany,
		&ord.StockDeducted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}
	return &ord, nil
}

func (r *repository) Create(ctx context.Context, ord *model.Order) (int64, error) {
	q := r.sb.
		Insert("orders").
		Columns("client_id", "registration_date", "status", "total_amount",
			"shipping_date", "shipping_company", "stock_deducted").
		Values(ord.ClientID, ord.RegistrationDate, ord.Status, ord.TotalAmount,
			ord.ShippingDate, ord.ShippingCompany, ord.StockDeducted).
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

func (r *repository) ByID(ctx context.Context, id int64) (*model.Order, error) {
	sqlStr := "SELECT " + orderColumns + " FROM orders WHERE id = $1"
	return scanOrder(r.db(ctx).QueryRow(ctx, sqlStr, id))
}

func (r *repository) All(ctx context.Context) ([]model.Order, error) {
	sqlStr := "SELECT " + orderColumns + " FROM orders ORDER BY registration_date DESC"

	rows, err := r.db(ctx).Query(ctx, sqlStr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ord)
	}

	return out, rows.Err()
}

// ReadyBefore lists READY orders whose shipping date is set and earlier than t.
func (r *repository) ReadyBefore(ctx context.Context, t time.Time) ([]model.Order, error) {
	q := r.sb.
		Select("id", "client_id", "registration_date", "status", "total_amount",
			"shipping_date", "shipping_company", "stock_deducted").
		From("orders").
		Where(sq.Eq{"status": model.StatusReady}).
		Where(sq.NotEq{"shipping_date": nil}).
		Where(sq.Lt{"shipping_date": t}).
		OrderBy("shipping_date")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ord)
	}

	return out, rows.Err()
}

func (r *repository) Update(ctx context.Context, ord *model.Order) error {
	q := r.sb.
		Update("orders").
		Set("client_id", ord.ClientID).
		Set("status", ord.Status).
		Set("shipping_date", ord.ShippingDate).
		Set("shipping_company", ord.ShippingCompany).
		Where(sq.Eq{"id": ord.ID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	return r.setColumn(ctx, id, "status", status)
}

func (r *repository) SetTotalAmount(ctx context.Context, id int64, totalAmount float64) error {
	return r.setColumn(ctx, id, "total_amount", totalAmount)
}

func (r *repository) SetStockDeducted(ctx context.Context, id int64, deducted bool) error {
	return r.setColumn(ctx, id, "stock_deducted", deducted)
}

func (r *repository) setColumn(ctx context.Context, id int64, column string, value any) error {
	q := r.sb.
		Update("orders").
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
		return model.ErrOrderNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	q := r.sb.
		Delete("orders").
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
		return model.ErrOrderNotFound
	}

	return nil
}

func (r *repository) CreateItem(ctx context.Context, item *model.OrderItem) (int64, error) {
	q := r.sb.
		Insert("order_items").
		Columns("order_id", "pcb_id", "quantity", "price_per_pcb").
		Values(item.OrderID, item.PcbID, item.Quantity, item.PricePerPcb).
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

func (r *repository) UpdateItem(ctx context.Context, item *model.OrderItem) error {
	q := r.sb.
		Update("order_items").
		Set("pcb_id", item.PcbID).
		Set("quantity", item.Quantity).
		Set("price_per_pcb", item.PricePerPcb).
		Where(sq.Eq{"id": item.ID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return model.ErrOrderItemNotFound
	}

	return nil
}

func (r *repository) DeleteItem(ctx context.Context, id int64) error {
	q := r.sb.
		Delete("order_items").
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
		return model.ErrOrderItemNotFound
	}

	return nil
}

func (r *repository) ItemByID(ctx context.Context, id int64) (*model.OrderItem, error) {
	q := r.sb.
		Select("id", "order_id", "pcb_id", "quantity", "price_per_pcb").
		From("order_items").
		Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var item model.OrderItem
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&item.ID,
		&item.OrderID,
		&item.PcbID,
		&item.Quantity,
		&item.PricePerPcb,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderItemNotFound
		}
		return nil, err
	}

	return &item, nil
}

func (r *repository) ItemsByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	q := r.sb.
		Select("id", "order_id", "pcb_id", "quantity", "price_per_pcb").
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
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

	var out []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.PcbID,
			&item.Quantity,
			&item.PricePerPcb,
		); err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, rows.Err()
}

func (r *repository) ItemInfoByOrderID(ctx context.Context, orderID int64) ([]model.OrderItemInfo, error) {
	q := r.sb.
		Select("oi.id", "oi.order_id", "oi.pcb_id", "oi.quantity",
			"oi.price_per_pcb", "p.name").
		From("order_items oi").
		Join("pcb p ON p.id = oi.pcb_id").
		Where(sq.Eq{"oi.order_id": orderID}).
		OrderBy("oi.id")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OrderItemInfo
	for rows.Next() {
		var info model.OrderItemInfo
		if err := rows.Scan(
			&info.ID,
			&info.OrderID,
			&info.PcbID,
			&info.Quantity,
			&info.PricePerPcb,
			&info.PcbName,
		); err != nil {
			return nil, err
		}
		out = append(out, info)
	}

	return out, rows.Err()
}

// ItemByOrderAndPcb returns the order's line for the given board, or
// model.ErrOrderItemNotFound when the board is not in the cart yet.
func (r *repository) ItemByOrderAndPcb(ctx context.Context, orderID, pcbID int64) (*model.OrderItem, error) {
	q := r.sb.
		Select("id", "order_id", "pcb_id", "quantity", "price_per_pcb").
		From("order_items").
		Where(sq.Eq{"order_id": orderID, "pcb_id": pcbID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var item model.OrderItem
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&item.ID,
		&item.OrderID,
		&item.PcbID,
		&item.Quantity,
		&item.PricePerPcb,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderItemNotFound
		}
		return nil, err
	}

	return &item, nil
}
