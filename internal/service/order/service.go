// Package order runs the order and cart lifecycle: reservation of board
// stock on item changes, cached order totals, and the one-shot stock
// deduction when an order reaches a terminal status.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dihow/CircuitBoardWarehouse/internal/logger"
	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, ord *model.Order) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Order, error)
	All(ctx context.Context) ([]model.Order, error)
	Update(ctx context.Context, ord *model.Order) error
	SetStatus(ctx context.Context, id int64, status model.OrderStatus) error
	SetTotalAmount(ctx context.Context, id int64, totalAmount float64) error
	SetStockDeducted(ctx context.Context, id int64, deducted bool) error
	Delete(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, item *model.OrderItem) (int64, error)
	UpdateItem(ctx context.Context, item *model.OrderItem) error
	DeleteItem(ctx context.Context, id int64) error
	ItemByID(ctx context.Context, id int64) (*model.OrderItem, error)
	ItemsByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	ItemInfoByOrderID(ctx context.Context, orderID int64) ([]model.OrderItemInfo, error)
	ItemByOrderAndPcb(ctx context.Context, orderID, pcbID int64) (*model.OrderItem, error)
}

type PcbRepository interface {
	ByID(ctx context.Context, id int64) (*model.Pcb, error)
	UpdateOrderedQuantity(ctx context.Context, id, orderedQuantity int64) error
}

type Stock interface {
	SetPcbStock(ctx context.Context, pcbID, newTotalStock int64) error
}

type TxManager interface {
	Serializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Notifier interface {
	Publish(ev model.ChangeEvent)
}

type service struct {
	repo     OrderRepository
	pcbs     PcbRepository
	stock    Stock
	txm      TxManager
	notifier Notifier
	now      func() time.Time
}

func NewOrderService(
	repo OrderRepository,
	pcbs PcbRepository,
	stock Stock,
	txm TxManager,
	notifier Notifier,
) *service {
	return &service{
		repo:     repo,
		pcbs:     pcbs,
		stock:    stock,
		txm:      txm,
		notifier: notifier,
		now:      time.Now,
	}
}

func validStatus(s model.OrderStatus) bool {
	switch s {
	case model.StatusPaid, model.StatusReady, model.StatusShipped:
		return true
	}
	return false
}

func (svc *service) Create(ctx context.Context, params model.CreateOrderParams) (int64, error) {
	const op = "order.service.Create"

	status := params.Status
	if status == "" {
		status = model.StatusPaid
	}
	if params.ClientID == 0 || !validStatus(status) {
		return 0, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	id, err := svc.repo.Create(ctx, &model.Order{
		ClientID:         params.ClientID,
		RegistrationDate: svc.now(),
		Status:           status,
		TotalAmount:      0,
		ShippingDate:     params.ShippingDate,
		ShippingCompany:  params.ShippingCompany,
	})
	if err != nil {
		logger.Error(ctx, "create order", logger.Int64("client_id", params.ClientID), logger.ErrorF(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	svc.notifier.Publish(model.NewChangeEvent(model.CollectionOrders, id, model.ActionCreated))

	return id, nil
}

// Update applies the order edit. The first transition into READY or SHIPPED
// deducts board stock for every item; the stock_deducted flag makes the
// deduction run at most once over the order's lifetime.
func (svc *service) Update(ctx context.Context, params model.UpdateOrderParams) error {
	const op = "order.service.Update"

	if !validStatus(params.Status) {
		return fmt.Errorf("%s: unknown status %q: %w", op, params.Status, model.ErrValidation)
	}

	var deducted bool
	err := svc.txm.Serializable(ctx, func(ctx context.Context) error {
		existing, err := svc.repo.ByID(ctx, params.ID)
		if err != nil {
			return err
		}

		if err := svc.repo.Update(ctx, &model.Order{
			ID:              params.ID,
			ClientID:        params.ClientID,
			Status:          params.Status,
			ShippingDate:    params.ShippingDate,
			ShippingCompany: params.ShippingCompany,
		}); err != nil {
			return err
		}

		if params.Status.IsTerminal() && !existing.StockDeducted {
			if err := svc.deductStock(ctx, params.ID); err != nil {
				return err
			}
			deducted = true
		}

		return nil
	})
	if err != nil {
		logger.Error(ctx, "update order", logger.Int64("order_id", params.ID), logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.publishOrderChange(params.ID, deducted)

	return nil
}

// SetStatus changes only the status, with the same one-shot deduction rule as
// Update. The status scheduler promotes orders through this path.
func (svc *service) SetStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	const op = "order.service.SetStatus"

	if !validStatus(status) {
		return fmt.Errorf("%s: unknown status %q: %w", op, status, model.ErrValidation)
	}

	var deducted bool
	err := svc.txm.Serializable(ctx, func(ctx context.Context) error {
		existing, err := svc.repo.ByID(ctx, id)
		if err != nil {
			return err
		}

		if err := svc.repo.SetStatus(ctx, id, status); err != nil {
			return err
		}

		if status.IsTerminal() && !existing.StockDeducted {
			if err := svc.deductStock(ctx, id); err != nil {
				return err
			}
			deducted = true
		}

		return nil
	})
	if err != nil {
		logger.Error(ctx, "set order status",
			logger.Int64("order_id", id),
			logger.String("status", string(status)),
			logger.ErrorF(err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.publishOrderChange(id, deducted)

	return nil
}

// deductStock withdraws every item's quantity from its board's shelf stock
// and releases the matching reservation. Runs inside the caller's
// transaction; any short board aborts the whole transition.
func (svc *service) deductStock(ctx context.Context, orderID int64) error {
	items, err := svc.repo.ItemsByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	for _, item := range items {
		p, err := svc.pcbs.ByID(ctx, item.PcbID)
		if err != nil {
			return err
		}

		if p.TotalStock < item.Quantity {
			return model.NewInsufficientStock(p.Name, item.Quantity-p.TotalStock)
		}

		if err := svc.stock.SetPcbStock(ctx, p.ID, p.TotalStock-item.Quantity); err != nil {
			return err
		}

		if err := svc.pcbs.UpdateOrderedQuantity(ctx, p.ID, p.OrderedQuantity-item.Quantity); err != nil {
			return err
		}
	}

	return svc.repo.SetStockDeducted(ctx, orderID, true)
}

// AddOrUpdateItem is the single cart mutation entry point. Without ItemID it
// adds a line, merging into an existing line for the same board; with ItemID
// it replaces that line, possibly moving it to another board. The board's
// reservation moves by the net delta and the order total is recomputed in
// full, all in one transaction.
func (svc *service) AddOrUpdateItem(ctx context.Context, params model.AddOrUpdateItemParams) (*model.OrderItem, error) {
	const op = "order.service.AddOrUpdateItem"

	if params.Quantity <= 0 {
		return nil, fmt.Errorf("%s: quantity %d: %w", op, params.Quantity, model.ErrValidation)
	}

	var result *model.OrderItem
	err := svc.txm.Serializable(ctx, func(ctx context.Context) error {
		ord, err := svc.repo.ByID(ctx, params.OrderID)
		if err != nil {
			return err
		}
		if ord.Status.IsTerminal() {
			return fmt.Errorf("order %d is %s: %w", ord.ID, ord.Status, model.ErrInvalidState)
		}

		if params.ItemID != nil {
			result, err = svc.replaceItem(ctx, params)
		} else {
			result, err = svc.addItem(ctx, params)
		}
		if err != nil {
			return err
		}

		return svc.recomputeTotal(ctx, params.OrderID)
	})
	if err != nil {
		logger.Error(ctx, "add or update order item",
			logger.Int64("order_id", params.OrderID),
			logger.Int64("pcb_id", params.PcbID),
			logger.ErrorF(err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	svc.notifier.Publish(model.NewChangeEvent(model.CollectionOrderItems, result.ID, model.ActionUpdated))
	svc.notifier.Publish(model.NewChangeEvent(model.CollectionOrders, params.OrderID, model.ActionUpdated))
	svc.notifier.Publish(model.NewChangeEvent(model.CollectionPcbs, params.PcbID, model.ActionUpdated))

	return result, nil
}

func (svc *service) addItem(ctx context.Context, params model.AddOrUpdateItemParams) (*model.OrderItem, error) {
	p, err := svc.pcbs.ByID(ctx, params.PcbID)
	if err != nil {
		return nil, err
	}

	available := p.TotalStock - p.OrderedQuantity
	if params.Quantity > available {
		return nil, model.NewInsufficientStock(p.Name, params.Quantity-available)
	}

	existing, err := svc.repo.ItemByOrderAndPcb(ctx, params.OrderID, params.PcbID)
	switch {
	case err == nil:
		// Same board already in the cart: the line grows by the increment.
		existing.Quantity += params.Quantity
		existing.PricePerPcb = p.Price
		if err := svc.repo.UpdateItem(ctx, existing); err != nil {
			return nil, err
		}
	case errors.Is(err, model.ErrOrderItemNotFound):
		existing = &model.OrderItem{
			OrderID:     params.OrderID,
			PcbID:       params.PcbID,
			Quantity:    params.Quantity,
			PricePerPcb: p.Price,
		}
		id, err := svc.repo.CreateItem(ctx, existing)
		if err != nil {
			return nil, err
		}
		existing.ID = id
	default:
		return nil, err
	}

	if err := svc.pcbs.UpdateOrderedQuantity(ctx, p.ID, p.OrderedQuantity+params.Quantity); err != nil {
		return nil, err
	}

	return existing, nil
}

func (svc *service) replaceItem(ctx context.Context, params model.AddOrUpdateItemParams) (*model.OrderItem, error) {
	existing, err := svc.repo.ItemByID(ctx, *params.ItemID)
	if err != nil {
		return nil, err
	}
	if existing.OrderID != params.OrderID {
		return nil, fmt.Errorf("item %d belongs to order %d: %w",
			existing.ID, existing.OrderID, model.ErrValidation)
	}

	p, err := svc.pcbs.ByID(ctx, params.PcbID)
	if err != nil {
		return nil, err
	}

	if existing.PcbID == params.PcbID {
		// The line's own reservation returns to the pool before the check.
		available := p.TotalStock - p.OrderedQuantity + existing.Quantity
		if params.Quantity > available {
			return nil, model.NewInsufficientStock(p.Name, params.Quantity-available)
		}

		if err := svc.pcbs.UpdateOrderedQuantity(ctx, p.ID,
			p.OrderedQuantity+params.Quantity-existing.Quantity); err != nil {
			return nil, err
		}
	} else {
		available := p.TotalStock - p.OrderedQuantity
		if params.Quantity > available {
			return nil, model.NewInsufficientStock(p.Name, params.Quantity-available)
		}

		oldPcb, err := svc.pcbs.ByID(ctx, existing.PcbID)
		if err != nil {
			return nil, err
		}
		if err := svc.pcbs.UpdateOrderedQuantity(ctx, oldPcb.ID,
			oldPcb.OrderedQuantity-existing.Quantity); err != nil {
			return nil, err
		}
		if err := svc.pcbs.UpdateOrderedQuantity(ctx, p.ID,
			p.OrderedQuantity+params.Quantity); err != nil {
			return nil, err
		}
	}

	existing.PcbID = params.PcbID
	existing.Quantity = params.Quantity
	existing.PricePerPcb = p.Price
	if err := svc.repo.UpdateItem(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// RemoveItem releases the line's reservation, deletes it and recomputes the
// order total in one transaction.
func (svc *service) RemoveItem(ctx context.Context, itemID int64) error {
	const op = "order.service.RemoveItem"

	var orderID, pcbID int64
	err := svc.txm.Serializable(ctx, func(ctx context.Context) error {
		item, err := svc.repo.ItemByID(ctx, itemID)
		if err != nil {
			return err
		}
		orderID, pcbID = item.OrderID, item.PcbID

		ord, err := svc.repo.ByID(ctx, item.OrderID)
		if err != nil {
			return err
		}
		if ord.Status.IsTerminal() {
			return fmt.Errorf("order %d is %s: %w", ord.ID, ord.Status, model.ErrInvalidState)
		}

		p, err := svc.pcbs.ByID(ctx, item.PcbID)
		if err != nil {
			return err
		}
		if err := svc.pcbs.UpdateOrderedQuantity(ctx, p.ID, p.OrderedQuantity-item.Quantity); err != nil {
			return err
		}

		if err := svc.repo.DeleteItem(ctx, itemID); err != nil {
			return err
		}

		return svc.recomputeTotal(ctx, item.OrderID)
	})
	if err != nil {
		logger.Error(ctx, "remove order item", logger.Int64("item_id", itemID), logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.notifier.Publish(model.NewChangeEvent(model.CollectionOrderItems, itemID, model.ActionDeleted))
	svc.notifier.Publish(model.NewChangeEvent(model.CollectionOrders, orderID, model.ActionUpdated))
	svc.notifier.Publish(model.NewChangeEvent(model.CollectionPcbs, pcbID, model.ActionUpdated))

	return nil
}

// Delete removes the order. A non-terminal order still holds reservations,
// so they are released before the rows cascade away.
func (svc *service) Delete(ctx context.Context, id int64) error {
	const op = "order.service.Delete"

	err := svc.txm.Serializable(ctx, func(ctx context.Context) error {
		ord, err := svc.repo.ByID(ctx, id)
		if err != nil {
			return err
		}

		if !ord.Status.IsTerminal() {
			items, err := svc.repo.ItemsByOrderID(ctx, id)
			if err != nil {
				return err
			}
			for _, item := range items {
				p, err := svc.pcbs.ByID(ctx, item.PcbID)
				if err != nil {
					return err
				}
				if err := svc.pcbs.UpdateOrderedQuantity(ctx, p.ID,
					p.OrderedQuantity-item.Quantity); err != nil {
					return err
				}
			}
		}

		return svc.repo.Delete(ctx, id)
	})
	if err != nil {
		logger.Error(ctx, "delete order", logger.Int64("order_id", id), logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.notifier.Publish(model.NewChangeEvent(model.CollectionOrders, id, model.ActionDeleted))

	return nil
}

// recomputeTotal recalculates Σ quantity*price from the live rows rather than
// adjusting the cached value, so the total can never drift.
func (svc *service) recomputeTotal(ctx context.Context, orderID int64) error {
	items, err := svc.repo.ItemsByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.PricePerPcb
	}

	return svc.repo.SetTotalAmount(ctx, orderID, total)
}

func (svc *service) publishOrderChange(orderID int64, deducted bool) {
	svc.notifier.Publish(model.NewChangeEvent(model.CollectionOrders, orderID, model.ActionUpdated))
	if deducted {
		svc.notifier.Publish(model.NewChangeEvent(model.CollectionPcbs, 0, model.ActionUpdated))
		svc.notifier.Publish(model.NewChangeEvent(model.CollectionMovements, 0, model.ActionCreated))
	}
}

func (svc *service) Orders(ctx context.Context) ([]model.Order, error) {
	const op = "order.service.Orders"

	out, err := svc.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (svc *service) OrderByID(ctx context.Context, id int64) (*model.Order, error) {
	const op = "order.service.OrderByID"

	ord, err := svc.repo.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ord, nil
}

func (svc *service) Items(ctx context.Context, orderID int64) ([]model.OrderItemInfo, error) {
	const op = "order.service.Items"

	out, err := svc.repo.ItemInfoByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
