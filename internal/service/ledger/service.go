// Package ledger turns stock deltas into append-only movement records. Every
// shelf-quantity change in the warehouse funnels through Record.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dihow/CircuitBoardWarehouse/internal/logger"
	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

type MovementRepository interface {
	Create(ctx context.Context, m *model.Movement) (int64, error)
	All(ctx context.Context) ([]model.Movement, error)
}

type service struct {
	movements MovementRepository
	now       func() time.Time
}

func NewLedgerService(movements MovementRepository) *service {
	return &service{
		movements: movements,
		now:       time.Now,
	}
}

// Record appends one movement describing the change from oldQty to newQty.
// Equal quantities are a no-op returning (nil, nil). Callers invoke it inside
// the same transaction as the stock write itself.
func (svc *service) Record(
	ctx context.Context,
	product model.ProductType,
	entityName string,
	oldQty, newQty int64,
) (*model.Movement, error) {
	const op = "ledger.service.Record"

	delta := newQty - oldQty
	if delta == 0 {
		return nil, nil
	}

	m := &model.Movement{
		ProductType: product,
		Value:       delta,
		OccurredAt:  svc.now(),
	}
	if delta > 0 {
		m.Type = model.MovementInbound
	} else {
		m.Type = model.MovementOutbound
		m.Value = -delta
	}
	m.Description = describe(m.Type, product, entityName, m.Value)

	id, err := svc.movements.Create(ctx, m)
	if err != nil {
		logger.Error(ctx, "append movement",
			logger.String("entity", entityName),
			logger.ErrorF(err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	m.ID = id

	return m, nil
}

// Movements returns the full audit trail, newest first.
func (svc *service) Movements(ctx context.Context) ([]model.Movement, error) {
	const op = "ledger.service.Movements"

	out, err := svc.movements.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func describe(mt model.MovementType, product model.ProductType, name string, value int64) string {
	noun := "components"
	if product == model.ProductPcb {
		noun = "boards"
	}

	if mt == model.MovementInbound {
		return fmt.Sprintf("Received %d %s %q into stock", value, noun, name)
	}
	return fmt.Sprintf("Issued %d %s %q from stock", value, noun, name)
}
