// Package stock holds the two shelf-quantity mutation primitives. Both read
// the old quantity, write the new one and record the delta in the ledger
// inside a single transaction. Neither validates BOM sufficiency; callers on
// the BOM-aware paths do that before calling in.
package service

import (
	"context"
	"fmt"

	"github.com/dihow/CircuitBoardWarehouse/internal/logger"
	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

type ComponentRepository interface {
	ByID(ctx context.Context, id int64) (*model.Component, error)
	UpdateStock(ctx context.Context, id, newStock int64) error
}

type PcbRepository interface {
	ByID(ctx context.Context, id int64) (*model.Pcb, error)
	UpdateTotalStock(ctx context.Context, id, totalStock int64) error
}

type Ledger interface {
	Record(ctx context.Context, product model.ProductType, entityName string, oldQty, newQty int64) (*model.Movement, error)
}

type TxManager interface {
	Serializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type service struct {
	components ComponentRepository
	pcbs       PcbRepository
	ledger     Ledger
	txm        TxManager
}

func NewStockService(
	components ComponentRepository,
	pcbs PcbRepository,
	ledger Ledger,
	txm TxManager,
) *service {
	return &service{
		components: components,
		pcbs:       pcbs,
		ledger:     ledger,
		txm:        txm,
	}
}

// SetComponentStock writes the component's new shelf quantity and records the
// movement. Joins the caller's transaction when there is one.
func (svc *service) SetComponentStock(ctx context.Context, componentID, newStock int64) error {
	const op = "stock.service.SetComponentStock"

	if newStock < 0 {
		return fmt.Errorf("%s: negative stock %d: %w", op, newStock, model.ErrValidation)
	}

	err := svc.txm.Serializable(ctx, func(ctx context.Context) error {
		c, err := svc.components.ByID(ctx, componentID)
		if err != nil {
			return err
		}

		if err := svc.components.UpdateStock(ctx, componentID, newStock); err != nil {
			return err
		}

		if _, err := svc.ledger.Record(ctx, model.ProductComponent, c.Name, c.StockQuantity, newStock); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		logger.Error(ctx, "set component stock",
			logger.Int64("component_id", componentID),
			logger.Int64("new_stock", newStock),
			logger.ErrorF(err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SetPcbStock is the bare board-count write: ledger entry, no BOM re-check.
func (svc *service) SetPcbStock(ctx context.Context, pcbID, newTotalStock int64) error {
	const op = "stock.service.SetPcbStock"

	if newTotalStock < 0 {
		return fmt.Errorf("%s: negative stock %d: %w", op, newTotalStock, model.ErrValidation)
	}

	err := svc.txm.Serializable(ctx, func(ctx context.Context) error {
		p, err := svc.pcbs.ByID(ctx, pcbID)
		if err != nil {
			return err
		}

		if err := svc.pcbs.UpdateTotalStock(ctx, pcbID, newTotalStock); err != nil {
			return err
		}

		if _, err := svc.ledger.Record(ctx, model.ProductPcb, p.Name, p.TotalStock, newTotalStock); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		logger.Error(ctx, "set pcb stock",
			logger.Int64("pcb_id", pcbID),
			logger.Int64("new_total_stock", newTotalStock),
			logger.ErrorF(err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
