// Package bom maintains boards and their bills of materials. Its two
// composite operations are the ones with real consistency risk: changing a
// board count reconciles every component's shelf stock, and re-assigning a
// component re-checks sufficiency against the whole board count. Both are
// all-or-nothing.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dihow/CircuitBoardWarehouse/internal/logger"
	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

type PcbRepository interface {
	Create(ctx context.Context, p *model.Pcb) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Pcb, error)
	All(ctx context.Context) ([]model.Pcb, error)
	Update(ctx context.Context, p *model.Pcb) error
	Delete(ctx context.Context, id int64) error
	LinesByPcbID(ctx context.Context, pcbID int64) ([]model.BomLine, error)
	LineInfoByPcbID(ctx context.Context, pcbID int64) ([]model.BomLineInfo, error)
	LineByKey(ctx context.Context, pcbID, componentID int64) (*model.BomLine, error)
	UpsertLine(ctx context.Context, l *model.BomLine) error
	DeleteLine(ctx context.Context, pcbID, componentID int64) error
}

type ComponentRepository interface {
	ByID(ctx context.Context, id int64) (*model.Component, error)
}

type Stock interface {
	SetComponentStock(ctx context.Context, componentID, newStock int64) error
}

type Ledger interface {
	Record(ctx context.Context, product model.ProductType, entityName string, oldQty, newQty int64) (*model.Movement, error)
}

type TxManager interface {
	Serializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Notifier interface {
	Publish(ev model.ChangeEvent)
}

type service struct {
	pcbs       PcbRepository
	components ComponentRepository
	stock      Stock
	ledger     Ledger
	txm        TxManager
	notifier   Notifier
}

func NewBomService(
	pcbs PcbRepository,
	components ComponentRepository,
	stock Stock,
	ledger Ledger,
	txm TxManager,
	notifier Notifier,
) *service {
	return &service{
		pcbs:       pcbs,
		components: components,
		stock:      stock,
		ledger:     ledger,
		txm:        txm,
		notifier:   notifier,
	}
}

// CreatePcb registers a board. The initial board count is taken as already
// assembled: no component stock is consumed and no movement is recorded.
func (svc *service) CreatePcb(ctx context.Context, params model.CreatePcbParams) (int64, error) {
	const op = "bom.service.CreatePcb"

	if params.Name == "" || params.TotalStock < 0 {
		return 0, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	id, err := svc.pcbs.Create(ctx, &model.Pcb{
		Name:              params.Name,
		SerialNumber:      params.SerialNumber,
		Batch:             params.Batch,
		Description:       params.Description,
		Price:             params.Price,
		TotalStock:        params.TotalStock,
		OrderedQuantity:   0,
		ManufacturingDate: params.ManufacturingDate,
		Length:            params.Length,
		Width:             params.Width,
		LayerCount:        params.LayerCount,
		Comment:           params.Comment,
		ImageRef:          params.ImageRef,
	})
	if err != nil {
		logger.Error(ctx, "create pcb", logger.String("name", params.Name), logger.ErrorF(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	svc.notifier.Publish(model.NewChangeEvent(model.CollectionPcbs, id, model.ActionCreated))

	return id, nil
}

// UpdatePcb applies the full board edit. When the board count changes, every
// BOM line is validated first: building (or dismantling) the difference must
// not drive any component's stock negative. Only after every line passes are
// the component writes, the board row and the board's ledger entry applied,
// in one transaction.
func (svc *service) UpdatePcb(ctx context.Context, params model.UpdatePcbParams) error {
	const op = "bom.service.UpdatePcb"

	if params.Name == "" || params.TotalStock < 0 {
		return fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	var stockChanged bool
	err := svc.txm.Serializable(ctx, func(ctx context.Context) error {
		existing, err := svc.pcbs.ByID(ctx, params.ID)
		if err != nil {
			return err
		}

		boardsChange := params.TotalStock - existing.TotalStock
		stockChanged = boardsChange != 0

		if boardsChange != 0 {
			lines, err := svc.pcbs.LinesByPcbID(ctx, params.ID)
			if err != nil {
				return err
			}

			for _, line := range lines {
				c, err := svc.components.ByID(ctx, line.ComponentID)
				if err != nil {
					return err
				}

				requiredChange := boardsChange * line.ComponentCount
				newStock := c.StockQuantity - requiredChange
				if newStock < 0 {
					return model.NewInsufficientStock(c.Name, -newStock)
				}

				if err := svc.stock.SetComponentStock(ctx, c.ID, newStock); err != nil {
					return err
				}
			}
		}

		if err := svc.pcbs.Update(ctx, &model.Pcb{
			ID:                params.ID,
			Name:              params.Name,
			SerialNumber:      params.SerialNumber,
			Batch:             params.Batch,
			Description:       params.Description,
			Price:             params.Price,
			TotalStock:        params.TotalStock,
			OrderedQuantity:   existing.OrderedQuantity,
			ManufacturingDate: params.ManufacturingDate,
			Length:            params.Length,
			Width:             params.Width,
			LayerCount:        params.LayerCount,
			Comment:           params.Comment,
			ImageRef:          params.ImageRef,
		}); err != nil {
			return err
		}

		if boardsChange != 0 {
			if _, err := svc.ledger.Record(ctx, model.ProductPcb, params.Name,
				existing.TotalStock, params.TotalStock); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		logger.Error(ctx, "update pcb", logger.Int64("pcb_id", params.ID), logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.notifier.Publish(model.NewChangeEvent(model.CollectionPcbs, params.ID, model.ActionUpdated))
	if stockChanged {
		svc.notifier.Publish(model.NewChangeEvent(model.CollectionComponents, 0, model.ActionUpdated))
		svc.notifier.Publish(model.NewChangeEvent(model.CollectionMovements, 0, model.ActionCreated))
	}

	return nil
}

// AssignComponent sets how many units of one component a board needs. The
// units tied up by the previous assignment return to the pool before the
// sufficiency check, so lowering a count always succeeds and frees stock.
func (svc *service) AssignComponent(ctx context.Context, params model.AssignComponentParams) error {
	const op = "bom.service.AssignComponent"

	if params.ComponentCount <= 0 {
		return fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	err := svc.txm.Serializable(ctx, func(ctx context.Context) error {
		p, err := svc.pcbs.ByID(ctx, params.PcbID)
		if err != nil {
			return err
		}

		c, err := svc.components.ByID(ctx, params.ComponentID)
		if err != nil {
			return err
		}

		var oldCount int64
		line, err := svc.pcbs.LineByKey(ctx, params.PcbID, params.ComponentID)
		switch {
		case err == nil:
			oldCount = line.ComponentCount
		case errors.Is(err, model.ErrBomLineNotFound):
		default:
			return err
		}

		totalAvailable := c.StockQuantity + oldCount*p.TotalStock
		totalRequired := params.ComponentCount * p.TotalStock
		if totalRequired > totalAvailable {
			return model.NewInsufficientStock(c.Name, totalRequired-totalAvailable)
		}

		if err := svc.pcbs.UpsertLine(ctx, &model.BomLine{
			PcbID:          params.PcbID,
			ComponentID:    params.ComponentID,
			ComponentCount: params.ComponentCount,
			Coordinates:    params.Coordinates,
		}); err != nil {
			return err
		}

		return svc.stock.SetComponentStock(ctx, params.ComponentID, totalAvailable-totalRequired)
	})
	if err != nil {
		logger.Error(ctx, "assign component",
			logger.Int64("pcb_id", params.PcbID),
			logger.Int64("component_id", params.ComponentID),
			logger.ErrorF(err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.notifier.Publish(model.NewChangeEvent(model.CollectionBomLines, params.PcbID, model.ActionUpdated))
	svc.notifier.Publish(model.NewChangeEvent(model.CollectionComponents, params.ComponentID, model.ActionUpdated))

	return nil
}

// RemoveComponent drops the BOM line. Units already mounted on boards stay
// consumed; nothing returns to the component pool.
func (svc *service) RemoveComponent(ctx context.Context, pcbID, componentID int64) error {
	const op = "bom.service.RemoveComponent"

	if err := svc.pcbs.DeleteLine(ctx, pcbID, componentID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.notifier.Publish(model.NewChangeEvent(model.CollectionBomLines, pcbID, model.ActionDeleted))

	return nil
}

func (svc *service) DeletePcb(ctx context.Context, id int64) error {
	const op = "bom.service.DeletePcb"

	if err := svc.pcbs.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.notifier.Publish(model.NewChangeEvent(model.CollectionPcbs, id, model.ActionDeleted))

	return nil
}

func (svc *service) Pcbs(ctx context.Context) ([]model.Pcb, error) {
	const op = "bom.service.Pcbs"

	out, err := svc.pcbs.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (svc *service) PcbByID(ctx context.Context, id int64) (*model.Pcb, error) {
	const op = "bom.service.PcbByID"

	p, err := svc.pcbs.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (svc *service) Lines(ctx context.Context, pcbID int64) ([]model.BomLineInfo, error) {
	const op = "bom.service.Lines"

	out, err := svc.pcbs.LineInfoByPcbID(ctx, pcbID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
