// Package component maintains the component catalog and its open key/value
// specification bags. Shelf-quantity writes are delegated to the stock
// service so the ledger stays complete.
package service

import (
	"context"
	"fmt"

	"github.com/dihow/CircuitBoardWarehouse/internal/logger"
	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

type ComponentRepository interface {
	Create(ctx context.Context, c *model.Component) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Component, error)
	All(ctx context.Context) ([]model.Component, error)
	Update(ctx context.Context, c *model.Component) error
	Delete(ctx context.Context, id int64) error
	SpecsByComponentID(ctx context.Context, componentID int64) ([]model.ComponentSpecification, error)
	ReplaceSpecs(ctx context.Context, componentID int64, specs []model.SpecificationParams) error
}

type Stock interface {
	SetComponentStock(ctx context.Context, componentID, newStock int64) error
}

type TxManager interface {
	Serializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Notifier interface {
	Publish(ev model.ChangeEvent)
}

type service struct {
	repo     ComponentRepository
	stock    Stock
	txm      TxManager
	notifier Notifier
}

func NewComponentService(
	repo ComponentRepository,
	stock Stock,
	txm TxManager,
	notifier Notifier,
) *service {
	return &service{
		repo:     repo,
		stock:    stock,
		txm:      txm,
		notifier: notifier,
	}
}

func (svc *service) Create(ctx context.Context, params model.CreateComponentParams) (int64, error) {
	const op = "component.service.Create"

	if params.Name == "" || params.StockQuantity < 0 {
		return 0, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	var id int64
	err := svc.txm.Serializable(ctx, func(ctx context.Context) error {
		var err error
		id, err = svc.repo.Create(ctx, &model.Component{
			Name:          params.Name,
			Manufacturer:  params.Manufacturer,
			Price:         params.Price,
			Type:          params.Type,
			StockQuantity: params.StockQuantity,
		})
		if err != nil {
			return err
		}

		return svc.repo.ReplaceSpecs(ctx, id, params.Specifications)
	})
	if err != nil {
		logger.Error(ctx, "create component", logger.String("name", params.Name), logger.ErrorF(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	svc.notifier.Publish(model.NewChangeEvent(model.CollectionComponents, id, model.ActionCreated))

	return id, nil
}

// Update rewrites the catalog fields and the specification bag. It never
// touches stock_quantity; SetStock is the only stock path.
func (svc *service) Update(ctx context.Context, params model.UpdateComponentParams) error {
	const op = "component.service.Update"

	if params.Name == "" {
		return fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	err := svc.txm.Serializable(ctx, func(ctx context.Context) error {
		if err := svc.repo.Update(ctx, &model.Component{
			ID:           params.ID,
			Name:         params.Name,
			Manufacturer: params.Manufacturer,
			Price:        params.Price,
			Type:         params.Type,
		}); err != nil {
			return err
		}

		return svc.repo.ReplaceSpecs(ctx, params.ID, params.Specifications)
	})
	if err != nil {
		logger.Error(ctx, "update component", logger.Int64("component_id", params.ID), logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.notifier.Publish(model.NewChangeEvent(model.CollectionComponents, params.ID, model.ActionUpdated))

	return nil
}

// Delete removes the component; specifications and BOM lines cascade away.
func (svc *service) Delete(ctx context.Context, id int64) error {
	const op = "component.service.Delete"

	if err := svc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.notifier.Publish(model.NewChangeEvent(model.CollectionComponents, id, model.ActionDeleted))

	return nil
}

// SetStock sets the shelf quantity through stock accounting, producing the
// ledger entry.
func (svc *service) SetStock(ctx context.Context, id, newStock int64) error {
	const op = "component.service.SetStock"

	if err := svc.stock.SetComponentStock(ctx, id, newStock); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.notifier.Publish(model.NewChangeEvent(model.CollectionComponents, id, model.ActionUpdated))
	svc.notifier.Publish(model.NewChangeEvent(model.CollectionMovements, id, model.ActionCreated))

	return nil
}

func (svc *service) Components(ctx context.Context) ([]model.Component, error) {
	const op = "component.service.Components"

	out, err := svc.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (svc *service) ComponentByID(ctx context.Context, id int64) (*model.Component, error) {
	const op = "component.service.ComponentByID"

	c, err := svc.repo.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (svc *service) Specifications(ctx context.Context, componentID int64) ([]model.ComponentSpecification, error) {
	const op = "component.service.Specifications"

	out, err := svc.repo.SpecsByComponentID(ctx, componentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
