// Package scheduler promotes READY orders whose shipping date has passed to
// SHIPPED. It runs on a fixed interval and evaluates dates in a configured
// time zone.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dihow/CircuitBoardWarehouse/internal/logger"
	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

type OrderRepository interface {
	ByID(ctx context.Context, id int64) (*model.Order, error)
	ReadyBefore(ctx context.Context, t time.Time) ([]model.Order, error)
}

type OrderService interface {
	SetStatus(ctx context.Context, id int64, status model.OrderStatus) error
}

type service struct {
	repo   OrderRepository
	orders OrderService
	loc    *time.Location
	now    func() time.Time
}

func NewSchedulerService(repo OrderRepository, orders OrderService, loc *time.Location) *service {
	return &service{
		repo:   repo,
		orders: orders,
		loc:    loc,
		now:    time.Now,
	}
}

// PromoteDue advances every READY order whose shipping date lies in the past
// to SHIPPED and returns how many orders it promoted. Each order moves on its
// own; a failure on one does not block the rest of the batch.
func (svc *service) PromoteDue(ctx context.Context) (int, error) {
	const op = "scheduler.service.PromoteDue"

	now := svc.now().In(svc.loc)

	due, err := svc.repo.ReadyBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var promoted int
	for _, ord := range due {
		if err := svc.promote(ctx, ord.ID, now); err != nil {
			logger.Error(ctx, "promote order to shipped",
				logger.Int64("order_id", ord.ID),
				logger.ErrorF(err),
			)
			continue
		}
		promoted++
	}

	if promoted > 0 {
		logger.Info(ctx, "orders promoted to shipped", logger.Int("count", promoted))
	}

	return promoted, nil
}

// promote re-reads the order so that a concurrent status change between the
// batch query and this call leaves the order untouched.
func (svc *service) promote(ctx context.Context, id int64, now time.Time) error {
	ord, err := svc.repo.ByID(ctx, id)
	if err != nil {
		return err
	}

	if ord.Status != model.StatusReady {
		return nil
	}
	if ord.ShippingDate == nil || !ord.ShippingDate.In(svc.loc).Before(now) {
		return nil
	}

	return svc.orders.SetStatus(ctx, id, model.StatusShipped)
}

// Run ticks PromoteDue on the given interval until the context is cancelled.
func (svc *service) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := svc.PromoteDue(ctx); err != nil {
				logger.Error(ctx, "scheduler pass", logger.ErrorF(err))
			}
		}
	}
}
