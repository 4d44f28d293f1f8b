// Package client keeps client rows paired with the detail record matching
// their type: a physical person or a legal entity, never both, never neither.
package service

import (
	"context"
	"fmt"

	"github.com/dihow/CircuitBoardWarehouse/internal/logger"
	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Client, error)
	All(ctx context.Context) ([]model.Client, error)
	Update(ctx context.Context, c *model.Client) error
	Delete(ctx context.Context, id int64) error

	PersonByClientID(ctx context.Context, clientID int64) (*model.PhysicalPerson, error)
	EntityByClientID(ctx context.Context, clientID int64) (*model.LegalEntity, error)
	UpsertPerson(ctx context.Context, p *model.PhysicalPerson) error
	UpsertEntity(ctx context.Context, e *model.LegalEntity) error
	DeletePerson(ctx context.Context, clientID int64) error
	DeleteEntity(ctx context.Context, clientID int64) error
}

type TxManager interface {
	Serializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Notifier interface {
	Publish(ev model.ChangeEvent)
}

type service struct {
	repo     ClientRepository
	txm      TxManager
	notifier Notifier
}

func NewClientService(repo ClientRepository, txm TxManager, notifier Notifier) *service {
	return &service{
		repo:     repo,
		txm:      txm,
		notifier: notifier,
	}
}

// checkPairing rejects a save whose detail record does not match the declared
// client type.
func checkPairing(params model.SaveClientParams) error {
	switch params.Type {
	case model.ClientPhysical:
		if params.Person == nil || params.Entity != nil {
			return fmt.Errorf("physical client requires a person record: %w", model.ErrValidation)
		}
	case model.ClientLegal:
		if params.Entity == nil || params.Person != nil {
			return fmt.Errorf("legal client requires an entity record: %w", model.ErrValidation)
		}
	default:
		return fmt.Errorf("unknown client type %q: %w", params.Type, model.ErrValidation)
	}

	return nil
}

func (svc *service) Create(ctx context.Context, params model.SaveClientParams) (int64, error) {
	const op = "client.service.Create"

	if err := checkPairing(params); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var id int64
	err := svc.txm.Serializable(ctx, func(ctx context.Context) error {
		var err error
		id, err = svc.repo.Create(ctx, &model.Client{
			Type:  params.Type,
			Phone: params.Phone,
			Email: params.Email,
		})
		if err != nil {
			return err
		}

		return svc.saveDetail(ctx, id, params)
	})
	if err != nil {
		logger.Error(ctx, "create client", logger.String("type", string(params.Type)), logger.ErrorF(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	svc.notifier.Publish(model.NewChangeEvent(model.CollectionClients, id, model.ActionCreated))

	return id, nil
}

// Update rewrites the client and its detail record. Switching type removes
// the old detail record so the pairing invariant keeps holding.
func (svc *service) Update(ctx context.Context, id int64, params model.SaveClientParams) error {
	const op = "client.service.Update"

	if err := checkPairing(params); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := svc.txm.Serializable(ctx, func(ctx context.Context) error {
		existing, err := svc.repo.ByID(ctx, id)
		if err != nil {
			return err
		}

		if err := svc.repo.Update(ctx, &model.Client{
			ID:    id,
			Type:  params.Type,
			Phone: params.Phone,
			Email: params.Email,
		}); err != nil {
			return err
		}

		if existing.Type != params.Type {
			switch existing.Type {
			case model.ClientPhysical:
				if err := svc.repo.DeletePerson(ctx, id); err != nil {
					return err
				}
			case model.ClientLegal:
				if err := svc.repo.DeleteEntity(ctx, id); err != nil {
					return err
				}
			}
		}

		return svc.saveDetail(ctx, id, params)
	})
	if err != nil {
		logger.Error(ctx, "update client", logger.Int64("client_id", id), logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.notifier.Publish(model.NewChangeEvent(model.CollectionClients, id, model.ActionUpdated))

	return nil
}

func (svc *service) saveDetail(ctx context.Context, clientID int64, params model.SaveClientParams) error {
	switch params.Type {
	case model.ClientPhysical:
		p := *params.Person
		p.ClientID = clientID
		return svc.repo.UpsertPerson(ctx, &p)
	case model.ClientLegal:
		e := *params.Entity
		e.ClientID = clientID
		return svc.repo.UpsertEntity(ctx, &e)
	}

	return nil
}

func (svc *service) Delete(ctx context.Context, id int64) error {
	const op = "client.service.Delete"

	if err := svc.repo.Delete(ctx, id); err != nil {
		logger.Error(ctx, "delete client", logger.Int64("client_id", id), logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.notifier.Publish(model.NewChangeEvent(model.CollectionClients, id, model.ActionDeleted))

	return nil
}

func (svc *service) ClientByID(ctx context.Context, id int64) (*model.ClientInfo, error) {
	const op = "client.service.ClientByID"

	c, err := svc.repo.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	info := &model.ClientInfo{Client: *c}
	switch c.Type {
	case model.ClientPhysical:
		info.Person, err = svc.repo.PersonByClientID(ctx, id)
	case model.ClientLegal:
		info.Entity, err = svc.repo.EntityByClientID(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return info, nil
}

func (svc *service) Clients(ctx context.Context) ([]model.ClientInfo, error) {
	const op = "client.service.Clients"

	clients, err := svc.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]model.ClientInfo, 0, len(clients))
	for _, c := range clients {
		info := model.ClientInfo{Client: c}
		switch c.Type {
		case model.ClientPhysical:
			info.Person, err = svc.repo.PersonByClientID(ctx, c.ID)
		case model.ClientLegal:
			info.Entity, err = svc.repo.EntityByClientID(ctx, c.ID)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, info)
	}

	return out, nil
}
