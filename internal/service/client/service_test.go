package service

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
	"github.com/dihow/CircuitBoardWarehouse/internal/service/mocks"
)

// memClientRepository keeps clients and their detail rows in maps so the
// pairing invariant can be asserted after multi-step operations.
type memClientRepository struct {
	nextID   int64
	clients  map[int64]model.Client
	persons  map[int64]model.PhysicalPerson
	entities map[int64]model.LegalEntity
}

func newMemClientRepository() *memClientRepository {
	return &memClientRepository{
		nextID:   1,
		clients:  make(map[int64]model.Client),
		persons:  make(map[int64]model.PhysicalPerson),
		entities: make(map[int64]model.LegalEntity),
	}
}

func (r *memClientRepository) Create(_ context.Context, c *model.Client) (int64, error) {
	id := r.nextID
	r.nextID++
	c.ID = id
	r.clients[id] = *c
	return id, nil
}

func (r *memClientRepository) ByID(_ context.Context, id int64) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, model.ErrClientNotFound
	}
	return &c, nil
}

func (r *memClientRepository) All(_ context.Context) ([]model.Client, error) {
	out := make([]model.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, nil
}

func (r *memClientRepository) Update(_ context.Context, c *model.Client) error {
	if _, ok := r.clients[c.ID]; !ok {
		return model.ErrClientNotFound
	}
	r.clients[c.ID] = *c
	return nil
}

func (r *memClientRepository) Delete(_ context.Context, id int64) error {
	delete(r.clients, id)
	delete(r.persons, id)
	delete(r.entities, id)
	return nil
}

func (r *memClientRepository) PersonByClientID(_ context.Context, clientID int64) (*model.PhysicalPerson, error) {
	p, ok := r.persons[clientID]
	if !ok {
		return nil, model.ErrClientNotFound
	}
	return &p, nil
}

func (r *memClientRepository) EntityByClientID(_ context.Context, clientID int64) (*model.LegalEntity, error) {
	e, ok := r.entities[clientID]
	if !ok {
		return nil, model.ErrClientNotFound
	}
	return &e, nil
}

func (r *memClientRepository) UpsertPerson(_ context.Context, p *model.PhysicalPerson) error {
	r.persons[p.ClientID] = *p
	return nil
}

func (r *memClientRepository) UpsertEntity(_ context.Context, e *model.LegalEntity) error {
	r.entities[e.ClientID] = *e
	return nil
}

func (r *memClientRepository) DeletePerson(_ context.Context, clientID int64) error {
	delete(r.persons, clientID)
	return nil
}

func (r *memClientRepository) DeleteEntity(_ context.Context, clientID int64) error {
	delete(r.entities, clientID)
	return nil
}

func TestServiceCreatePairing(t *testing.T) {
	t.Parallel()

	person := &model.PhysicalPerson{FullName: gofakeit.Name(), Age: 30}
	entity := &model.LegalEntity{Name: gofakeit.Company(), INN: "7700000000"}

	type testCase struct {
		name    string
		params  model.SaveClientParams
		wantErr bool
	}

	tests := []testCase{
		{
			name:   "physical client with person record",
			params: model.SaveClientParams{Type: model.ClientPhysical, Person: person},
		},
		{
			name:   "legal client with entity record",
			params: model.SaveClientParams{Type: model.ClientLegal, Entity: entity},
		},
		{
			name:    "physical client without person record rejected",
			params:  model.SaveClientParams{Type: model.ClientPhysical},
			wantErr: true,
		},
		{
			name:    "physical client with entity record rejected",
			params:  model.SaveClientParams{Type: model.ClientPhysical, Person: person, Entity: entity},
			wantErr: true,
		},
		{
			name:    "unknown type rejected",
			params:  model.SaveClientParams{Type: "UNKNOWN", Person: person},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newMemClientRepository()
			svc := NewClientService(repo, mocks.TxManagerStub{}, &mocks.NotifierRecorder{})

			id, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Empty(t, repo.clients)
				return
			}

			require.NoError(t, err)
			info, err := svc.ClientByID(context.Background(), id)
			require.NoError(t, err)

			switch tt.params.Type {
			case model.ClientPhysical:
				require.NotNil(t, info.Person)
				assert.Nil(t, info.Entity)
				assert.Equal(t, person.FullName, info.DisplayName())
			case model.ClientLegal:
				require.NotNil(t, info.Entity)
				assert.Nil(t, info.Person)
				assert.Equal(t, entity.Name, info.DisplayName())
			}
		})
	}
}

func TestServiceUpdateTypeSwitchReplacesDetail(t *testing.T) {
	t.Parallel()

	repo := newMemClientRepository()
	notifier := &mocks.NotifierRecorder{}
	svc := NewClientService(repo, mocks.TxManagerStub{}, notifier)

	id, err := svc.Create(context.Background(), model.SaveClientParams{
		Type:   model.ClientPhysical,
		Person: &model.PhysicalPerson{FullName: gofakeit.Name()},
	})
	require.NoError(t, err)

	companyName := gofakeit.Company()
	err = svc.Update(context.Background(), id, model.SaveClientParams{
		Type:   model.ClientLegal,
		Entity: &model.LegalEntity{Name: companyName},
	})
	require.NoError(t, err)

	// The old person row must be gone, leaving exactly one detail record.
	assert.NotContains(t, repo.persons, id)
	assert.Contains(t, repo.entities, id)

	info, err := svc.ClientByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.ClientLegal, info.Type)
	assert.Equal(t, companyName, info.DisplayName())
}

func TestServiceDeleteRemovesDetail(t *testing.T) {
	t.Parallel()

	repo := newMemClientRepository()
	svc := NewClientService(repo, mocks.TxManagerStub{}, &mocks.NotifierRecorder{})

	id, err := svc.Create(context.Background(), model.SaveClientParams{
		Type:   model.ClientLegal,
		Entity: &model.LegalEntity{Name: gofakeit.Company()},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), id))

	_, err = svc.ClientByID(context.Background(), id)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.NotContains(t, repo.entities, id)
}
