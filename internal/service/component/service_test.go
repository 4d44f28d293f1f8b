package service

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
	"github.com/dihow/CircuitBoardWarehouse/internal/service/mocks"
)

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	specs := []model.SpecificationParams{
		{Name: "resistance", Value: "10k"},
		{Name: "tolerance", Value: "5%"},
	}

	type testCase struct {
		name     string
		params   model.CreateComponentParams
		setup    func(repo *mocks.MockComponentRepository)
		assertFn func(t *testing.T, id int64, err error)
	}

	tests := []testCase{
		{
			name: "component and specifications written together",
			params: model.CreateComponentParams{
				Name:           gofakeit.ProductName(),
				Type:           model.ComponentTypeResistor,
				StockQuantity:  50,
				Specifications: specs,
			},
			setup: func(repo *mocks.MockComponentRepository) {
				repo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Component) bool {
					return c.StockQuantity == 50
				})).Return(int64(4), nil).Once()
				repo.On("ReplaceSpecs", mock.Anything, int64(4), specs).Return(nil).Once()
			},
			assertFn: func(t *testing.T, id int64, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(4), id)
			},
		},
		{
			name:   "empty name rejected",
			params: model.CreateComponentParams{Type: model.ComponentTypeDiode},
			setup:  func(repo *mocks.MockComponentRepository) {},
			assertFn: func(t *testing.T, id int64, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
			},
		},
		{
			name: "negative initial stock rejected",
			params: model.CreateComponentParams{
				Name:          gofakeit.ProductName(),
				StockQuantity: -1,
			},
			setup: func(repo *mocks.MockComponentRepository) {},
			assertFn: func(t *testing.T, id int64, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := mocks.NewMockComponentRepository(t)
			tt.setup(repo)

			svc := NewComponentService(repo, mocks.NewMockStock(t), mocks.TxManagerStub{}, &mocks.NotifierRecorder{})

			id, err := svc.Create(context.Background(), tt.params)
			tt.assertFn(t, id, err)
		})
	}
}

func TestServiceUpdateNeverTouchesStock(t *testing.T) {
	t.Parallel()

	repo := mocks.NewMockComponentRepository(t)
	stock := mocks.NewMockStock(t)

	repo.
		On("Update", mock.Anything, mock.MatchedBy(func(c *model.Component) bool {
			// StockQuantity stays at the zero value; the repository update
			// statement does not include the column either.
			return c.ID == 4 && c.StockQuantity == 0
		})).
		Return(nil).
		Once()
	repo.On("ReplaceSpecs", mock.Anything, int64(4), mock.Anything).Return(nil).Once()

	svc := NewComponentService(repo, stock, mocks.TxManagerStub{}, &mocks.NotifierRecorder{})

	err := svc.Update(context.Background(), model.UpdateComponentParams{
		ID:   4,
		Name: gofakeit.ProductName(),
	})
	require.NoError(t, err)

	stock.AssertNotCalled(t, "SetComponentStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceSetStockDelegatesToStockAccounting(t *testing.T) {
	t.Parallel()

	stock := mocks.NewMockStock(t)
	notifier := &mocks.NotifierRecorder{}

	stock.On("SetComponentStock", mock.Anything, int64(4), int64(75)).Return(nil).Once()

	svc := NewComponentService(mocks.NewMockComponentRepository(t), stock, mocks.TxManagerStub{}, notifier)

	require.NoError(t, svc.SetStock(context.Background(), 4, 75))

	assert.NotEmpty(t, notifier.ByCollection(model.CollectionComponents))
	assert.NotEmpty(t, notifier.ByCollection(model.CollectionMovements))
}
