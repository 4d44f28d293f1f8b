package service

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
	"github.com/dihow/CircuitBoardWarehouse/internal/service/mocks"
)

func updateParamsFrom(p *model.Pcb, totalStock int64) model.UpdatePcbParams {
	return model.UpdatePcbParams{
		ID:                p.ID,
		Name:              p.Name,
		SerialNumber:      p.SerialNumber,
		Batch:             p.Batch,
		Price:             p.Price,
		TotalStock:        totalStock,
		ManufacturingDate: p.ManufacturingDate,
		Length:            p.Length,
		Width:             p.Width,
		LayerCount:        p.LayerCount,
	}
}

func TestServiceUpdatePcbReconcilesComponentStock(t *testing.T) {
	t.Parallel()

	board := &model.Pcb{
		ID:                5,
		Name:              gofakeit.ProductName(),
		SerialNumber:      gofakeit.UUID(),
		TotalStock:        10,
		OrderedQuantity:   2,
		ManufacturingDate: time.Now(),
		LayerCount:        4,
	}
	component := &model.Component{
		ID:            9,
		Name:          gofakeit.ProductName(),
		StockQuantity: 100,
	}

	pcbs := mocks.NewMockPcbRepository(t)
	components := mocks.NewMockComponentRepository(t)
	stock := mocks.NewMockStock(t)
	ledger := mocks.NewMockLedger(t)
	notifier := &mocks.NotifierRecorder{}

	// 10 -> 15 boards with 2 components each consumes 10 units.
	pcbs.On("ByID", mock.Anything, board.ID).Return(board, nil).Once()
	pcbs.On("LinesByPcbID", mock.Anything, board.ID).Return([]model.BomLine{
		{PcbID: board.ID, ComponentID: component.ID, ComponentCount: 2},
	}, nil).Once()
	components.On("ByID", mock.Anything, component.ID).Return(component, nil).Once()
	stock.On("SetComponentStock", mock.Anything, component.ID, int64(90)).Return(nil).Once()
	pcbs.
		On("Update", mock.Anything, mock.MatchedBy(func(p *model.Pcb) bool {
			// The edit must not clobber the reservation counter.
			return p.TotalStock == 15 && p.OrderedQuantity == 2
		})).
		Return(nil).
		Once()
	ledger.
		On("Record", mock.Anything, model.ProductPcb, board.Name, int64(10), int64(15)).
		Return(&model.Movement{ID: 1, Type: model.MovementInbound, Value: 5}, nil).
		Once()

	svc := NewBomService(pcbs, components, stock, ledger, mocks.TxManagerStub{}, notifier)

	err := svc.UpdatePcb(context.Background(), updateParamsFrom(board, 15))
	require.NoError(t, err)

	assert.NotEmpty(t, notifier.ByCollection(model.CollectionPcbs))
	assert.NotEmpty(t, notifier.ByCollection(model.CollectionMovements))
}

func TestServiceUpdatePcbInsufficientComponentStock(t *testing.T) {
	t.Parallel()

	board := &model.Pcb{
		ID:         5,
		Name:       gofakeit.ProductName(),
		TotalStock: 10,
	}
	component := &model.Component{
		ID:            9,
		Name:          gofakeit.ProductName(),
		StockQuantity: 5,
	}

	pcbs := mocks.NewMockPcbRepository(t)
	components := mocks.NewMockComponentRepository(t)
	stock := mocks.NewMockStock(t)
	ledger := mocks.NewMockLedger(t)

	// 10 -> 15 boards needs 10 units, only 5 on the shelf.
	pcbs.On("ByID", mock.Anything, board.ID).Return(board, nil).Once()
	pcbs.On("LinesByPcbID", mock.Anything, board.ID).Return([]model.BomLine{
		{PcbID: board.ID, ComponentID: component.ID, ComponentCount: 2},
	}, nil).Once()
	components.On("ByID", mock.Anything, component.ID).Return(component, nil).Once()

	svc := NewBomService(pcbs, components, stock, ledger, mocks.TxManagerStub{}, &mocks.NotifierRecorder{})

	err := svc.UpdatePcb(context.Background(), updateParamsFrom(board, 15))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)

	var short *model.InsufficientStockError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, component.Name, short.Entity)
	assert.Equal(t, int64(5), short.Deficit)

	stock.AssertNotCalled(t, "SetComponentStock", mock.Anything, mock.Anything, mock.Anything)
	pcbs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestServiceAssignComponent(t *testing.T) {
	t.Parallel()

	board := &model.Pcb{ID: 3, Name: gofakeit.ProductName(), TotalStock: 10}

	type deps struct {
		pcbs       *mocks.MockPcbRepository
		components *mocks.MockComponentRepository
		stock      *mocks.MockStock
	}

	type testCase struct {
		name     string
		count    int64
		setup    func(d deps, c *model.Component)
		assertFn func(t *testing.T, err error)
	}

	tests := []testCase{
		{
			name:  "replacing an assignment returns the old units to the pool first",
			count: 3,
			setup: func(d deps, c *model.Component) {
				// stock 10 + old 2*10 = 30 available; new 3*10 = 30 required.
				c.StockQuantity = 10
				d.pcbs.On("ByID", mock.Anything, board.ID).Return(board, nil).Once()
				d.components.On("ByID", mock.Anything, c.ID).Return(c, nil).Once()
				d.pcbs.On("LineByKey", mock.Anything, board.ID, c.ID).
					Return(&model.BomLine{PcbID: board.ID, ComponentID: c.ID, ComponentCount: 2}, nil).
					Once()
				d.pcbs.
					On("UpsertLine", mock.Anything, mock.MatchedBy(func(l *model.BomLine) bool {
						return l.ComponentCount == 3
					})).
					Return(nil).
					Once()
				d.stock.On("SetComponentStock", mock.Anything, c.ID, int64(0)).Return(nil).Once()
			},
			assertFn: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:  "fresh assignment short on stock reports the deficit",
			count: 4,
			setup: func(d deps, c *model.Component) {
				// 4*10 = 40 required, 35 on the shelf.
				c.StockQuantity = 35
				d.pcbs.On("ByID", mock.Anything, board.ID).Return(board, nil).Once()
				d.components.On("ByID", mock.Anything, c.ID).Return(c, nil).Once()
				d.pcbs.On("LineByKey", mock.Anything, board.ID, c.ID).
					Return(nil, model.ErrBomLineNotFound).
					Once()
			},
			assertFn: func(t *testing.T, err error) {
				require.Error(t, err)
				var short *model.InsufficientStockError
				require.ErrorAs(t, err, &short)
				assert.Equal(t, int64(5), short.Deficit)
			},
		},
		{
			name:  "non-positive count rejected",
			count: 0,
			setup: func(d deps, c *model.Component) {},
			assertFn: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{
				pcbs:       mocks.NewMockPcbRepository(t),
				components: mocks.NewMockComponentRepository(t),
				stock:      mocks.NewMockStock(t),
			}
			component := &model.Component{ID: 7, Name: gofakeit.ProductName()}
			tt.setup(d, component)

			svc := NewBomService(
				d.pcbs, d.components, d.stock,
				mocks.NewMockLedger(t), mocks.TxManagerStub{}, &mocks.NotifierRecorder{},
			)

			err := svc.AssignComponent(context.Background(), model.AssignComponentParams{
				PcbID:          board.ID,
				ComponentID:    component.ID,
				ComponentCount: tt.count,
			})
			tt.assertFn(t, err)
		})
	}
}

func TestServiceRemoveComponentLeavesStockAlone(t *testing.T) {
	t.Parallel()

	pcbs := mocks.NewMockPcbRepository(t)
	stock := mocks.NewMockStock(t)

	pcbs.On("DeleteLine", mock.Anything, int64(3), int64(7)).Return(nil).Once()

	svc := NewBomService(
		pcbs, mocks.NewMockComponentRepository(t), stock,
		mocks.NewMockLedger(t), mocks.TxManagerStub{}, &mocks.NotifierRecorder{},
	)

	err := svc.RemoveComponent(context.Background(), 3, 7)
	require.NoError(t, err)

	stock.AssertNotCalled(t, "SetComponentStock", mock.Anything, mock.Anything, mock.Anything)
}
