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

type orderDeps struct {
	repo     *mocks.MockOrderRepository
	pcbs     *mocks.MockPcbRepository
	stock    *mocks.MockStock
	notifier *mocks.NotifierRecorder
}

func newOrderDeps(t *testing.T) orderDeps {
	return orderDeps{
		repo:     mocks.NewMockOrderRepository(t),
		pcbs:     mocks.NewMockPcbRepository(t),
		stock:    mocks.NewMockStock(t),
		notifier: &mocks.NotifierRecorder{},
	}
}

func (d orderDeps) service() *service {
	svc := NewOrderService(d.repo, d.pcbs, d.stock, mocks.TxManagerStub{}, d.notifier)
	svc.now = func() time.Time { return time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	d := newOrderDeps(t)

	d.repo.
		On("Create", mock.Anything, mock.MatchedBy(func(o *model.Order) bool {
			return o.Status == model.StatusPaid && !o.RegistrationDate.IsZero()
		})).
		Return(int64(11), nil).
		Once()

	id, err := d.service().Create(context.Background(), model.CreateOrderParams{ClientID: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NotEmpty(t, d.notifier.ByCollection(model.CollectionOrders))
}

func TestServiceAddOrUpdateItem(t *testing.T) {
	t.Parallel()

	openOrder := &model.Order{ID: 1, Status: model.StatusPaid}

	type testCase struct {
		name     string
		params   model.AddOrUpdateItemParams
		setup    func(d orderDeps)
		assertFn func(t *testing.T, item *model.OrderItem, err error)
	}

	itemID := int64(20)

	tests := []testCase{
		{
			name:   "new line reserves boards and snapshots price",
			params: model.AddOrUpdateItemParams{OrderID: 1, PcbID: 2, Quantity: 3},
			setup: func(d orderDeps) {
				board := &model.Pcb{ID: 2, Name: gofakeit.ProductName(), Price: 100, TotalStock: 10, OrderedQuantity: 4}
				d.repo.On("ByID", mock.Anything, int64(1)).Return(openOrder, nil).Once()
				d.pcbs.On("ByID", mock.Anything, int64(2)).Return(board, nil).Once()
				d.repo.On("ItemByOrderAndPcb", mock.Anything, int64(1), int64(2)).
					Return(nil, model.ErrOrderItemNotFound).
					Once()
				d.repo.
					On("CreateItem", mock.Anything, mock.MatchedBy(func(i *model.OrderItem) bool {
						return i.Quantity == 3 && i.PricePerPcb == 100
					})).
					Return(itemID, nil).
					Once()
				d.pcbs.On("UpdateOrderedQuantity", mock.Anything, int64(2), int64(7)).Return(nil).Once()
				d.repo.On("ItemsByOrderID", mock.Anything, int64(1)).
					Return([]model.OrderItem{{ID: itemID, Quantity: 3, PricePerPcb: 100}}, nil).
					Once()
				d.repo.On("SetTotalAmount", mock.Anything, int64(1), float64(300)).Return(nil).Once()
			},
			assertFn: func(t *testing.T, item *model.OrderItem, err error) {
				require.NoError(t, err)
				require.NotNil(t, item)
				assert.Equal(t, itemID, item.ID)
			},
		},
		{
			name:   "new line over the unreserved stock reports the deficit",
			params: model.AddOrUpdateItemParams{OrderID: 1, PcbID: 2, Quantity: 8},
			setup: func(d orderDeps) {
				// 10 on the shelf, 4 already reserved: only 6 free.
				board := &model.Pcb{ID: 2, Name: gofakeit.ProductName(), TotalStock: 10, OrderedQuantity: 4}
				d.repo.On("ByID", mock.Anything, int64(1)).Return(openOrder, nil).Once()
				d.pcbs.On("ByID", mock.Anything, int64(2)).Return(board, nil).Once()
			},
			assertFn: func(t *testing.T, item *model.OrderItem, err error) {
				require.Error(t, err)
				var short *model.InsufficientStockError
				require.ErrorAs(t, err, &short)
				assert.Equal(t, int64(2), short.Deficit)
				assert.Nil(t, item)
			},
		},
		{
			name:   "same board merges into the existing line",
			params: model.AddOrUpdateItemParams{OrderID: 1, PcbID: 2, Quantity: 2},
			setup: func(d orderDeps) {
				board := &model.Pcb{ID: 2, Name: gofakeit.ProductName(), Price: 120, TotalStock: 10, OrderedQuantity: 4}
				existing := &model.OrderItem{ID: itemID, OrderID: 1, PcbID: 2, Quantity: 3, PricePerPcb: 100}
				d.repo.On("ByID", mock.Anything, int64(1)).Return(openOrder, nil).Once()
				d.pcbs.On("ByID", mock.Anything, int64(2)).Return(board, nil).Once()
				d.repo.On("ItemByOrderAndPcb", mock.Anything, int64(1), int64(2)).Return(existing, nil).Once()
				d.repo.
					On("UpdateItem", mock.Anything, mock.MatchedBy(func(i *model.OrderItem) bool {
						return i.ID == itemID && i.Quantity == 5 && i.PricePerPcb == 120
					})).
					Return(nil).
					Once()
				d.pcbs.On("UpdateOrderedQuantity", mock.Anything, int64(2), int64(6)).Return(nil).Once()
				d.repo.On("ItemsByOrderID", mock.Anything, int64(1)).
					Return([]model.OrderItem{{ID: itemID, Quantity: 5, PricePerPcb: 120}}, nil).
					Once()
				d.repo.On("SetTotalAmount", mock.Anything, int64(1), float64(600)).Return(nil).Once()
			},
			assertFn: func(t *testing.T, item *model.OrderItem, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(5), item.Quantity)
			},
		},
		{
			name: "editing a line on the same board releases its own reservation first",
			params: model.AddOrUpdateItemParams{
				OrderID: 1, PcbID: 2, Quantity: 9,
				ItemID: &itemID,
			},
			setup: func(d orderDeps) {
				// All 8 reserved units belong to this line, so 10-8+8=10 is free
				// and quantity 9 fits even though the pool shows only 2.
				board := &model.Pcb{ID: 2, Name: gofakeit.ProductName(), Price: 50, TotalStock: 10, OrderedQuantity: 8}
				existing := &model.OrderItem{ID: itemID, OrderID: 1, PcbID: 2, Quantity: 8, PricePerPcb: 40}
				d.repo.On("ByID", mock.Anything, int64(1)).Return(openOrder, nil).Once()
				d.repo.On("ItemByID", mock.Anything, itemID).Return(existing, nil).Once()
				d.pcbs.On("ByID", mock.Anything, int64(2)).Return(board, nil).Once()
				d.pcbs.On("UpdateOrderedQuantity", mock.Anything, int64(2), int64(9)).Return(nil).Once()
				d.repo.
					On("UpdateItem", mock.Anything, mock.MatchedBy(func(i *model.OrderItem) bool {
						return i.Quantity == 9 && i.PricePerPcb == 50
					})).
					Return(nil).
					Once()
				d.repo.On("ItemsByOrderID", mock.Anything, int64(1)).
					Return([]model.OrderItem{{ID: itemID, Quantity: 9, PricePerPcb: 50}}, nil).
					Once()
				d.repo.On("SetTotalAmount", mock.Anything, int64(1), float64(450)).Return(nil).Once()
			},
			assertFn: func(t *testing.T, item *model.OrderItem, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(9), item.Quantity)
			},
		},
		{
			name: "moving a line to another board swaps the reservations",
			params: model.AddOrUpdateItemParams{
				OrderID: 1, PcbID: 3, Quantity: 2,
				ItemID: &itemID,
			},
			setup: func(d orderDeps) {
				oldBoard := &model.Pcb{ID: 2, TotalStock: 10, OrderedQuantity: 5}
				newBoard := &model.Pcb{ID: 3, Name: gofakeit.ProductName(), Price: 80, TotalStock: 6, OrderedQuantity: 1}
				existing := &model.OrderItem{ID: itemID, OrderID: 1, PcbID: 2, Quantity: 5, PricePerPcb: 40}
				d.repo.On("ByID", mock.Anything, int64(1)).Return(openOrder, nil).Once()
				d.repo.On("ItemByID", mock.Anything, itemID).Return(existing, nil).Once()
				d.pcbs.On("ByID", mock.Anything, int64(3)).Return(newBoard, nil).Once()
				d.pcbs.On("ByID", mock.Anything, int64(2)).Return(oldBoard, nil).Once()
				d.pcbs.On("UpdateOrderedQuantity", mock.Anything, int64(2), int64(0)).Return(nil).Once()
				d.pcbs.On("UpdateOrderedQuantity", mock.Anything, int64(3), int64(3)).Return(nil).Once()
				d.repo.
					On("UpdateItem", mock.Anything, mock.MatchedBy(func(i *model.OrderItem) bool {
						return i.PcbID == 3 && i.Quantity == 2 && i.PricePerPcb == 80
					})).
					Return(nil).
					Once()
				d.repo.On("ItemsByOrderID", mock.Anything, int64(1)).
					Return([]model.OrderItem{{ID: itemID, Quantity: 2, PricePerPcb: 80}}, nil).
					Once()
				d.repo.On("SetTotalAmount", mock.Anything, int64(1), float64(160)).Return(nil).Once()
			},
			assertFn: func(t *testing.T, item *model.OrderItem, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(3), item.PcbID)
			},
		},
		{
			name:   "terminal order rejects cart changes",
			params: model.AddOrUpdateItemParams{OrderID: 1, PcbID: 2, Quantity: 1},
			setup: func(d orderDeps) {
				d.repo.On("ByID", mock.Anything, int64(1)).
					Return(&model.Order{ID: 1, Status: model.StatusShipped}, nil).
					Once()
			},
			assertFn: func(t *testing.T, item *model.OrderItem, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrInvalidState)
			},
		},
		{
			name:   "non-positive quantity rejected",
			params: model.AddOrUpdateItemParams{OrderID: 1, PcbID: 2, Quantity: 0},
			setup:  func(d orderDeps) {},
			assertFn: func(t *testing.T, item *model.OrderItem, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newOrderDeps(t)
			tt.setup(d)

			item, err := d.service().AddOrUpdateItem(context.Background(), tt.params)
			tt.assertFn(t, item, err)
		})
	}
}

func TestServiceSetStatusDeductsStockOnce(t *testing.T) {
	t.Parallel()

	board := &model.Pcb{ID: 2, Name: gofakeit.ProductName(), TotalStock: 10, OrderedQuantity: 4}

	d := newOrderDeps(t)

	d.repo.On("ByID", mock.Anything, int64(1)).
		Return(&model.Order{ID: 1, Status: model.StatusPaid}, nil).
		Once()
	d.repo.On("SetStatus", mock.Anything, int64(1), model.StatusReady).Return(nil).Once()
	d.repo.On("ItemsByOrderID", mock.Anything, int64(1)).
		Return([]model.OrderItem{{ID: 20, OrderID: 1, PcbID: 2, Quantity: 4}}, nil).
		Once()
	d.pcbs.On("ByID", mock.Anything, int64(2)).Return(board, nil).Once()
	d.stock.On("SetPcbStock", mock.Anything, int64(2), int64(6)).Return(nil).Once()
	d.pcbs.On("UpdateOrderedQuantity", mock.Anything, int64(2), int64(0)).Return(nil).Once()
	d.repo.On("SetStockDeducted", mock.Anything, int64(1), true).Return(nil).Once()

	svc := d.service()
	require.NoError(t, svc.SetStatus(context.Background(), 1, model.StatusReady))

	// The second terminal transition must not touch stock again.
	d.repo.On("ByID", mock.Anything, int64(1)).
		Return(&model.Order{ID: 1, Status: model.StatusReady, StockDeducted: true}, nil).
		Once()
	d.repo.On("SetStatus", mock.Anything, int64(1), model.StatusShipped).Return(nil).Once()

	require.NoError(t, svc.SetStatus(context.Background(), 1, model.StatusShipped))

	d.stock.AssertNumberOfCalls(t, "SetPcbStock", 1)
	d.repo.AssertNumberOfCalls(t, "SetStockDeducted", 1)
}

func TestServiceSetStatusInsufficientBoardStock(t *testing.T) {
	t.Parallel()

	board := &model.Pcb{ID: 2, Name: gofakeit.ProductName(), TotalStock: 3, OrderedQuantity: 4}

	d := newOrderDeps(t)

	d.repo.On("ByID", mock.Anything, int64(1)).
		Return(&model.Order{ID: 1, Status: model.StatusPaid}, nil).
		Once()
	d.repo.On("SetStatus", mock.Anything, int64(1), model.StatusReady).Return(nil).Once()
	d.repo.On("ItemsByOrderID", mock.Anything, int64(1)).
		Return([]model.OrderItem{{ID: 20, OrderID: 1, PcbID: 2, Quantity: 4}}, nil).
		Once()
	d.pcbs.On("ByID", mock.Anything, int64(2)).Return(board, nil).Once()

	err := d.service().SetStatus(context.Background(), 1, model.StatusReady)
	require.Error(t, err)

	var short *model.InsufficientStockError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, int64(1), short.Deficit)

	d.stock.AssertNotCalled(t, "SetPcbStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceRemoveItem(t *testing.T) {
	t.Parallel()

	d := newOrderDeps(t)

	item := &model.OrderItem{ID: 20, OrderID: 1, PcbID: 2, Quantity: 3, PricePerPcb: 100}
	board := &model.Pcb{ID: 2, TotalStock: 10, OrderedQuantity: 5}

	d.repo.On("ItemByID", mock.Anything, int64(20)).Return(item, nil).Once()
	d.repo.On("ByID", mock.Anything, int64(1)).
		Return(&model.Order{ID: 1, Status: model.StatusPaid}, nil).
		Once()
	d.pcbs.On("ByID", mock.Anything, int64(2)).Return(board, nil).Once()
	d.pcbs.On("UpdateOrderedQuantity", mock.Anything, int64(2), int64(2)).Return(nil).Once()
	d.repo.On("DeleteItem", mock.Anything, int64(20)).Return(nil).Once()
	d.repo.On("ItemsByOrderID", mock.Anything, int64(1)).Return(nil, nil).Once()
	d.repo.On("SetTotalAmount", mock.Anything, int64(1), float64(0)).Return(nil).Once()

	require.NoError(t, d.service().RemoveItem(context.Background(), 20))
}

func TestServiceDeleteReleasesReservations(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name  string
		setup func(d orderDeps)
	}

	tests := []testCase{
		{
			name: "open order returns reserved boards to the pool",
			setup: func(d orderDeps) {
				board := &model.Pcb{ID: 2, TotalStock: 10, OrderedQuantity: 5}
				d.repo.On("ByID", mock.Anything, int64(1)).
					Return(&model.Order{ID: 1, Status: model.StatusPaid}, nil).
					Once()
				d.repo.On("ItemsByOrderID", mock.Anything, int64(1)).
					Return([]model.OrderItem{{ID: 20, OrderID: 1, PcbID: 2, Quantity: 3}}, nil).
					Once()
				d.pcbs.On("ByID", mock.Anything, int64(2)).Return(board, nil).Once()
				d.pcbs.On("UpdateOrderedQuantity", mock.Anything, int64(2), int64(2)).Return(nil).Once()
				d.repo.On("Delete", mock.Anything, int64(1)).Return(nil).Once()
			},
		},
		{
			name: "shipped order holds no reservations to release",
			setup: func(d orderDeps) {
				d.repo.On("ByID", mock.Anything, int64(1)).
					Return(&model.Order{ID: 1, Status: model.StatusShipped, StockDeducted: true}, nil).
					Once()
				d.repo.On("Delete", mock.Anything, int64(1)).Return(nil).Once()
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newOrderDeps(t)
			tt.setup(d)

			require.NoError(t, d.service().Delete(context.Background(), 1))
		})
	}
}
