package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

type OrderService interface {
	Create(ctx context.Context, params model.CreateOrderParams) (int64, error)
	Update(ctx context.Context, params model.UpdateOrderParams) error
	SetStatus(ctx context.Context, id int64, status model.OrderStatus) error
	AddOrUpdateItem(ctx context.Context, params model.AddOrUpdateItemParams) (*model.OrderItem, error)
	RemoveItem(ctx context.Context, itemID int64) error
	Delete(ctx context.Context, id int64) error
	Orders(ctx context.Context) ([]model.Order, error)
	OrderByID(ctx context.Context, id int64) (*model.Order, error)
	Items(ctx context.Context, orderID int64) ([]model.OrderItemInfo, error)
}

type orderHandler struct {
	svc OrderService
}

func NewOrderHandler(svc OrderService) *orderHandler {
	return &orderHandler{svc: svc}
}

type orderRequest struct {
	ClientID        int64             `json:"client_id"`
	Status          model.OrderStatus `json:"status"`
	ShippingDate    *time.Time        `json:"shipping_date"`
	ShippingCompany *string           `json:"shipping_company"`
}

type orderResponse struct {
	ID               int64             `json:"id"`
	ClientID         int64             `json:"client_id"`
	RegistrationDate time.Time         `json:"registration_date"`
	Status           model.OrderStatus `json:"status"`
	TotalAmount      float64           `json:"total_amount"`
	ShippingDate     *time.Time        `json:"shipping_date,omitempty"`
	ShippingCompany  *string           `json:"shipping_company,omitempty"`
}

type orderItemRequest struct {
	PcbID    int64  `json:"pcb_id"`
	Quantity int64  `json:"quantity"`
	ItemID   *int64 `json:"item_id,omitempty"`
}

type orderItemResponse struct {
	ID          int64   `json:"id"`
	PcbID       int64   `json:"pcb_id"`
	PcbName     string  `json:"pcb_name,omitempty"`
	Quantity    int64   `json:"quantity"`
	PricePerPcb float64 `json:"price_per_pcb"`
}

func toOrderResponse(o model.Order) orderResponse {
	return orderResponse{
		ID:               o.ID,
		ClientID:         o.ClientID,
		RegistrationDate: o.RegistrationDate,
		Status:           o.Status,
		TotalAmount:      o.TotalAmount,
		ShippingDate:     o.ShippingDate,
		ShippingCompany:  o.ShippingCompany,
	}
}

func (h *orderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.svc.Create(r.Context(), model.CreateOrderParams{
		ClientID:        req.ClientID,
		Status:          req.Status,
		ShippingDate:    req.ShippingDate,
		ShippingCompany: req.ShippingCompany,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *orderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "orderID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req orderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Update(r.Context(), model.UpdateOrderParams{
		ID:              id,
		ClientID:        req.ClientID,
		Status:          req.Status,
		ShippingDate:    req.ShippingDate,
		ShippingCompany: req.ShippingCompany,
	}); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// SetStatus moves the order through its lifecycle. Entering READY or SHIPPED
// deducts board stock once.
func (h *orderHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "orderID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.SetStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *orderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "orderID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *orderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.Orders(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *orderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "orderID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.svc.OrderByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(*o))
}

func (h *orderHandler) Items(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "orderID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.svc.Items(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]orderItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, orderItemResponse{
			ID:          item.ID,
			PcbID:       item.PcbID,
			PcbName:     item.PcbName,
			Quantity:    item.Quantity,
			PricePerPcb: item.PricePerPcb,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// SaveItem adds a cart line or, with item_id set, replaces one.
func (h *orderHandler) SaveItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "orderID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req orderItemRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.svc.AddOrUpdateItem(r.Context(), model.AddOrUpdateItemParams{
		OrderID:  orderID,
		PcbID:    req.PcbID,
		Quantity: req.Quantity,
		ItemID:   req.ItemID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, orderItemResponse{
		ID:          item.ID,
		PcbID:       item.PcbID,
		Quantity:    item.Quantity,
		PricePerPcb: item.PricePerPcb,
	})
}

func (h *orderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.RemoveItem(r.Context(), itemID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
