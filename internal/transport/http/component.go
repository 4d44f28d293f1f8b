package http

import (
	"context"
	"net/http"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

type ComponentService interface {
	Create(ctx context.Context, params model.CreateComponentParams) (int64, error)
	Update(ctx context.Context, params model.UpdateComponentParams) error
	Delete(ctx context.Context, id int64) error
	SetStock(ctx context.Context, id, newStock int64) error
	Components(ctx context.Context) ([]model.Component, error)
	ComponentByID(ctx context.Context, id int64) (*model.Component, error)
	Specifications(ctx context.Context, componentID int64) ([]model.ComponentSpecification, error)
}

type componentHandler struct {
	svc ComponentService
}

func NewComponentHandler(svc ComponentService) *componentHandler {
	return &componentHandler{svc: svc}
}

type specificationDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type componentRequest struct {
	Name           string             `json:"name"`
	Manufacturer   string             `json:"manufacturer"`
	Price          float64            `json:"price"`
	Type           string             `json:"type"`
	StockQuantity  int64              `json:"stock_quantity"`
	Specifications []specificationDTO `json:"specifications"`
}

type componentResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Manufacturer  string  `json:"manufacturer"`
	Price         float64 `json:"price"`
	Type          string  `json:"type"`
	StockQuantity int64   `json:"stock_quantity"`
}

func toComponentResponse(c model.Component) componentResponse {
	return componentResponse{
		ID:            c.ID,
		Name:          c.Name,
		Manufacturer:  c.Manufacturer,
		Price:         c.Price,
		Type:          c.Type,
		StockQuantity: c.StockQuantity,
	}
}

func toSpecificationParams(in []specificationDTO) []model.SpecificationParams {
	out := make([]model.SpecificationParams, 0, len(in))
	for _, s := range in {
		out = append(out, model.SpecificationParams{Name: s.Name, Value: s.Value})
	}
	return out
}

func (h *componentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req componentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.svc.Create(r.Context(), model.CreateComponentParams{
		Name:           req.Name,
		Manufacturer:   req.Manufacturer,
		Price:          req.Price,
		Type:           req.Type,
		StockQuantity:  req.StockQuantity,
		Specifications: toSpecificationParams(req.Specifications),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *componentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "componentID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req componentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Update(r.Context(), model.UpdateComponentParams{
		ID:             id,
		Name:           req.Name,
		Manufacturer:   req.Manufacturer,
		Price:          req.Price,
		Type:           req.Type,
		Specifications: toSpecificationParams(req.Specifications),
	}); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *componentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "componentID")
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

// SetStock adjusts shelf stock; the movement ledger records the delta.
func (h *componentHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "componentID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req struct {
		StockQuantity int64 `json:"stock_quantity"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.SetStock(r.Context(), id, req.StockQuantity); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *componentHandler) List(w http.ResponseWriter, r *http.Request) {
	components, err := h.svc.Components(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]componentResponse, 0, len(components))
	for _, c := range components {
		out = append(out, toComponentResponse(c))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *componentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "componentID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.svc.ComponentByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toComponentResponse(*c))
}

func (h *componentHandler) Specifications(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "componentID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	specs, err := h.svc.Specifications(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]specificationDTO, 0, len(specs))
	for _, s := range specs {
		out = append(out, specificationDTO{Name: s.Name, Value: s.Value})
	}

	writeJSON(w, http.StatusOK, out)
}
