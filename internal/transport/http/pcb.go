package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

type BomService interface {
	CreatePcb(ctx context.Context, params model.CreatePcbParams) (int64, error)
	UpdatePcb(ctx context.Context, params model.UpdatePcbParams) error
	AssignComponent(ctx context.Context, params model.AssignComponentParams) error
	RemoveComponent(ctx context.Context, pcbID, componentID int64) error
	DeletePcb(ctx context.Context, id int64) error
	Pcbs(ctx context.Context) ([]model.Pcb, error)
	PcbByID(ctx context.Context, id int64) (*model.Pcb, error)
	Lines(ctx context.Context, pcbID int64) ([]model.BomLineInfo, error)
}

type pcbHandler struct {
	svc BomService
}

func NewPcbHandler(svc BomService) *pcbHandler {
	return &pcbHandler{svc: svc}
}

type pcbRequest struct {
	Name              string    `json:"name"`
	SerialNumber      string    `json:"serial_number"`
	Batch             string    `json:"batch"`
	Description       *string   `json:"description"`
	Price             float64   `json:"price"`
	TotalStock        int64     `json:"total_stock"`
	ManufacturingDate time.Time `json:"manufacturing_date"`
	Length            float64   `json:"length"`
	Width             float64   `json:"width"`
	LayerCount        int64     `json:"layer_count"`
	Comment           *string   `json:"comment"`
	ImageRef          *string   `json:"image_ref"`
}

type pcbResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	SerialNumber      string    `json:"serial_number"`
	Batch             string    `json:"batch"`
	Description       *string   `json:"description,omitempty"`
	Price             float64   `json:"price"`
	TotalStock        int64     `json:"total_stock"`
	OrderedQuantity   int64     `json:"ordered_quantity"`
	Available         int64     `json:"available"`
	ManufacturingDate time.Time `json:"manufacturing_date"`
	Length            float64   `json:"length"`
	Width             float64   `json:"width"`
	LayerCount        int64     `json:"layer_count"`
	Comment           *string   `json:"comment,omitempty"`
	ImageRef          *string   `json:"image_ref,omitempty"`
}

type bomLineRequest struct {
	ComponentID    int64   `json:"component_id"`
	ComponentCount int64   `json:"component_count"`
	Coordinates    *string `json:"coordinates"`
}

type bomLineResponse struct {
	ComponentID    int64   `json:"component_id"`
	ComponentName  string  `json:"component_name"`
	ComponentType  string  `json:"component_type"`
	ComponentCount int64   `json:"component_count"`
	UnitPrice      float64 `json:"unit_price"`
	Coordinates    *string `json:"coordinates,omitempty"`
}

func toPcbResponse(p model.Pcb) pcbResponse {
	return pcbResponse{
		ID:                p.ID,
		Name:              p.Name,
		SerialNumber:      p.SerialNumber,
		Batch:             p.Batch,
		Description:       p.Description,
		Price:             p.Price,
		TotalStock:        p.TotalStock,
		OrderedQuantity:   p.OrderedQuantity,
		Available:         p.TotalStock - p.OrderedQuantity,
		ManufacturingDate: p.ManufacturingDate,
		Length:            p.Length,
		Width:             p.Width,
		LayerCount:        p.LayerCount,
		Comment:           p.Comment,
		ImageRef:          p.ImageRef,
	}
}

func (h *pcbHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req pcbRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.svc.CreatePcb(r.Context(), model.CreatePcbParams{
		Name:              req.Name,
		SerialNumber:      req.SerialNumber,
		Batch:             req.Batch,
		Description:       req.Description,
		Price:             req.Price,
		TotalStock:        req.TotalStock,
		ManufacturingDate: req.ManufacturingDate,
		Length:            req.Length,
		Width:             req.Width,
		LayerCount:        req.LayerCount,
		Comment:           req.Comment,
		ImageRef:          req.ImageRef,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// Update edits the board. A changed total_stock triggers component
// reconciliation against the board's BOM.
func (h *pcbHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "pcbID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req pcbRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.UpdatePcb(r.Context(), model.UpdatePcbParams{
		ID:                id,
		Name:              req.Name,
		SerialNumber:      req.SerialNumber,
		Batch:             req.Batch,
		Description:       req.Description,
		Price:             req.Price,
		TotalStock:        req.TotalStock,
		ManufacturingDate: req.ManufacturingDate,
		Length:            req.Length,
		Width:             req.Width,
		LayerCount:        req.LayerCount,
		Comment:           req.Comment,
		ImageRef:          req.ImageRef,
	}); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *pcbHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "pcbID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.DeletePcb(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *pcbHandler) List(w http.ResponseWriter, r *http.Request) {
	pcbs, err := h.svc.Pcbs(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]pcbResponse, 0, len(pcbs))
	for _, p := range pcbs {
		out = append(out, toPcbResponse(p))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *pcbHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "pcbID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.svc.PcbByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPcbResponse(*p))
}

func (h *pcbHandler) Lines(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "pcbID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	lines, err := h.svc.Lines(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]bomLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, bomLineResponse{
			ComponentID:    l.ComponentID,
			ComponentName:  l.ComponentName,
			ComponentType:  l.ComponentType,
			ComponentCount: l.ComponentCount,
			UnitPrice:      l.UnitPrice,
			Coordinates:    l.Coordinates,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// AssignComponent writes the BOM line and settles component stock against the
// board's current count.
func (h *pcbHandler) AssignComponent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "pcbID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req bomLineRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.AssignComponent(r.Context(), model.AssignComponentParams{
		PcbID:          id,
		ComponentID:    req.ComponentID,
		ComponentCount: req.ComponentCount,
		Coordinates:    req.Coordinates,
	}); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *pcbHandler) RemoveComponent(w http.ResponseWriter, r *http.Request) {
	pcbID, err := pathID(r, "pcbID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	componentID, err := pathID(r, "componentID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.RemoveComponent(r.Context(), pcbID, componentID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
