package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

type LedgerService interface {
	Movements(ctx context.Context) ([]model.Movement, error)
}

type movementHandler struct {
	svc LedgerService
}

func NewMovementHandler(svc LedgerService) *movementHandler {
	return &movementHandler{svc: svc}
}

type movementResponse struct {
	ID          int64              `json:"id"`
	Type        model.MovementType `json:"type"`
	ProductType model.ProductType  `json:"product_type"`
	Description string             `json:"description"`
	Value       int64              `json:"value"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

func (h *movementHandler) List(w http.ResponseWriter, r *http.Request) {
	movements, err := h.svc.Movements(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]movementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, movementResponse{
			ID:          m.ID,
			Type:        m.Type,
			ProductType: m.ProductType,
			Description: m.Description,
			Value:       m.Value,
			OccurredAt:  m.OccurredAt,
		})
	}

	writeJSON(w, http.StatusOK, out)
}
