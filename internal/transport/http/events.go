package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dihow/CircuitBoardWarehouse/internal/logger"
	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

const eventBuffer = 64

type EventSource interface {
	Subscribe(buffer int) (<-chan model.ChangeEvent, func())
}

type eventHandler struct {
	src EventSource
}

func NewEventHandler(src EventSource) *eventHandler {
	return &eventHandler{src: src}
}

type eventPayload struct {
	EventID    string            `json:"event_id"`
	Collection model.Collection  `json:"collection"`
	EntityID   int64             `json:"entity_id"`
	Action     model.EventAction `json:"action"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Stream pushes change events as server-sent events until the client
// disconnects. Clients re-query collections they show after each event.
func (h *eventHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, fmt.Errorf("streaming unsupported: %w", model.ErrInvalidState))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cancel := h.src.Subscribe(eventBuffer)
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}

			body, err := json.Marshal(eventPayload{
				EventID:    ev.EventID.String(),
				Collection: ev.Collection,
				EntityID:   ev.EntityID,
				Action:     ev.Action,
				OccurredAt: ev.OccurredAt,
			})
			if err != nil {
				logger.Error(r.Context(), "marshal change event", logger.ErrorF(err))
				continue
			}

			if _, err := fmt.Fprintf(w, "data: %s\n\n", body); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
