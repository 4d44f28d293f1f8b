// Package http exposes the warehouse over a JSON REST API. Handlers hold
// consumer-side service interfaces; error mapping to status codes lives in
// writeError so every resource reports failures the same way.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dihow/CircuitBoardWarehouse/internal/logger"
	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// Deficit is set only for insufficient-stock conflicts.
	Deficit *int64 `json:"deficit,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(context.Background(), "encode response", logger.ErrorF(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := errorResponse{Message: err.Error()}

	var short *model.InsufficientStockError

	switch {
	case errors.Is(err, model.ErrValidation):
		resp.Code = http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		resp.Code = http.StatusNotFound
	case errors.As(err, &short):
		resp.Code = http.StatusConflict
		resp.Deficit = &short.Deficit
	case errors.Is(err, model.ErrInvalidState):
		resp.Code = http.StatusConflict
	case errors.Is(err, model.ErrInvalidCredentials):
		resp.Code = http.StatusUnauthorized
	case errors.Is(err, model.ErrStorageConflict):
		resp.Code = http.StatusServiceUnavailable
	default:
		resp.Code = http.StatusInternalServerError
		logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.ErrorF(err),
		)
	}

	writeJSON(w, resp.Code, resp)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return model.ErrValidation
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, model.ErrValidation
	}
	return id, nil
}
