package http

import (
	"context"
	"net/http"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

type AuthService interface {
	Login(ctx context.Context, login, password string) (int64, error)
	Register(ctx context.Context, e model.Employee, password string) (int64, error)
}

type authHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *authHandler {
	return &authHandler{svc: svc}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type registerRequest struct {
	FullName string  `json:"full_name"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
	Position string  `json:"position"`
	Salary   float64 `json:"salary"`
	Login    string  `json:"login"`
	Password string  `json:"password"`
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	employeeID, err := h.svc.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"employee_id": employeeID})
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.svc.Register(r.Context(), model.Employee{
		FullName: req.FullName,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		Position: req.Position,
		Salary:   req.Salary,
		Login:    req.Login,
	}, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}
