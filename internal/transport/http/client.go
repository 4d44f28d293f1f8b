package http

import (
	"context"
	"net/http"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

type ClientService interface {
	Create(ctx context.Context, params model.SaveClientParams) (int64, error)
	Update(ctx context.Context, id int64, params model.SaveClientParams) error
	Delete(ctx context.Context, id int64) error
	ClientByID(ctx context.Context, id int64) (*model.ClientInfo, error)
	Clients(ctx context.Context) ([]model.ClientInfo, error)
}

type clientHandler struct {
	svc ClientService
}

func NewClientHandler(svc ClientService) *clientHandler {
	return &clientHandler{svc: svc}
}

type personDTO struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	Age      int64  `json:"age"`
}

type entityDTO struct {
	Name          string `json:"name"`
	INN           string `json:"inn"`
	ContactPerson string `json:"contact_person"`
	LegalAddress  string `json:"legal_address"`
	ActualAddress string `json:"actual_address"`
}

type clientRequest struct {
	Type   model.ClientType `json:"type"`
	Phone  string           `json:"phone"`
	Email  string           `json:"email"`
	Person *personDTO       `json:"person,omitempty"`
	Entity *entityDTO       `json:"entity,omitempty"`
}

type clientResponse struct {
	ID          int64            `json:"id"`
	Type        model.ClientType `json:"type"`
	DisplayName string           `json:"display_name"`
	Phone       string           `json:"phone"`
	Email       string           `json:"email"`
	Person      *personDTO       `json:"person,omitempty"`
	Entity      *entityDTO       `json:"entity,omitempty"`
}

func (req clientRequest) toParams() model.SaveClientParams {
	params := model.SaveClientParams{
		Type:  req.Type,
		Phone: req.Phone,
		Email: req.Email,
	}
	if req.Person != nil {
		params.Person = &model.PhysicalPerson{
			FullName: req.Person.FullName,
			Address:  req.Person.Address,
			Age:      req.Person.Age,
		}
	}
	if req.Entity != nil {
		params.Entity = &model.LegalEntity{
			Name:          req.Entity.Name,
			INN:           req.Entity.INN,
			ContactPerson: req.Entity.ContactPerson,
			LegalAddress:  req.Entity.LegalAddress,
			ActualAddress: req.Entity.ActualAddress,
		}
	}
	return params
}

func toClientResponse(info model.ClientInfo) clientResponse {
	resp := clientResponse{
		ID:          info.ID,
		Type:        info.Type,
		DisplayName: info.DisplayName(),
		Phone:       info.Phone,
		Email:       info.Email,
	}
	if info.Person != nil {
		resp.Person = &personDTO{
			FullName: info.Person.FullName,
			Address:  info.Person.Address,
			Age:      info.Person.Age,
		}
	}
	if info.Entity != nil {
		resp.Entity = &entityDTO{
			Name:          info.Entity.Name,
			INN:           info.Entity.INN,
			ContactPerson: info.Entity.ContactPerson,
			LegalAddress:  info.Entity.LegalAddress,
			ActualAddress: info.Entity.ActualAddress,
		}
	}
	return resp
}

func (h *clientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.svc.Create(r.Context(), req.toParams())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *clientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "clientID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req clientRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Update(r.Context(), id, req.toParams()); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *clientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "clientID")
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

func (h *clientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.Clients(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *clientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "clientID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	info, err := h.svc.ClientByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toClientResponse(*info))
}
