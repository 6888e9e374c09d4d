package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/models"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/services"
)

type createCustomerReq struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

func (s *Server) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "customer name is required", http.StatusBadRequest)
		return
	}

	c := models.Customer{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Phone:    req.Phone,
		Email:    req.Email,
		CardType: models.CardNone,
	}
	id, err := s.Customers.Create(r.Context(), c)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	c.ID = id
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) ListCustomers(w http.ResponseWriter, r *http.Request) {
	items, err := s.Customers.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "customerId")
	if !ok {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	c, err := s.Customers.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if c == nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "customerId")
	if !ok {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}
	if !confirmed(r) {
		http.Error(w, "confirmation required", http.StatusBadRequest)
		return
	}

	if err := s.CustomerSvc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type changeCardReq struct {
	CardType string                 `json:"cardType"`
	TopUp    float64                `json:"topUp,omitempty"`
	Payment  services.WizardRequest `json:"payment"`
}

func (s *Server) ChangeCustomerCard(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "customerId")
	if !ok {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	var req changeCardReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	ct := models.ParseCardType(req.CardType)
	if ct == models.CardError {
		http.Error(w, "unknown card type", http.StatusBadRequest)
		return
	}

	outcome, err := s.CustomerSvc.ChangeCard(r.Context(), id, ct, req.TopUp, req.Payment)
	if err != nil {
		writeError(w, err)
		return
	}
	if outcome == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}
