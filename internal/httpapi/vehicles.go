package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/models"
)

type createVehicleReq struct {
	RegNum     string `json:"regNum"`
	Desc       string `json:"desc"`
	CustomerID int64  `json:"customerId"`
}

func (s *Server) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req createVehicleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	req.RegNum = strings.TrimSpace(req.RegNum)
	if req.RegNum == "" {
		http.Error(w, "registration number is required", http.StatusBadRequest)
		return
	}
	if req.CustomerID <= 0 {
		http.Error(w, "owning customer id is required", http.StatusBadRequest)
		return
	}

	owner, err := s.Customers.Get(r.Context(), req.CustomerID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if owner == nil {
		http.Error(w, "owning customer not found", http.StatusNotFound)
		return
	}

	v := models.Vehicle{RegNum: req.RegNum, Desc: req.Desc, CustomerID: req.CustomerID}
	id, err := s.Vehicles.Create(r.Context(), v)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	v.ID = id
	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	items, err := s.Vehicles.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "vehicleId")
	if !ok {
		http.Error(w, "invalid vehicle id", http.StatusBadRequest)
		return
	}

	v, err := s.Vehicles.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if v == nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "vehicleId")
	if !ok {
		http.Error(w, "invalid vehicle id", http.StatusBadRequest)
		return
	}
	if !confirmed(r) {
		http.Error(w, "confirmation required", http.StatusBadRequest)
		return
	}

	if err := s.VehicleSvc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
