package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/services"
)

func (s *Server) ParkVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "vehicleId")
	if !ok {
		http.Error(w, "invalid vehicle id", http.StatusBadRequest)
		return
	}

	tran, err := s.TransactionSvc.Start(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tran)
}

func (s *Server) ListTransactions(w http.ResponseWriter, r *http.Request) {
	items, err := s.Transactions.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "transactionId")
	if !ok {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	tran, err := s.Transactions.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if tran == nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, tran)
}

func (s *Server) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "transactionId")
	if !ok {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}
	if !confirmed(r) {
		http.Error(w, "confirmation required", http.StatusBadRequest)
		return
	}

	if err := s.TransactionSvc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type completeReq struct {
	Confirm bool                   `json:"confirm"`
	Payment services.WizardRequest `json:"payment"`
}

func (s *Server) CompleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "transactionId")
	if !ok {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	var req completeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if !req.Confirm {
		http.Error(w, "confirmation required", http.StatusBadRequest)
		return
	}

	result, err := s.TransactionSvc.Complete(r.Context(), id, req.Payment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
