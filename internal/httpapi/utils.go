package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/repo"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// confirmed reports whether the caller acknowledged a destructive or
// monetary action, the request/response stand-in for the yes/no prompt.
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

// writeError maps domain errors onto HTTP statuses: lookups to 404,
// policy conflicts to 409, payment rejections to 402.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound), errors.Is(err, services.ErrCustomerNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repo.ErrVehicleParked),
		errors.Is(err, repo.ErrParkingFull),
		errors.Is(err, services.ErrGuestCustomer):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, services.ErrCardExpired),
		errors.Is(err, services.ErrCardRejected),
		errors.Is(err, services.ErrInsufficientCash),
		errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrNoStoredCard),
		errors.Is(err, services.ErrCardDeclined),
		errors.Is(err, repo.ErrDebitFailed):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	case errors.Is(err, services.ErrUnknownPayMethod),
		errors.Is(err, services.ErrInvalidTopUp),
		errors.Is(err, services.ErrUnknownCardType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
