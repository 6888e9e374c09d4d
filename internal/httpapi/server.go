package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/config"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/repo"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/services"
)

type Server struct {
	Cfg          config.Config
	Customers    *repo.CustomersRepo
	Vehicles     *repo.VehiclesRepo
	Transactions *repo.TransactionsRepo
	Reports      *repo.ReportsRepo

	CustomerSvc    *services.CustomerService
	VehicleSvc     *services.VehicleService
	TransactionSvc *services.TransactionService
}

func NewServer(
	cfg config.Config,
	customers *repo.CustomersRepo,
	vehicles *repo.VehiclesRepo,
	transactions *repo.TransactionsRepo,
	reports *repo.ReportsRepo,
	customerSvc *services.CustomerService,
	vehicleSvc *services.VehicleService,
	transactionSvc *services.TransactionService,
) *Server {
	return &Server{
		Cfg:            cfg,
		Customers:      customers,
		Vehicles:       vehicles,
		Transactions:   transactions,
		Reports:        reports,
		CustomerSvc:    customerSvc,
		VehicleSvc:     vehicleSvc,
		TransactionSvc: transactionSvc,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/v1", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler { return RequireBearer(s.Cfg.APIKey, next) })

		r.Get("/customers", s.ListCustomers)
		r.Post("/customers", s.CreateCustomer)
		r.Get("/customers/{customerId}", s.GetCustomer)
		r.Delete("/customers/{customerId}", s.DeleteCustomer)
		r.Put("/customers/{customerId}/card", s.ChangeCustomerCard)

		r.Get("/vehicles", s.ListVehicles)
		r.Post("/vehicles", s.CreateVehicle)
		r.Get("/vehicles/{vehicleId}", s.GetVehicle)
		r.Delete("/vehicles/{vehicleId}", s.DeleteVehicle)
		r.Post("/vehicles/{vehicleId}/park", s.ParkVehicle)

		r.Get("/transactions", s.ListTransactions)
		r.Get("/transactions/{transactionId}", s.GetTransaction)
		r.Delete("/transactions/{transactionId}", s.DeleteTransaction)
		r.Post("/transactions/{transactionId}/complete", s.CompleteTransaction)

		r.Get("/reports", s.ListReports)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
