package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/config"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/db"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/gatewayclient"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/httpapi"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/repo"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	d, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer d.Close()

	customers := repo.NewCustomersRepo(d.Pool)
	vehicles := repo.NewVehiclesRepo(d.Pool)
	transactions := repo.NewTransactionsRepo(d.Pool)
	reports := repo.NewReportsRepo(d.Pool)

	gw := gatewayclient.New(cfg.GatewayBaseURL, cfg.GatewayAPIKey)

	wizard := services.NewPayWizard(gw)
	policy := services.NewCardPolicy()
	payments := services.NewPaymentService(customers, wizard)
	customerSvc := services.NewCustomerService(customers, wizard)
	vehicleSvc := services.NewVehicleService(vehicles, transactions)
	transactionSvc := services.NewTransactionService(cfg.Parking, transactions, customers, vehicles, policy, payments)

	srv := httpapi.NewServer(cfg, customers, vehicles, transactions, reports, customerSvc, vehicleSvc, transactionSvc)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Println("parking manager listening on", cfg.ListenAddr)
		log.Fatal(httpServer.ListenAndServe())
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = httpServer.Shutdown(ctx2)
	log.Println("parking manager shutdown complete")
}
