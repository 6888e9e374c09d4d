package services

import (
	"context"
	"fmt"
	"time"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/config"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/models"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/repo"
)

type transactionStore interface {
	Start(ctx context.Context, vehicleID int64, capacity int, startedAt time.Time) (*models.Transaction, error)
	Get(ctx context.Context, id int64) (*models.Transaction, error)
	Delete(ctx context.Context, id int64) error
	Complete(ctx context.Context, transactionID int64, debit *repo.CardDebit, rec models.ReportRecord) error
}

type customerReader interface {
	Get(ctx context.Context, id int64) (*models.Customer, error)
}

type vehicleReader interface {
	Get(ctx context.Context, id int64) (*models.Vehicle, error)
}

// TransactionService orchestrates the parking transaction lifecycle:
// starting, completing (validate card, price, collect payment, archive)
// and deleting active transactions.
type TransactionService struct {
	Settings     config.Settings
	Transactions transactionStore
	Customers    customerReader
	Vehicles     vehicleReader
	Policy       *CardPolicy
	Payments     *PaymentService
	Now          func() time.Time
}

func NewTransactionService(
	settings config.Settings,
	transactions transactionStore,
	customers customerReader,
	vehicles vehicleReader,
	policy *CardPolicy,
	payments *PaymentService,
) *TransactionService {
	return &TransactionService{
		Settings:     settings,
		Transactions: transactions,
		Customers:    customers,
		Vehicles:     vehicles,
		Policy:       policy,
		Payments:     payments,
		Now:          time.Now,
	}
}

// Start parks the vehicle: one active transaction per vehicle, total
// active count below the configured capacity.
func (s *TransactionService) Start(ctx context.Context, vehicleID int64) (*models.Transaction, error) {
	return s.Transactions.Start(ctx, vehicleID, s.Settings.ParkingCapacity, s.Now().UTC())
}

// CompletionResult summarises a completed transaction for the caller.
type CompletionResult struct {
	TransactionID int64     `json:"transactionId"`
	Charge        float64   `json:"charge"`
	Method        PayMethod `json:"method"`
	Change        float64   `json:"change,omitempty"`
	Receipt       string    `json:"receipt"`
	EndedAt       time.Time `json:"endedAt"`
}

// Complete runs the staged completion checks in order. Each stage is a
// hard gate: any failure leaves the active transaction untouched. Only an
// accepted payment reaches the atomic archive-and-remove step.
func (s *TransactionService) Complete(ctx context.Context, transactionID int64, req WizardRequest) (*CompletionResult, error) {
	tran, err := s.Transactions.Get(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if tran == nil {
		return nil, repo.ErrNotFound
	}

	cust, err := s.Customers.Get(ctx, tran.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}

	cardType, err := s.Policy.Check(cust)
	if err != nil {
		return nil, err
	}
	if cardType == models.CardError {
		return nil, ErrCardRejected
	}

	veh, err := s.Vehicles.Get(ctx, tran.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	if veh == nil {
		return nil, repo.ErrNotFound
	}

	endedAt := s.Now().UTC()
	elapsed := ElapsedSeconds(tran.StartedAt, endedAt)
	charge := CalculateCharge(cardType, elapsed, s.Settings)

	outcome, err := s.Payments.Collect(ctx, cardType, cust.ID, cust.Name, charge, req)
	if err != nil {
		return nil, err
	}

	rec := models.ReportRecord{
		Vehicle:   veh.RegNum,
		Customer:  cust.Name,
		StartedAt: tran.StartedAt,
		EndedAt:   endedAt,
		Charge:    charge,
	}
	if err := s.Transactions.Complete(ctx, tran.ID, outcome.Debit, rec); err != nil {
		return nil, fmt.Errorf("archive transaction: %w", err)
	}

	return &CompletionResult{
		TransactionID: tran.ID,
		Charge:        charge,
		Method:        outcome.Method,
		Change:        outcome.Change,
		Receipt:       outcome.Receipt,
		EndedAt:       endedAt,
	}, nil
}

// Delete removes an active transaction without any payment step.
func (s *TransactionService) Delete(ctx context.Context, transactionID int64) error {
	return s.Transactions.Delete(ctx, transactionID)
}
