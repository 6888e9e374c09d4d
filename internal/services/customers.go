package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/arith"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/models"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/repo"
)

// Stored-card top-up bounds for credit members.
const (
	MinCardTopUp = 1
	MaxCardTopUp = 1000
)

// ErrGuestCustomer is returned on attempts to remove the built-in guest
// customer that orphaned transactions fall back to.
var ErrGuestCustomer = errors.New("guest customer cannot be removed")

// ErrInvalidTopUp is returned when a credit top-up amount is out of bounds.
var ErrInvalidTopUp = errors.New("top-up amount out of bounds")

// ErrUnknownCardType is returned when a card change names no valid tier.
var ErrUnknownCardType = errors.New("unknown card type")

type customerStore interface {
	Get(ctx context.Context, id int64) (*models.Customer, error)
	SetCard(ctx context.Context, id int64, ct models.CardType, date *time.Time, money *float64) error
	Delete(ctx context.Context, id int64) error
}

// CustomerService covers membership card changes and customer removal.
type CustomerService struct {
	Customers customerStore
	Wizard    *PayWizard
	Now       func() time.Time
}

func NewCustomerService(customers customerStore, wizard *PayWizard) *CustomerService {
	return &CustomerService{Customers: customers, Wizard: wizard, Now: time.Now}
}

// ChangeCard switches the customer to a new membership tier. Month and
// year cards charge their fixed fee through the payment wizard and stamp
// today as the issue date; credit cards collect the top-up amount and
// store it as balance; none/simple clear both date and balance.
func (s *CustomerService) ChangeCard(ctx context.Context, customerID int64, ct models.CardType, topUp float64, req WizardRequest) (*PaymentOutcome, error) {
	cust, err := s.Customers.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if cust == nil {
		return nil, repo.ErrNotFound
	}

	switch ct {
	case models.CardNone, models.CardSimple:
		return nil, s.Customers.SetCard(ctx, customerID, ct, nil, nil)

	case models.CardMonth, models.CardYear:
		fee := float64(models.MonthCardFee)
		if ct == models.CardYear {
			fee = models.YearCardFee
		}
		outcome, err := s.Wizard.Run(ctx, cust.Name, fee, req)
		if err != nil {
			return nil, err
		}
		today := s.Now().UTC()
		if err := s.Customers.SetCard(ctx, customerID, ct, &today, nil); err != nil {
			return nil, err
		}
		return outcome, nil

	case models.CardCredit:
		if arith.LessThan(topUp, MinCardTopUp) || arith.GreaterThan(topUp, MaxCardTopUp) {
			return nil, ErrInvalidTopUp
		}
		outcome, err := s.Wizard.Run(ctx, cust.Name, topUp, req)
		if err != nil {
			return nil, err
		}
		if err := s.Customers.SetCard(ctx, customerID, ct, nil, &topUp); err != nil {
			return nil, err
		}
		return outcome, nil

	default:
		return nil, ErrUnknownCardType
	}
}

// Delete removes a customer; their active transactions are reassigned to
// the guest customer by the store.
func (s *CustomerService) Delete(ctx context.Context, customerID int64) error {
	if customerID == repo.GuestCustomerID {
		return ErrGuestCustomer
	}
	return s.Customers.Delete(ctx, customerID)
}
