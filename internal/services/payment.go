package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/arith"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/models"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/repo"
)

// ErrNoStoredCard is returned when a credit-card customer has no stored
// balance to debit.
var ErrNoStoredCard = errors.New("no stored card balance")

// ErrInsufficientFunds is returned when the stored balance does not cover
// the charge.
var ErrInsufficientFunds = errors.New("stored card balance is less than the charge")

// ErrCardRejected is returned for the error card type, which must never
// reach payment.
var ErrCardRejected = errors.New("card type rejected")

type balanceReader interface {
	CardMoney(ctx context.Context, customerID int64) (*float64, error)
}

// PaymentService dispatches a payment attempt to the collection path the
// card type calls for.
type PaymentService struct {
	Balances balanceReader
	Wizard   *PayWizard
}

func NewPaymentService(balances balanceReader, wizard *PayWizard) *PaymentService {
	return &PaymentService{Balances: balances, Wizard: wizard}
}

// Collect attempts to take the charge from the customer. A nil error means
// the payment is accepted; for credit members the outcome carries a debit
// to be applied atomically with the archival.
func (p *PaymentService) Collect(ctx context.Context, ct models.CardType, customerID int64, customerName string, charge float64, req WizardRequest) (*PaymentOutcome, error) {
	switch ct {
	case models.CardNone, models.CardSimple:
		return p.Wizard.Run(ctx, customerName, charge, req)

	case models.CardMonth, models.CardYear:
		// Validated by the card policy already; nothing to collect.
		return &PaymentOutcome{Customer: customerName, Method: PayMember, Receipt: uuid.New().String()}, nil

	case models.CardCredit:
		money, err := p.Balances.CardMoney(ctx, customerID)
		if err != nil {
			return nil, fmt.Errorf("read card balance: %w", err)
		}
		if money == nil {
			return nil, ErrNoStoredCard
		}
		if arith.LessThan(*money, charge) {
			return nil, ErrInsufficientFunds
		}
		return &PaymentOutcome{
			Customer: customerName,
			Method:   PayStoredCard,
			Receipt:  uuid.New().String(),
			Debit:    &repo.CardDebit{CustomerID: customerID, Amount: charge},
		}, nil

	default:
		return nil, ErrCardRejected
	}
}
