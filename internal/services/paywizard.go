package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/arith"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/repo"
)

// PayMethod identifies how a payment was collected.
type PayMethod string

const (
	PayCash       PayMethod = "cash"
	PayCard       PayMethod = "card"
	PayMember     PayMethod = "member"
	PayStoredCard PayMethod = "stored-card"
)

// ErrInsufficientCash is returned when the inserted cash does not cover
// the charge.
var ErrInsufficientCash = errors.New("inserted cash is less than the charge")

// ErrCardDeclined is returned when the gateway refuses the card charge.
var ErrCardDeclined = errors.New("credit card was not charged")

// ErrUnknownPayMethod is returned when the payment request names neither
// cash nor card.
var ErrUnknownPayMethod = errors.New("unknown payment method")

// WizardRequest carries the cash-desk payment details. It replaces the
// interactive wizard input pages with an explicit request struct.
type WizardRequest struct {
	Method     PayMethod `json:"method"`
	CashAmount float64   `json:"cashAmount,omitempty"`
	CardNumber string    `json:"cardNumber,omitempty"`
}

// PaymentOutcome is the accepted result of a payment. Customer, Method,
// Change and Receipt exist for display only; Debit is the pending
// stored-card settlement to apply together with the archival.
type PaymentOutcome struct {
	Customer string          `json:"customer"`
	Method   PayMethod       `json:"method"`
	Change   float64         `json:"change,omitempty"`
	Receipt  string          `json:"receipt"`
	Debit    *repo.CardDebit `json:"-"`
}

type cardGateway interface {
	ChargeCard(ctx context.Context, cardNumber string, amount float64) (bool, error)
}

// PayWizard runs the cash-or-card payment state machine:
// SelectPayWay -> InsertCash | InsertCard -> Complete. Declined steps
// reject the whole attempt; the caller may retry with a fresh request.
type PayWizard struct {
	Gateway cardGateway
}

func NewPayWizard(gw cardGateway) *PayWizard { return &PayWizard{Gateway: gw} }

type wizardPage int

const (
	pageSelectPayWay wizardPage = iota
	pageInsertCash
	pageInsertCard
	pageComplete
)

// Run walks the wizard pages for the given charge. A nil error means the
// payment was accepted and the Complete page was reached. The customer
// name is carried through for the receipt only.
func (w *PayWizard) Run(ctx context.Context, customerName string, charge float64, req WizardRequest) (*PaymentOutcome, error) {
	out := &PaymentOutcome{Customer: customerName}

	page := pageSelectPayWay
	for {
		switch page {
		case pageSelectPayWay:
			switch req.Method {
			case PayCash:
				page = pageInsertCash
			case PayCard:
				page = pageInsertCard
			default:
				return nil, ErrUnknownPayMethod
			}

		case pageInsertCash:
			if arith.LessThan(req.CashAmount, charge) {
				return nil, ErrInsufficientCash
			}
			out.Method = PayCash
			out.Change = req.CashAmount - charge
			page = pageComplete

		case pageInsertCard:
			charged, err := w.Gateway.ChargeCard(ctx, req.CardNumber, charge)
			if err != nil {
				return nil, fmt.Errorf("charge credit card: %w", err)
			}
			if !charged {
				return nil, ErrCardDeclined
			}
			out.Method = PayCard
			page = pageComplete

		case pageComplete:
			out.Receipt = uuid.New().String()
			return out, nil
		}
	}
}
