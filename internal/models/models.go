package models

import "time"

// CardType is the customer's membership tier. The ordinals match the
// cardtype table rows, which are stored 1-based (see FromStored).
type CardType int

const (
	CardError  CardType = -1
	CardNone   CardType = 0
	CardSimple CardType = 1
	CardMonth  CardType = 2
	CardYear   CardType = 3
	CardCredit CardType = 4
)

// Membership card purchase fees.
const (
	MonthCardFee = 100
	YearCardFee  = 1000
)

// FromStored converts a raw card_id column value (1-based foreign key)
// into a CardType. Anything outside the known range maps to CardError.
func FromStored(raw int) CardType {
	ct := CardType(raw - 1)
	if ct < CardNone || ct > CardCredit {
		return CardError
	}
	return ct
}

// Stored returns the 1-based card_id column value for the card type.
func (ct CardType) Stored() int { return int(ct) + 1 }

func (ct CardType) String() string {
	switch ct {
	case CardNone:
		return "none"
	case CardSimple:
		return "simple"
	case CardMonth:
		return "month"
	case CardYear:
		return "year"
	case CardCredit:
		return "credit"
	default:
		return "error"
	}
}

// ParseCardType maps the wire name back to a CardType, CardError if unknown.
func ParseCardType(s string) CardType {
	switch s {
	case "none":
		return CardNone
	case "simple":
		return CardSimple
	case "month":
		return CardMonth
	case "year":
		return CardYear
	case "credit":
		return CardCredit
	default:
		return CardError
	}
}

type Customer struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address,omitempty"`
	City      string     `json:"city,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	CardType  CardType   `json:"cardType"`
	CardDate  *time.Time `json:"cardDate,omitempty"`
	CardMoney *float64   `json:"cardMoney,omitempty"`
}

type Vehicle struct {
	ID         int64  `json:"id"`
	RegNum     string `json:"regNum"`
	Desc       string `json:"desc,omitempty"`
	CustomerID int64  `json:"customerId"`
}

// Transaction is an active parking transaction: a vehicle currently in
// the parking lot and not yet paid for. At most one per vehicle.
type Transaction struct {
	ID         int64     `json:"id"`
	VehicleID  int64     `json:"vehicleId"`
	CustomerID int64     `json:"customerId"`
	StartedAt  time.Time `json:"startedAt"`
}

// ReportRecord is the write-once archival entry for a completed,
// paid transaction.
type ReportRecord struct {
	ID        int64     `json:"id"`
	Vehicle   string    `json:"vehicle"`
	Customer  string    `json:"customer"`
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
	Charge    float64   `json:"charge"`
}
