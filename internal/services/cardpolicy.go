package services

import (
	"errors"
	"time"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/models"
)

// ErrCustomerNotFound is returned when a card check targets a customer
// record that no longer exists.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrCardExpired is returned when a month or year membership card is past
// its validity window.
var ErrCardExpired = errors.New("membership card has expired")

// CardPolicy decides whether a customer's membership card is still valid.
type CardPolicy struct {
	Now func() time.Time
}

func NewCardPolicy() *CardPolicy {
	return &CardPolicy{Now: time.Now}
}

// Check returns the customer's effective card type. Month cards are valid
// for 30 days counting the issue day itself; year cards for as many days
// as the issue year has. Expired or unusable cards come back as CardError
// together with the reason.
func (p *CardPolicy) Check(c *models.Customer) (models.CardType, error) {
	if c == nil {
		return models.CardError, ErrCustomerNotFound
	}

	today := p.Now()

	switch c.CardType {
	case models.CardMonth:
		if c.CardDate == nil {
			return models.CardError, ErrCardExpired
		}
		if daysBetween(*c.CardDate, today)+1 > 30 {
			return models.CardError, ErrCardExpired
		}
		return models.CardMonth, nil

	case models.CardYear:
		if c.CardDate == nil {
			return models.CardError, ErrCardExpired
		}
		if daysBetween(*c.CardDate, today) > daysInYear(c.CardDate.Year()) {
			return models.CardError, ErrCardExpired
		}
		return models.CardYear, nil

	case models.CardNone, models.CardSimple, models.CardCredit:
		return c.CardType, nil

	default:
		return models.CardError, nil
	}
}

// daysBetween counts calendar days from a's date to b's date, ignoring
// the time of day.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da) / (24 * time.Hour))
}

func daysInYear(year int) int {
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 366
	}
	return 365
}
