package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/models"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func policyAt(y int, m time.Month, d int) *CardPolicy {
	return &CardPolicy{Now: fixedNow(time.Date(y, m, d, 12, 30, 0, 0, time.UTC))}
}

func TestCheckMissingCustomer(t *testing.T) {
	p := NewCardPolicy()
	ct, err := p.Check(nil)
	assert.Equal(t, models.CardError, ct)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCheckDatelessTypesAlwaysValid(t *testing.T) {
	p := policyAt(2026, time.March, 1)
	for _, tier := range []models.CardType{models.CardNone, models.CardSimple, models.CardCredit} {
		ct, err := p.Check(&models.Customer{ID: 1, Name: "a", CardType: tier})
		require.NoError(t, err)
		assert.Equal(t, tier, ct)
	}
}

func TestCheckMonthCardWindow(t *testing.T) {
	issued := datePtr(2026, time.March, 10)
	cust := &models.Customer{ID: 1, Name: "a", CardType: models.CardMonth, CardDate: issued}

	tests := []struct {
		name    string
		today   *CardPolicy
		expired bool
	}{
		{"issue day", policyAt(2026, time.March, 10), false},
		{"day 29 after issue", policyAt(2026, time.April, 8), false},
		{"day 30 after issue", policyAt(2026, time.April, 9), true},
		{"far past", policyAt(2027, time.March, 10), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := tt.today.Check(cust)
			if tt.expired {
				assert.Equal(t, models.CardError, ct)
				assert.ErrorIs(t, err, ErrCardExpired)
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.CardMonth, ct)
			}
		})
	}
}

func TestCheckYearCardWindow(t *testing.T) {
	t.Run("non-leap issue year", func(t *testing.T) {
		cust := &models.Customer{ID: 1, Name: "a", CardType: models.CardYear, CardDate: datePtr(2026, time.January, 15)}

		ct, err := policyAt(2027, time.January, 15).Check(cust) // 365 days
		require.NoError(t, err)
		assert.Equal(t, models.CardYear, ct)

		ct, err = policyAt(2027, time.January, 16).Check(cust) // 366 days
		assert.Equal(t, models.CardError, ct)
		assert.ErrorIs(t, err, ErrCardExpired)
	})

	t.Run("leap issue year", func(t *testing.T) {
		cust := &models.Customer{ID: 1, Name: "a", CardType: models.CardYear, CardDate: datePtr(2028, time.February, 1)}

		ct, err := policyAt(2029, time.February, 1).Check(cust) // 366 days
		require.NoError(t, err)
		assert.Equal(t, models.CardYear, ct)

		ct, err = policyAt(2029, time.February, 2).Check(cust) // 367 days
		assert.Equal(t, models.CardError, ct)
		assert.ErrorIs(t, err, ErrCardExpired)
	})
}

func TestCheckDatedCardWithoutDate(t *testing.T) {
	p := policyAt(2026, time.March, 1)
	for _, tier := range []models.CardType{models.CardMonth, models.CardYear} {
		ct, err := p.Check(&models.Customer{ID: 1, Name: "a", CardType: tier})
		assert.Equal(t, models.CardError, ct)
		assert.ErrorIs(t, err, ErrCardExpired)
	}
}

func TestCheckUnknownStoredType(t *testing.T) {
	p := policyAt(2026, time.March, 1)
	ct, err := p.Check(&models.Customer{ID: 1, Name: "a", CardType: models.CardError})
	assert.Equal(t, models.CardError, ct)
	assert.NoError(t, err)
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, time.March, 11, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, daysBetween(a, b))
	assert.Equal(t, -1, daysBetween(b, a))
	assert.Equal(t, 0, daysBetween(a, a))
}
