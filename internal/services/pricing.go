package services

import (
	"time"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/arith"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/config"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/models"
)

// ElapsedSeconds returns the whole seconds between start and end. The
// result goes negative when end precedes start; that is propagated as-is
// so a misconfigured clock surfaces as a negative charge instead of a
// silently clamped one.
func ElapsedSeconds(start, end time.Time) int64 {
	return int64(end.Sub(start) / time.Second)
}

// CalculateCharge prices elapsed parking time for the given card type:
// base = elapsedSeconds * chargePerTimeslice / timesliceSeconds, then
// the tier rule, then rounding to the configured precision (ties away
// from zero).
func CalculateCharge(ct models.CardType, elapsedSeconds int64, s config.Settings) float64 {
	base := float64(elapsedSeconds) * s.ChargePerTimeslice / float64(s.TimesliceSeconds)

	var charge float64
	switch ct {
	case models.CardNone:
		charge = base
	case models.CardSimple:
		charge = base - base*0.1
	case models.CardMonth, models.CardYear:
		// Membership covers parking.
		charge = 0
	case models.CardCredit:
		charge = base
	case models.CardError:
		// Rejected upstream by the card policy; never priced.
		charge = 0
	default:
		charge = 0
	}

	return arith.Round(charge, s.ChargePrecision)
}
