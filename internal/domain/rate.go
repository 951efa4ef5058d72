package domain

import (
	"time"

	"github.com/m04kA/SMC-AdsBookingService/pkg/types"
)

// PriceRate is a configured base rate for one slot key over an effective date
// range. A day not covered by any rate row has no price and is not orderable.
type PriceRate struct {
	ID            int64
	SlotKey       SlotKey
	EffectiveFrom time.Time
	EffectiveTo   *time.Time // nil = open-ended
	BasePrice     int64      // per day, minor currency units

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers reports whether the rate applies on the given calendar day
func (r *PriceRate) Covers(date time.Time) bool {
	if types.DateBefore(date, r.EffectiveFrom) {
		return false
	}
	if r.EffectiveTo != nil && types.DateAfter(date, *r.EffectiveTo) {
		return false
	}
	return true
}
