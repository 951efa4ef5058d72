package domain

import "github.com/m04kA/SMC-AdsBookingService/pkg/money"

// Multiplier is the hierarchy factor applied to a base rate, kept as a
// rational so that intermediate arithmetic never loses precision.
type Multiplier struct {
	Num int64
	Den int64
}

// MultiplierOne is the identity multiplier (branch level)
var MultiplierOne = Multiplier{Num: 1, Den: 1}

// MultiplierFromCount builds a whole-number multiplier
func MultiplierFromCount(count int64) Multiplier {
	return Multiplier{Num: count, Den: 1}
}

// Apply multiplies a base price, rounding half-up to the smallest currency unit
func (m Multiplier) Apply(basePrice int64) int64 {
	return money.MulRat(basePrice, m.Num, m.Den)
}

// Float returns the multiplier as a float64, for display only
func (m Multiplier) Float() float64 {
	if m.Den == 0 {
		return 0
	}
	return float64(m.Num) / float64(m.Den)
}

// HierarchyLevel is one row of the multiplier breakdown shown to the buyer:
// an organizational level, the scope's name and the subordinate-unit count.
type HierarchyLevel struct {
	Level string
	Name  string
	Count int64
}

// ComputeMultiplier combines a hierarchy breakdown into the multiplier for the
// given office level:
//   - branch: no aggregation, multiplier 1;
//   - regional: subordinate-district count;
//   - head_office: subordinate-state count × subordinate-district count.
//
// The head-office rule is multiplicative across levels as observed in the
// production rate tables; a count of 0 on any level yields multiplier 0 and
// the caller must treat such a slot as not orderable.
func ComputeMultiplier(level OfficeLevel, breakdown []HierarchyLevel) Multiplier {
	if level == OfficeLevelBranch || len(breakdown) == 0 {
		return MultiplierOne
	}

	product := int64(1)
	for _, row := range breakdown {
		product *= row.Count
	}
	return MultiplierFromCount(product)
}
