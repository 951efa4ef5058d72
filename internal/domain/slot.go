package domain

import (
	"fmt"
	"time"
)

// AdPosition identifies a header ad placement on the portal
type AdPosition string

const (
	AdPositionAds1 AdPosition = "ads1"
	AdPositionAds2 AdPosition = "ads2"
)

// Valid returns true if the ad position is one of the known placements
func (p AdPosition) Valid() bool {
	return p == AdPositionAds1 || p == AdPositionAds2
}

// OfficeLevel is the organizational tier a slot is sold at.
// The tier controls which hierarchy multiplier applies to the base rate.
type OfficeLevel string

const (
	OfficeLevelHeadOffice OfficeLevel = "head_office"
	OfficeLevelRegional   OfficeLevel = "regional"
	OfficeLevelBranch     OfficeLevel = "branch"
)

// Valid returns true if the office level is one of the known tiers
func (l OfficeLevel) Valid() bool {
	return l == OfficeLevelHeadOffice || l == OfficeLevelRegional || l == OfficeLevelBranch
}

// SlotKey identifies a bookable ad line.
// Immutable; used as the grouping key for rates, bookings and availability.
type SlotKey struct {
	AppID       int64
	CategoryID  int64
	AdPosition  AdPosition
	OfficeLevel OfficeLevel
}

// Validate checks that all parts of the slot key are set and known
func (k SlotKey) Validate() error {
	if k.AppID <= 0 {
		return fmt.Errorf("appID must be positive")
	}
	if k.CategoryID <= 0 {
		return fmt.Errorf("categoryID must be positive")
	}
	if !k.AdPosition.Valid() {
		return fmt.Errorf("unknown ad position %q", k.AdPosition)
	}
	if !k.OfficeLevel.Valid() {
		return fmt.Errorf("unknown office level %q", k.OfficeLevel)
	}
	return nil
}

// String returns a compact representation for logs and cache keys
func (k SlotKey) String() string {
	return fmt.Sprintf("%d:%d:%s:%s", k.AppID, k.CategoryID, k.AdPosition, k.OfficeLevel)
}

// PricedDay is one calendar day of a slot as rendered on the booking calendar.
// Days without a configured base rate carry Configured = false and no price;
// they are displayed as unavailable, never as price 0.
type PricedDay struct {
	SlotKey    SlotKey
	Date       time.Time
	Configured bool
	BasePrice  int64
	Multiplier Multiplier
	Price      int64
	IsBooked   bool
}

// Selectable returns true if the day can be added to a booking selection
func (d *PricedDay) Selectable() bool {
	return d.Configured && !d.IsBooked
}
