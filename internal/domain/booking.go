package domain

import (
	"time"

	"github.com/m04kA/SMC-AdsBookingService/pkg/types"
)

// BookingStatus represents the moderation status of an ad booking
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusApproved BookingStatus = "approved"
	StatusRejected BookingStatus = "rejected"
)

// Valid returns true if the status is one of the known booking statuses
func (s BookingStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Booking is a committed reservation of one or more calendar days of a single
// ad slot, paid for with a single wallet debit.
type Booking struct {
	ID      int64
	SlotKey SlotKey
	Dates   []time.Time

	OwnerID  int64
	AssetRef string
	LinkURL  *string

	// Pricing as fixed at commit time
	BasePrice     int64
	Multiplier    Multiplier
	AmountCharged int64

	Status          BookingStatus
	RejectionReason *string
	ModeratedAt     *time.Time

	// IdempotencyKey is the client-generated token; LedgerRef is the
	// reference passed to the wallet ledger for the debit (and the reversal)
	IdempotencyKey string
	LedgerRef      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LocksDates returns true while the booking keeps its dates unavailable to
// other buyers. A pending booking locks its dates immediately; only rejection
// releases them.
func (b *Booking) LocksDates() bool {
	for _, s := range DateLockingStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// CanBeModerated returns true if the booking still awaits a moderation decision
func (b *Booking) CanBeModerated() bool {
	return b.Status == StatusPending
}

// CoversDate returns true if the booking reserves the given calendar day
func (b *Booking) CoversDate(date time.Time) bool {
	for _, bd := range b.Dates {
		if types.SameDay(bd, date) {
			return true
		}
	}
	return false
}

// OwnerBookingsFilter filters an owner's booking history
type OwnerBookingsFilter struct {
	OwnerID int64
	Status  *BookingStatus
}
