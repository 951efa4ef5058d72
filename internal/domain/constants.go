package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	// MaxDatesPerBooking caps one request at the full booking window
	MaxDatesPerBooking = 92

	MaxLinkURLLength = 2048

	// MaxAssetSizeBytes caps the uploaded ad banner size
	MaxAssetSizeBytes = 5 << 20
)

// Hierarchy level names used in multiplier breakdowns
const (
	HierarchyLevelState    = "state"
	HierarchyLevelDistrict = "district"
)

// DateLockingStatuses are the statuses that keep booked dates unavailable.
// Pending bookings lock their dates immediately; rejection releases them.
var DateLockingStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
}
