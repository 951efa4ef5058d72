package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotKey_Validate(t *testing.T) {
	valid := SlotKey{AppID: 1, CategoryID: 2, AdPosition: AdPositionAds1, OfficeLevel: OfficeLevelBranch}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		key  SlotKey
	}{
		{"zero app id", SlotKey{CategoryID: 2, AdPosition: AdPositionAds1, OfficeLevel: OfficeLevelBranch}},
		{"zero category id", SlotKey{AppID: 1, AdPosition: AdPositionAds1, OfficeLevel: OfficeLevelBranch}},
		{"unknown ad position", SlotKey{AppID: 1, CategoryID: 2, AdPosition: "ads3", OfficeLevel: OfficeLevelBranch}},
		{"unknown office level", SlotKey{AppID: 1, CategoryID: 2, AdPosition: AdPositionAds1, OfficeLevel: "zone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.key.Validate())
		})
	}
}

func TestSlotKey_String(t *testing.T) {
	key := SlotKey{AppID: 7, CategoryID: 13, AdPosition: AdPositionAds2, OfficeLevel: OfficeLevelRegional}
	assert.Equal(t, "7:13:ads2:regional", key.String())
}

func TestBooking_LocksDates(t *testing.T) {
	b := &Booking{Status: StatusPending}
	assert.True(t, b.LocksDates(), "pending booking locks its dates immediately")

	b.Status = StatusApproved
	assert.True(t, b.LocksDates())

	b.Status = StatusRejected
	assert.False(t, b.LocksDates(), "rejection releases the dates")
}

func TestPriceRate_Covers(t *testing.T) {
	to := date("2025-02-28")
	rate := &PriceRate{EffectiveFrom: date("2025-02-01"), EffectiveTo: &to}

	assert.True(t, rate.Covers(date("2025-02-01")))
	assert.True(t, rate.Covers(date("2025-02-28")))
	assert.False(t, rate.Covers(date("2025-01-31")))
	assert.False(t, rate.Covers(date("2025-03-01")))

	openEnded := &PriceRate{EffectiveFrom: date("2025-02-01")}
	assert.True(t, openEnded.Covers(date("2030-12-31")))
}
