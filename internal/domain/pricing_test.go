package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMultiplier(t *testing.T) {
	tests := []struct {
		name      string
		level     OfficeLevel
		breakdown []HierarchyLevel
		want      Multiplier
	}{
		{
			name:      "branch ignores breakdown",
			level:     OfficeLevelBranch,
			breakdown: []HierarchyLevel{{Level: HierarchyLevelDistrict, Count: 7}},
			want:      MultiplierOne,
		},
		{
			name:      "regional multiplies by district count",
			level:     OfficeLevelRegional,
			breakdown: []HierarchyLevel{{Level: HierarchyLevelDistrict, Name: "Западный округ", Count: 12}},
			want:      Multiplier{Num: 12, Den: 1},
		},
		{
			name:  "head office multiplies states by districts",
			level: OfficeLevelHeadOffice,
			breakdown: []HierarchyLevel{
				{Level: HierarchyLevelState, Count: 5},
				{Level: HierarchyLevelDistrict, Count: 40},
			},
			want: Multiplier{Num: 200, Den: 1},
		},
		{
			name:      "empty breakdown falls back to identity",
			level:     OfficeLevelRegional,
			breakdown: nil,
			want:      MultiplierOne,
		},
		{
			name:  "zero count on any level zeroes the product",
			level: OfficeLevelHeadOffice,
			breakdown: []HierarchyLevel{
				{Level: HierarchyLevelState, Count: 5},
				{Level: HierarchyLevelDistrict, Count: 0},
			},
			want: Multiplier{Num: 0, Den: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeMultiplier(tt.level, tt.breakdown))
		})
	}
}

func TestMultiplier_Apply(t *testing.T) {
	assert.Equal(t, int64(1200), Multiplier{Num: 12, Den: 1}.Apply(100))
	assert.Equal(t, int64(100), MultiplierOne.Apply(100))

	// fractional multipliers round half-up, never truncate
	assert.Equal(t, int64(33), Multiplier{Num: 1, Den: 3}.Apply(100))
	assert.Equal(t, int64(50), Multiplier{Num: 1, Den: 2}.Apply(99))
}

func TestMultiplier_Float(t *testing.T) {
	assert.Equal(t, 12.0, Multiplier{Num: 12, Den: 1}.Float())
	assert.Equal(t, 0.5, Multiplier{Num: 1, Den: 2}.Float())
	assert.Equal(t, 0.0, Multiplier{}.Float())
}
