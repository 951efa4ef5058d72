package pricing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
	"github.com/m04kA/SMC-AdsBookingService/internal/integrations/geoservice"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeGeoClient struct {
	scopes map[int64]*geoservice.Scope
	counts map[string]int64 // "scopeID:level" -> count
	err    error

	getScopeCalls int
	countCalls    int
}

func (f *fakeGeoClient) GetScope(_ context.Context, scopeID int64) (*geoservice.Scope, error) {
	f.getScopeCalls++
	if f.err != nil {
		return nil, f.err
	}
	scope, ok := f.scopes[scopeID]
	if !ok {
		return nil, geoservice.ErrScopeNotFound
	}
	return scope, nil
}

func (f *fakeGeoClient) CountSubordinates(_ context.Context, scopeID int64, level string) (int64, error) {
	f.countCalls++
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[countKey(scopeID, level)], nil
}

func countKey(scopeID int64, level string) string {
	return fmt.Sprintf("%d:%s", scopeID, level)
}

func TestResolveMultiplier_Branch(t *testing.T) {
	geo := &fakeGeoClient{}
	svc := NewService(geo, nopLogger{})

	multiplier, rows, err := svc.ResolveMultiplier(context.Background(), domain.OfficeLevelBranch, 0)

	require.NoError(t, err)
	assert.Equal(t, domain.MultiplierOne, multiplier)
	assert.Empty(t, rows)
	assert.Zero(t, geo.getScopeCalls, "branch level must not call geo service")
}

func TestResolveMultiplier_Regional(t *testing.T) {
	geo := &fakeGeoClient{
		scopes: map[int64]*geoservice.Scope{10: {ID: 10, Name: "Maharashtra", Level: "state"}},
		counts: map[string]int64{countKey(10, domain.HierarchyLevelDistrict): 12},
	}
	svc := NewService(geo, nopLogger{})

	multiplier, rows, err := svc.ResolveMultiplier(context.Background(), domain.OfficeLevelRegional, 10)

	require.NoError(t, err)
	assert.Equal(t, domain.Multiplier{Num: 12, Den: 1}, multiplier)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.HierarchyLevelDistrict, rows[0].Level)
	assert.Equal(t, "Maharashtra", rows[0].Name)
	assert.Equal(t, int64(12), rows[0].Count)
}

func TestResolveMultiplier_HeadOffice(t *testing.T) {
	geo := &fakeGeoClient{
		scopes: map[int64]*geoservice.Scope{1: {ID: 1, Name: "India", Level: "country"}},
		counts: map[string]int64{
			countKey(1, domain.HierarchyLevelState):    5,
			countKey(1, domain.HierarchyLevelDistrict): 40,
		},
	}
	svc := NewService(geo, nopLogger{})

	multiplier, rows, err := svc.ResolveMultiplier(context.Background(), domain.OfficeLevelHeadOffice, 1)

	require.NoError(t, err)
	assert.Equal(t, domain.Multiplier{Num: 200, Den: 1}, multiplier)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(5), rows[0].Count)
	assert.Equal(t, int64(40), rows[1].Count)
}

func TestResolveMultiplier_ScopeNotFound(t *testing.T) {
	geo := &fakeGeoClient{scopes: map[int64]*geoservice.Scope{}}
	svc := NewService(geo, nopLogger{})

	_, _, err := svc.ResolveMultiplier(context.Background(), domain.OfficeLevelRegional, 99)

	assert.ErrorIs(t, err, ErrScopeNotFound)
}

func TestResolveMultiplier_GeoUnavailable(t *testing.T) {
	geo := &fakeGeoClient{err: errors.New("connection refused")}
	svc := NewService(geo, nopLogger{})

	_, _, err := svc.ResolveMultiplier(context.Background(), domain.OfficeLevelRegional, 10)

	assert.ErrorIs(t, err, ErrGeoUnavailable)
}

func TestResolveMultiplier_MissingScopeID(t *testing.T) {
	svc := NewService(&fakeGeoClient{}, nopLogger{})

	_, _, err := svc.ResolveMultiplier(context.Background(), domain.OfficeLevelRegional, 0)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetHierarchyBreakdown(t *testing.T) {
	geo := &fakeGeoClient{
		scopes: map[int64]*geoservice.Scope{10: {ID: 10, Name: "Maharashtra", Level: "state"}},
		counts: map[string]int64{countKey(10, domain.HierarchyLevelDistrict): 12},
	}
	svc := NewService(geo, nopLogger{})

	resp, err := svc.GetHierarchyBreakdown(context.Background(), domain.OfficeLevelRegional, 10)

	require.NoError(t, err)
	assert.Equal(t, "regional", resp.OfficeLevel)
	assert.Equal(t, int64(10), resp.ScopeID)
	assert.Equal(t, int64(12), resp.MultiplierNum)
	assert.Equal(t, int64(1), resp.MultiplierDen)
	assert.Equal(t, 12.0, resp.Multiplier)
	require.Len(t, resp.Breakdown, 1)
}

func TestGetHierarchyBreakdown_InvalidLevel(t *testing.T) {
	svc := NewService(&fakeGeoClient{}, nopLogger{})

	_, err := svc.GetHierarchyBreakdown(context.Background(), "zone", 10)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
