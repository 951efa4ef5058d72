package get_hierarchy_breakdown

import (
	"context"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
	"github.com/m04kA/SMC-AdsBookingService/internal/service/pricing/models"
)

type PricingService interface {
	GetHierarchyBreakdown(ctx context.Context, level domain.OfficeLevel, scopeID int64) (*models.BreakdownResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
