package pricing

import (
	"context"

	"github.com/m04kA/SMC-AdsBookingService/internal/integrations/geoservice"
)

// GeoServiceClient интерфейс клиента для GeoService
type GeoServiceClient interface {
	GetScope(ctx context.Context, scopeID int64) (*geoservice.Scope, error)
	CountSubordinates(ctx context.Context, scopeID int64, level string) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
