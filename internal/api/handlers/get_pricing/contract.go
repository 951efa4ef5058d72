package get_pricing

import (
	"context"

	getPricing "github.com/m04kA/SMC-AdsBookingService/internal/usecase/get_pricing"
)

type GetPricingUseCase interface {
	Execute(ctx context.Context, req *getPricing.Request) (*getPricing.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
