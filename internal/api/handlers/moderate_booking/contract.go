package moderate_booking

import (
	"context"

	"github.com/m04kA/SMC-AdsBookingService/internal/service/bookings/models"
)

type BookingsService interface {
	Moderate(ctx context.Context, bookingID int64, req *models.ModerateBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
