package get_owner_bookings

import (
	"context"

	"github.com/m04kA/SMC-AdsBookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetOwnerBookings(ctx context.Context, req *models.GetOwnerBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
