package moderate_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AdsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-AdsBookingService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgBookingNotFound    = "бронирование не найдено"
	msgCannotModerate     = "бронирование уже прошло модерацию"
	msgWalletUnavailable  = "сервис кошельков временно недоступен"
)

type Handler struct {
	bookingsService BookingsService
	logger          Logger
}

func NewHandler(bookingsService BookingsService, logger Logger) *Handler {
	return &Handler{
		bookingsService: bookingsService,
		logger:          logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ModerateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid action: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.bookingsService.Moderate(r.Context(), bookingID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrCannotModerate):
			h.logger.Warn("PATCH /bookings/{id}/status - Cannot moderate: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotModerate)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, bookings.ErrWalletUnavailable):
			h.logger.Error("PATCH /bookings/{id}/status - Wallet unavailable: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgWalletUnavailable)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Moderated: booking_id=%d, action=%s, status=%s",
		bookingID, req.Action, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
