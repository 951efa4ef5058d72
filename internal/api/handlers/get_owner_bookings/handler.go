package get_owner_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AdsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-AdsBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-AdsBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AdsBookingService/pkg/ptr"
)

const (
	msgInvalidOwnerID = "некорректный идентификатор владельца"
	msgAccessDenied   = "доступ к чужим бронированиям запрещен"
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

// Handle GET /api/v1/owners/{ownerId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	authOwnerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "владелец не определен")
		return
	}

	ownerID, err := strconv.ParseInt(mux.Vars(r)["ownerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /owners/{id}/bookings - Invalid owner id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	// Историю видит только сам владелец
	if ownerID != authOwnerID {
		h.logger.Warn("GET /owners/{id}/bookings - Access denied: owner=%d, requested=%d", authOwnerID, ownerID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetOwnerBookingsRequest{OwnerID: ownerID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	result, err := h.bookingsService.GetOwnerBookings(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /owners/{id}/bookings - Failed: owner=%d, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /owners/{id}/bookings - OK: owner=%d, total=%d", ownerID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
