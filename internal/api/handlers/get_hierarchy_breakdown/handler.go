package get_hierarchy_breakdown

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AdsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
	"github.com/m04kA/SMC-AdsBookingService/internal/service/pricing"
)

const (
	msgInvalidQuery   = "некорректные параметры запроса"
	msgScopeNotFound  = "организационная единица не найдена"
	msgGeoUnavailable = "гео-сервис временно недоступен"
)

type Handler struct {
	pricingService PricingService
	logger         Logger
}

func NewHandler(pricingService PricingService, logger Logger) *Handler {
	return &Handler{
		pricingService: pricingService,
		logger:         logger,
	}
}

// Handle GET /api/v1/hierarchy/breakdown
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	level := domain.OfficeLevel(r.URL.Query().Get("officeLevel"))
	if !level.Valid() {
		h.logger.Warn("GET /hierarchy/breakdown - Invalid office level: %q", level)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	var scopeID int64
	if raw := r.URL.Query().Get("scopeId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /hierarchy/breakdown - Invalid scope id: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		scopeID = parsed
	}

	result, err := h.pricingService.GetHierarchyBreakdown(r.Context(), level, scopeID)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrInvalidInput):
			h.logger.Warn("GET /hierarchy/breakdown - Invalid input: level=%s, scope_id=%d", level, scopeID)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, pricing.ErrScopeNotFound):
			h.logger.Warn("GET /hierarchy/breakdown - Scope not found: scope_id=%d", scopeID)
			handlers.RespondNotFound(w, msgScopeNotFound)

		case errors.Is(err, pricing.ErrGeoUnavailable):
			h.logger.Error("GET /hierarchy/breakdown - Geo service unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgGeoUnavailable)

		default:
			h.logger.Error("GET /hierarchy/breakdown - Failed: level=%s, scope_id=%d, error=%v", level, scopeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /hierarchy/breakdown - OK: level=%s, scope_id=%d, multiplier=%.2f",
		level, scopeID, result.Multiplier)
	handlers.RespondJSON(w, http.StatusOK, result)
}
