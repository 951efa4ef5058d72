package get_pricing

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AdsBookingService/internal/api/handlers"
	getPricing "github.com/m04kA/SMC-AdsBookingService/internal/usecase/get_pricing"
)

const (
	msgInvalidQuery     = "некорректные параметры запроса"
	msgScopeNotFound    = "организационная единица не найдена"
	msgGeoUnavailable   = "гео-сервис временно недоступен"
	msgSlotNotOrderable = "рекламный слот недоступен для заказа на этом уровне"
)

type Handler struct {
	useCase GetPricingUseCase
	logger  Logger
}

func NewHandler(useCase GetPricingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/pricing
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /pricing - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getPricing.ErrInvalidInput):
			h.logger.Warn("GET /pricing - Invalid input: slot=%s, error=%v", req.SlotKey, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, getPricing.ErrScopeNotFound):
			h.logger.Warn("GET /pricing - Scope not found: scope_id=%d", req.ScopeID)
			handlers.RespondNotFound(w, msgScopeNotFound)

		case errors.Is(err, getPricing.ErrSlotNotOrderable):
			h.logger.Warn("GET /pricing - Slot not orderable: slot=%s, scope_id=%d", req.SlotKey, req.ScopeID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotOrderable)

		case errors.Is(err, getPricing.ErrGeoUnavailable):
			h.logger.Error("GET /pricing - Geo service unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgGeoUnavailable)

		default:
			h.logger.Error("GET /pricing - Failed: slot=%s, error=%v", req.SlotKey, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /pricing - OK: slot=%s, days=%d", req.SlotKey, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
