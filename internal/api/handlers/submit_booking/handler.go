package submit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AdsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-AdsBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
	submitBooking "github.com/m04kA/SMC-AdsBookingService/internal/usecase/submit_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingAsset          = "не загружен рекламный баннер"
	msgAssetTooLarge         = "файл баннера превышает допустимый размер"
	msgNoDatesSelected       = "не выбраны даты бронирования"
	msgOutsideWindow         = "даты за пределами доступного окна бронирования"
	msgNotConfigured         = "тариф для слота не настроен"
	msgSlotNotOrderable      = "рекламный слот недоступен для заказа на этом уровне"
	msgScopeNotFound         = "организационная единица не найдена"
	msgInsufficientFunds     = "недостаточно средств на кошельке"
	msgDateAlreadyBooked     = "часть выбранных дат уже забронирована"
	msgWalletUnavailable     = "сервис кошельков временно недоступен"
	msgAssetStoreUnavailable = "хранилище баннеров временно недоступно"
	msgGeoUnavailable        = "гео-сервис временно недоступен"
	msgTimeout               = "бронирование не завершилось вовремя, повторите запрос"
)

// maxMultipartMemory лимит буферизации multipart формы в памяти
const maxMultipartMemory = 8 << 20

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
//
// Запрос приходит как multipart/form-data: поле "payload" с JSON параметрами
// бронирования и поле "asset" с файлом баннера.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "владелец не определен")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.logger.Warn("POST /bookings - Invalid multipart form: owner=%d, error=%v", ownerID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	payload, err := ParsePayload(r.FormValue(payloadField))
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid payload: owner=%d, error=%v", ownerID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Баннер может отсутствовать в форме, тогда use case вернет ErrMissingAsset
	file, header, err := r.FormFile(assetField)
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		h.logger.Warn("POST /bookings - Invalid asset part: owner=%d, error=%v", ownerID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if file != nil {
		defer file.Close()
	}

	useCaseReq, err := payload.ToUseCaseRequest(ownerID, file, header)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: owner=%d, error=%v", ownerID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, ownerID, useCaseReq, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}

	h.logger.Info("POST /bookings - Booking submitted: booking_id=%d, owner=%d, amount=%d, replay=%t",
		result.ID, ownerID, result.AmountCharged, result.AlreadyExisted)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, ownerID int64, req *submitBooking.Request, err error) {
	var conflict *submitBooking.DateConflictError

	switch {
	case errors.As(err, &conflict):
		h.logger.Warn("POST /bookings - Dates already booked: owner=%d, slot=%s, conflicts=%d",
			ownerID, req.SlotKey, len(conflict.Dates))
		dates := make([]string, len(conflict.Dates))
		for i, d := range conflict.Dates {
			dates[i] = d.Format(domain.DateFormat)
		}
		handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
			Error:            msgDateAlreadyBooked,
			ConflictingDates: dates,
		})

	case errors.Is(err, submitBooking.ErrDateAlreadyBooked):
		h.logger.Warn("POST /bookings - Dates already booked: owner=%d, slot=%s", ownerID, req.SlotKey)
		handlers.RespondError(w, http.StatusConflict, msgDateAlreadyBooked)

	case errors.Is(err, submitBooking.ErrMissingAsset):
		h.logger.Warn("POST /bookings - Missing asset: owner=%d", ownerID)
		handlers.RespondBadRequest(w, msgMissingAsset)

	case errors.Is(err, submitBooking.ErrAssetTooLarge):
		h.logger.Warn("POST /bookings - Asset too large: owner=%d", ownerID)
		handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgAssetTooLarge)

	case errors.Is(err, submitBooking.ErrNoDatesSelected):
		h.logger.Warn("POST /bookings - No dates selected: owner=%d", ownerID)
		handlers.RespondBadRequest(w, msgNoDatesSelected)

	case errors.Is(err, submitBooking.ErrOutsideWindow):
		h.logger.Warn("POST /bookings - Dates outside booking window: owner=%d, slot=%s", ownerID, req.SlotKey)
		handlers.RespondBadRequest(w, msgOutsideWindow)

	case errors.Is(err, submitBooking.ErrNotConfigured):
		h.logger.Warn("POST /bookings - Slot not configured: owner=%d, slot=%s", ownerID, req.SlotKey)
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgNotConfigured)

	case errors.Is(err, submitBooking.ErrSlotNotOrderable):
		h.logger.Warn("POST /bookings - Slot not orderable: owner=%d, slot=%s, scope_id=%d",
			ownerID, req.SlotKey, req.ScopeID)
		handlers.RespondError(w, http.StatusConflict, msgSlotNotOrderable)

	case errors.Is(err, submitBooking.ErrScopeNotFound):
		h.logger.Warn("POST /bookings - Scope not found: owner=%d, scope_id=%d", ownerID, req.ScopeID)
		handlers.RespondNotFound(w, msgScopeNotFound)

	case errors.Is(err, submitBooking.ErrInsufficientFunds):
		h.logger.Warn("POST /bookings - Insufficient funds: owner=%d, slot=%s", ownerID, req.SlotKey)
		handlers.RespondError(w, http.StatusPaymentRequired, msgInsufficientFunds)

	case errors.Is(err, submitBooking.ErrWalletUnavailable):
		h.logger.Error("POST /bookings - Wallet unavailable: owner=%d, error=%v", ownerID, err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgWalletUnavailable)

	case errors.Is(err, submitBooking.ErrAssetStoreUnavailable):
		h.logger.Error("POST /bookings - Asset store unavailable: owner=%d, error=%v", ownerID, err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgAssetStoreUnavailable)

	case errors.Is(err, submitBooking.ErrGeoUnavailable):
		h.logger.Error("POST /bookings - Geo service unavailable: owner=%d, error=%v", ownerID, err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgGeoUnavailable)

	case errors.Is(err, submitBooking.ErrTimeout):
		h.logger.Error("POST /bookings - Reservation timed out: owner=%d, slot=%s", ownerID, req.SlotKey)
		handlers.RespondError(w, http.StatusGatewayTimeout, msgTimeout)

	case errors.Is(err, submitBooking.ErrInvalidInput):
		h.logger.Warn("POST /bookings - Invalid input: owner=%d, error=%v", ownerID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("POST /bookings - Failed to submit booking: owner=%d, slot=%s, error=%v",
			ownerID, req.SlotKey, err)
		handlers.RespondInternalError(w)
	}
}
