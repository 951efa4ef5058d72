package submit_booking

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
	submitBooking "github.com/m04kA/SMC-AdsBookingService/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-AdsBookingService/pkg/types"
)

// payloadField имя multipart-поля с JSON телом запроса
const payloadField = "payload"

// assetField имя multipart-поля с файлом баннера
const assetField = "asset"

// SubmitBookingPayload JSON часть multipart запроса
type SubmitBookingPayload struct {
	AppID          int64    `json:"appId"`
	CategoryID     int64    `json:"categoryId"`
	AdPosition     string   `json:"adPosition"`
	OfficeLevel    string   `json:"officeLevel"`
	ScopeID        int64    `json:"scopeId"`
	Dates          []string `json:"dates"` // "2025-01-15"
	LinkURL        *string  `json:"linkUrl,omitempty"`
	IdempotencyKey string   `json:"idempotencyKey"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64    `json:"id"`
	AppID          int64    `json:"appId"`
	CategoryID     int64    `json:"categoryId"`
	AdPosition     string   `json:"adPosition"`
	OfficeLevel    string   `json:"officeLevel"`
	OwnerID        int64    `json:"ownerId"`
	Dates          []string `json:"dates"`
	AssetRef       string   `json:"assetRef"`
	LinkURL        *string  `json:"linkUrl,omitempty"`
	BasePrice      int64    `json:"basePrice"`
	Multiplier     float64  `json:"multiplier"`
	AmountCharged  int64    `json:"amountCharged"`
	Status         string   `json:"status"`
	AlreadyExisted bool     `json:"alreadyExisted,omitempty"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

// ConflictResponse тело ответа 409 при занятых датах
type ConflictResponse struct {
	Error            string   `json:"error"`
	ConflictingDates []string `json:"conflictingDates"`
}

// ToUseCaseRequest собирает модель use case из JSON части, файла баннера
// и владельца из контекста авторизации
func (p *SubmitBookingPayload) ToUseCaseRequest(ownerID int64, file multipart.File, header *multipart.FileHeader) (*submitBooking.Request, error) {
	dates := make([]time.Time, 0, len(p.Dates))
	for _, raw := range p.Dates {
		d, err := types.ParseDateString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", raw, err)
		}
		dates = append(dates, d)
	}

	var asset *submitBooking.Asset
	if file != nil && header != nil {
		asset = &submitBooking.Asset{
			Filename: header.Filename,
			Size:     header.Size,
			Content:  file,
		}
	}

	return &submitBooking.Request{
		OwnerID: ownerID,
		SlotKey: domain.SlotKey{
			AppID:       p.AppID,
			CategoryID:  p.CategoryID,
			AdPosition:  domain.AdPosition(p.AdPosition),
			OfficeLevel: domain.OfficeLevel(p.OfficeLevel),
		},
		ScopeID:        p.ScopeID,
		Dates:          dates,
		Asset:          asset,
		LinkURL:        p.LinkURL,
		IdempotencyKey: p.IdempotencyKey,
	}, nil
}

// ParsePayload декодирует JSON часть multipart запроса
func ParsePayload(raw string) (*SubmitBookingPayload, error) {
	var payload SubmitBookingPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &payload, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *BookingResponse {
	dates := make([]string, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = types.NewDateString(d).String()
	}

	return &BookingResponse{
		ID:             resp.ID,
		AppID:          resp.SlotKey.AppID,
		CategoryID:     resp.SlotKey.CategoryID,
		AdPosition:     string(resp.SlotKey.AdPosition),
		OfficeLevel:    string(resp.SlotKey.OfficeLevel),
		OwnerID:        resp.OwnerID,
		Dates:          dates,
		AssetRef:       resp.AssetRef,
		LinkURL:        resp.LinkURL,
		BasePrice:      resp.BasePrice,
		Multiplier:     resp.Multiplier.Float(),
		AmountCharged:  resp.AmountCharged,
		Status:         resp.Status,
		AlreadyExisted: resp.AlreadyExisted,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
