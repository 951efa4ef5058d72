package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
)

// BookingResponse модель бронирования для внешних потребителей сервиса
type BookingResponse struct {
	ID            int64    `json:"id"`
	AppID         int64    `json:"appId"`
	CategoryID    int64    `json:"categoryId"`
	AdPosition    string   `json:"adPosition"`
	OfficeLevel   string   `json:"officeLevel"`
	OwnerID       int64    `json:"ownerId"`
	Dates         []string `json:"dates"`
	AssetRef      string   `json:"assetRef"`
	LinkURL       *string  `json:"linkUrl,omitempty"`
	BasePrice     int64    `json:"basePrice"`
	Multiplier    float64  `json:"multiplier"`
	AmountCharged int64    `json:"amountCharged"`
	Status        string   `json:"status"`

	RejectionReason *string `json:"rejectionReason,omitempty"`
	ModeratedAt     *string `json:"moderatedAt,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// GetOwnerBookingsRequest запрос истории бронирований владельца
type GetOwnerBookingsRequest struct {
	OwnerID int64
	Status  *string
}

// ModerateBookingRequest запрос на модерацию бронирования
type ModerateBookingRequest struct {
	Approve bool
	Reason  *string
}

// FromDomainBooking конвертирует доменное бронирование в ответ сервиса
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	dates := make([]string, len(b.Dates))
	for i, d := range b.Dates {
		dates[i] = d.Format(domain.DateFormat)
	}

	var moderatedAt *string
	if b.ModeratedAt != nil {
		s := b.ModeratedAt.Format(time.RFC3339)
		moderatedAt = &s
	}

	return &BookingResponse{
		ID:              b.ID,
		AppID:           b.SlotKey.AppID,
		CategoryID:      b.SlotKey.CategoryID,
		AdPosition:      string(b.SlotKey.AdPosition),
		OfficeLevel:     string(b.SlotKey.OfficeLevel),
		OwnerID:         b.OwnerID,
		Dates:           dates,
		AssetRef:        b.AssetRef,
		LinkURL:         b.LinkURL,
		BasePrice:       b.BasePrice,
		Multiplier:      b.Multiplier.Float(),
		AmountCharged:   b.AmountCharged,
		Status:          string(b.Status),
		RejectionReason: b.RejectionReason,
		ModeratedAt:     moderatedAt,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список доменных бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}

// ToDomainBookingStatus конвертирует строковый статус в доменный
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.Valid() {
		return "", fmt.Errorf("unknown booking status %q", status)
	}
	return s, nil
}
