package moderate_booking

import (
	"fmt"

	"github.com/m04kA/SMC-AdsBookingService/internal/service/bookings/models"
)

const (
	actionApprove = "approve"
	actionReject  = "reject"
)

// ModerateBookingRequest HTTP request model
type ModerateBookingRequest struct {
	Action string  `json:"action"` // "approve" | "reject"
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ModerateBookingRequest) ToServiceRequest() (*models.ModerateBookingRequest, error) {
	switch r.Action {
	case actionApprove:
		return &models.ModerateBookingRequest{Approve: true}, nil
	case actionReject:
		if r.Reason == nil || *r.Reason == "" {
			return nil, fmt.Errorf("reject requires a reason")
		}
		return &models.ModerateBookingRequest{Approve: false, Reason: r.Reason}, nil
	default:
		return nil, fmt.Errorf("unknown action %q", r.Action)
	}
}
