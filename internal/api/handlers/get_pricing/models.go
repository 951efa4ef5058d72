package get_pricing

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
	getPricing "github.com/m04kA/SMC-AdsBookingService/internal/usecase/get_pricing"
	"github.com/m04kA/SMC-AdsBookingService/pkg/types"
)

// PricingResponse HTTP response model
type PricingResponse struct {
	AppID         int64  `json:"appId"`
	CategoryID    int64  `json:"categoryId"`
	AdPosition    string `json:"adPosition"`
	OfficeLevel   string `json:"officeLevel"`
	WindowStart   string `json:"windowStart"`
	WindowEnd     string `json:"windowEnd"`
	MultiplierNum int64  `json:"multiplierNum"`
	MultiplierDen int64  `json:"multiplierDen"`
	Days          []Day  `json:"days"`
}

// Day один день календаря цен
type Day struct {
	Date       string `json:"date"`
	Configured bool   `json:"configured"`
	BasePrice  int64  `json:"basePrice,omitempty"`
	Price      int64  `json:"price,omitempty"`
	IsBooked   bool   `json:"isBooked"`
	Selectable bool   `json:"selectable"`
}

// ParseRequest разбирает query-параметры в модель use case
func ParseRequest(query url.Values) (*getPricing.Request, error) {
	appID, err := strconv.ParseInt(query.Get("appId"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid appId: %w", err)
	}

	categoryID, err := strconv.ParseInt(query.Get("categoryId"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid categoryId: %w", err)
	}

	req := &getPricing.Request{
		SlotKey: domain.SlotKey{
			AppID:       appID,
			CategoryID:  categoryID,
			AdPosition:  domain.AdPosition(query.Get("adPosition")),
			OfficeLevel: domain.OfficeLevel(query.Get("officeLevel")),
		},
	}

	if raw := query.Get("scopeId"); raw != "" {
		scopeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid scopeId: %w", err)
		}
		req.ScopeID = scopeID
	}

	if raw := query.Get("from"); raw != "" {
		from, err := types.ParseDateString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		req.From = from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := types.ParseDateString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		req.To = to
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getPricing.Response) *PricingResponse {
	days := make([]Day, len(resp.Days))
	for i, d := range resp.Days {
		days[i] = Day{
			Date:       types.NewDateString(d.Date).String(),
			Configured: d.Configured,
			BasePrice:  d.BasePrice,
			Price:      d.Price,
			IsBooked:   d.IsBooked,
			Selectable: d.Selectable,
		}
	}

	return &PricingResponse{
		AppID:         resp.SlotKey.AppID,
		CategoryID:    resp.SlotKey.CategoryID,
		AdPosition:    string(resp.SlotKey.AdPosition),
		OfficeLevel:   string(resp.SlotKey.OfficeLevel),
		WindowStart:   types.NewDateString(resp.WindowStart).String(),
		WindowEnd:     types.NewDateString(resp.WindowEnd).String(),
		MultiplierNum: resp.MultiplierNum,
		MultiplierDen: resp.MultiplierDen,
		Days:          days,
	}
}
