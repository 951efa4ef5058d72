package models

import "github.com/m04kA/SMC-AdsBookingService/internal/domain"

// BreakdownRow одна строка расшифровки множителя
type BreakdownRow struct {
	Level string `json:"level"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// BreakdownResponse расшифровка множителя для уровня офиса
type BreakdownResponse struct {
	OfficeLevel   string         `json:"officeLevel"`
	ScopeID       int64          `json:"scopeId"`
	Breakdown     []BreakdownRow `json:"breakdown"`
	MultiplierNum int64          `json:"multiplierNum"`
	MultiplierDen int64          `json:"multiplierDen"`
	Multiplier    float64        `json:"multiplier"`
}

// FromDomainBreakdown конвертирует доменную расшифровку в ответ сервиса
func FromDomainBreakdown(level domain.OfficeLevel, scopeID int64, rows []domain.HierarchyLevel, m domain.Multiplier) *BreakdownResponse {
	breakdown := make([]BreakdownRow, len(rows))
	for i, row := range rows {
		breakdown[i] = BreakdownRow{
			Level: row.Level,
			Name:  row.Name,
			Count: row.Count,
		}
	}

	return &BreakdownResponse{
		OfficeLevel:   string(level),
		ScopeID:       scopeID,
		Breakdown:     breakdown,
		MultiplierNum: m.Num,
		MultiplierDen: m.Den,
		Multiplier:    m.Float(),
	}
}
