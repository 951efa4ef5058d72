package geoservice

// Scope организационная единица из GeoService (страна, штат, округ)
type Scope struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Level    string `json:"level"` // country | state | district
	ParentID *int64 `json:"parent_id,omitempty"`
}

// CountResponse ответ на подсчет подчиненных единиц
type CountResponse struct {
	ScopeID int64  `json:"scope_id"`
	Level   string `json:"level"`
	Count   int64  `json:"count"`
}

// ErrorResponse модель ошибки от GeoService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
