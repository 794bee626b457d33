package models

type PaginatedResponse struct {
	Data           any  `json:"data"`
	Total          int  `json:"total"`
	Page           int  `json:"page"`
	PageSize       int  `json:"pageSize"`
	TotalPages     int  `json:"totalPages"`
	FiltersApplied bool `json:"filtersApplied"`
}
