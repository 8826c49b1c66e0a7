package dto

type ProviderResponse struct {
	ProviderID      int    `json:"provider_id"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	Color           string `json:"color"`
	MaxDailyMinutes int    `json:"max_daily_minutes"`
}

type ListProvidersResponse struct {
	Providers []ProviderResponse `json:"providers"`
}

type CreateProviderRequest struct {
	Name            string `json:"name"`
	Role            string `json:"role"`
	Color           string `json:"color"`
	MaxDailyMinutes int    `json:"max_daily_minutes"`
}

// UpdateProviderRequest carries a partial update; nil fields stay unchanged.
type UpdateProviderRequest struct {
	Name            *string `json:"name"`
	Role            *string `json:"role"`
	Color           *string `json:"color"`
	MaxDailyMinutes *int    `json:"max_daily_minutes"`
}
