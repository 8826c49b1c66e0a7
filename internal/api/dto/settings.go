package dto

type SettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type LocationUpdateRequest struct {
	Address string `json:"address"`
	City    string `json:"city"`
}

type LocationUpdateResponse struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Warning string  `json:"warning,omitempty"`
}
