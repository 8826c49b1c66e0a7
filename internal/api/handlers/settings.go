package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"visit-planner-service/internal/api/dto"
	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/ports"
)

// Settings keys written by the location endpoint and read by the planner.
const (
	SettingHomeAddress = "home_address"
	SettingHomeCity    = "home_city"
	SettingHomeLat     = "home_lat"
	SettingHomeLon     = "home_lon"
)

// SettingsHandler exposes the key/value settings store and the home-location
// update endpoint.
type SettingsHandler struct {
	Repo     ports.SettingsRepository
	Geocoder ports.Geocoder
	Cache    ports.PlanCache
	// DefaultHome is used when geocoding the practice address fails.
	DefaultHome domain.Coordinates
}

// Get handles GET /settings/{key}.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	key := r.PathValue("key")
	value, err := h.Repo.GetSetting(r.Context(), key)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "setting not found")
		return
	}
	if err != nil {
		log.Printf("get setting failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SettingResponse{Key: key, Value: value})
}

// Put handles POST /settings (create or update one key).
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.Key == "" {
		writeError(w, r, http.StatusBadRequest, "key is required")
		return
	}

	if err := h.Repo.PutSetting(r.Context(), req.Key, req.Value); err != nil {
		log.Printf("put setting failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	invalidate(r.Context(), h.Cache)
	writeJSON(w, r, http.StatusOK, dto.SettingResponse{Key: req.Key, Value: req.Value})
}

// UpdateLocation handles POST /settings/location: geocode the practice
// address and persist the home coordinates every route starts from.
func (h *SettingsHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.LocationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.Address == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}

	full := req.Address
	if req.City != "" {
		full += ", " + req.City
	}

	coords := h.DefaultHome
	warning := ""
	resolved, err := h.Geocoder.Resolve(r.Context(), full)
	switch {
	case err == nil:
		coords = resolved
	case errors.Is(err, ports.ErrNoResults):
		warning = "address could not be geocoded; keeping fallback location"
	default:
		log.Printf("geocode location failed: %v", err)
		warning = "geocoding failed; keeping fallback location"
	}

	pairs := map[string]string{
		SettingHomeAddress: req.Address,
		SettingHomeCity:    req.City,
		SettingHomeLat:     strconv.FormatFloat(coords.Lat, 'f', -1, 64),
		SettingHomeLon:     strconv.FormatFloat(coords.Lon, 'f', -1, 64),
	}
	for key, value := range pairs {
		if err := h.Repo.PutSetting(r.Context(), key, value); err != nil {
			log.Printf("put setting failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	invalidate(r.Context(), h.Cache)
	writeJSON(w, r, http.StatusOK, dto.LocationUpdateResponse{
		Lat:     coords.Lat,
		Lon:     coords.Lon,
		Warning: warning,
	})
}
