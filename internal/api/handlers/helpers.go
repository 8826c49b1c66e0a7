package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"visit-planner-service/internal/api/dto"
	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/ports"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// pathID extracts the integer {id} wildcard from the request path.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// invalidate drops cached plans after a write. Cache trouble is logged, never
// surfaced: the write already succeeded.
func invalidate(ctx context.Context, cache ports.PlanCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.Printf("plan cache invalidation failed: %v", err)
	}
}

func patientToResponse(p *domain.Patient) dto.PatientResponse {
	res := dto.PatientResponse{
		PatientID:            p.PatientID,
		FirstName:            p.FirstName,
		LastName:             p.LastName,
		Address:              p.Address,
		IntervalDays:         p.IntervalDays,
		VisitDurationMinutes: p.VisitDurationMinutes,
		LastVisit:            p.LastVisit,
		PlannedVisitDate:     p.PlannedVisitDate,
		SnoozeUntil:          p.SnoozeUntil,
		PrimaryProviderID:    p.PrimaryProviderID,
		OverrideProviderID:   p.OverrideProviderID,
		OverridePermanent:    p.OverridePermanent,
	}
	if p.Coordinates != nil {
		lat, lon := p.Coordinates.Lat, p.Coordinates.Lon
		res.Lat, res.Lon = &lat, &lon
	}
	return res
}

func providerToResponse(p *domain.Provider) dto.ProviderResponse {
	return dto.ProviderResponse{
		ProviderID:      p.ProviderID,
		Name:            p.Name,
		Role:            p.Role,
		Color:           p.Color,
		MaxDailyMinutes: p.MaxDailyMinutes,
	}
}
