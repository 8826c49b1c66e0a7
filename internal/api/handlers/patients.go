package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"visit-planner-service/internal/api/dto"
	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/ports"
	"visit-planner-service/internal/services"
)

// PatientHandler exposes patient lifecycle endpoints: CRUD, manual
// scheduling, provider overrides and visit completion.
type PatientHandler struct {
	Repo     ports.PatientRepository
	Geocoder ports.Geocoder
	Cache    ports.PlanCache
}

// Collection handles GET (list) and POST (create) on /patients.
func (h *PatientHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// ByID handles GET, PUT and DELETE on /patients/{id}.
func (h *PatientHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid patient id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *PatientHandler) list(w http.ResponseWriter, r *http.Request) {
	patients, err := h.Repo.ListPatients(r.Context())
	if err != nil {
		log.Printf("list patients failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPatientsResponse{
		Patients: make([]dto.PatientResponse, 0, len(patients)),
	}
	for _, p := range patients {
		res.Patients = append(res.Patients, patientToResponse(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *PatientHandler) get(w http.ResponseWriter, r *http.Request, id int) {
	p, err := h.Repo.GetPatient(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "patient not found")
		return
	}
	if err != nil {
		log.Printf("get patient failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, patientToResponse(p))
}

func (h *PatientHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if req.Address == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}
	if req.IntervalDays < 0 {
		writeError(w, r, http.StatusBadRequest, "interval_days cannot be negative")
		return
	}
	if req.VisitDurationMinutes == 0 {
		req.VisitDurationMinutes = 30
	}
	if req.VisitDurationMinutes < 0 {
		writeError(w, r, http.StatusBadRequest, "visit_duration_minutes must be positive")
		return
	}

	p := &domain.Patient{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Address:              req.Address,
		IntervalDays:         req.IntervalDays,
		VisitDurationMinutes: req.VisitDurationMinutes,
		PrimaryProviderID:    req.PrimaryProviderID,
	}

	warning := ""
	if req.Lat != nil && req.Lon != nil {
		p.Coordinates = &domain.Coordinates{Lat: *req.Lat, Lon: *req.Lon}
	} else {
		p.Coordinates, warning = h.resolveCoords(r, req.Address)
	}

	created, err := h.Repo.CreatePatient(r.Context(), p)
	if err != nil {
		log.Printf("create patient failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	invalidate(r.Context(), h.Cache)

	res := patientToResponse(created)
	res.Warning = warning
	writeJSON(w, r, http.StatusCreated, res)
}

func (h *PatientHandler) update(w http.ResponseWriter, r *http.Request, id int) {
	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	p, err := h.Repo.GetPatient(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "patient not found")
		return
	}
	if err != nil {
		log.Printf("get patient failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.IntervalDays != nil {
		if *req.IntervalDays < 0 {
			writeError(w, r, http.StatusBadRequest, "interval_days cannot be negative")
			return
		}
		p.IntervalDays = *req.IntervalDays
	}
	if req.VisitDurationMinutes != nil {
		if *req.VisitDurationMinutes <= 0 {
			writeError(w, r, http.StatusBadRequest, "visit_duration_minutes must be positive")
			return
		}
		p.VisitDurationMinutes = *req.VisitDurationMinutes
	}
	if req.PrimaryProviderID != nil {
		p.PrimaryProviderID = req.PrimaryProviderID
	}

	warning := ""
	addressChanged := req.Address != nil && *req.Address != p.Address
	if addressChanged {
		p.Address = *req.Address
	}

	switch {
	case req.Lat != nil && req.Lon != nil:
		// Manual coordinates take precedence over geocoding.
		p.Coordinates = &domain.Coordinates{Lat: *req.Lat, Lon: *req.Lon}
	case addressChanged:
		// A stale pin is worse than no pin, so a failed re-geocode clears the
		// old coordinates.
		p.Coordinates, warning = h.resolveCoords(r, p.Address)
	}

	if err := h.Repo.UpdatePatient(r.Context(), p); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "patient not found")
			return
		}
		log.Printf("update patient failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	invalidate(r.Context(), h.Cache)

	res := patientToResponse(p)
	res.Warning = warning
	writeJSON(w, r, http.StatusOK, res)
}

func (h *PatientHandler) delete(w http.ResponseWriter, r *http.Request, id int) {
	err := h.Repo.DeletePatient(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "patient not found")
		return
	}
	if err != nil {
		log.Printf("delete patient failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	invalidate(r.Context(), h.Cache)
	writeJSON(w, r, http.StatusOK, map[string]string{"message": "patient deleted"})
}

// Visit marks the patient's visit complete (PUT /patients/{id}/visit).
// Completing a one-time patient deletes the record irreversibly, so it
// requires the confirm=true query parameter.
func (h *PatientHandler) Visit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.Header().Set("Allow", http.MethodPut)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid patient id")
		return
	}

	p, err := h.Repo.GetPatient(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "patient not found")
		return
	}
	if err != nil {
		log.Printf("get patient failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	completion := services.CompleteVisit(p, time.Now().UTC())

	if completion.DeletePatient && r.URL.Query().Get("confirm") != "true" {
		writeError(w, r, http.StatusConflict,
			"completing a one-time patient deletes the record; repeat with confirm=true")
		return
	}

	if err := h.Repo.ApplyVisitCompletion(r.Context(), completion); err != nil {
		log.Printf("apply visit completion failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	invalidate(r.Context(), h.Cache)

	if completion.DeletePatient {
		writeJSON(w, r, http.StatusOK, map[string]string{"message": "visit completed, one-time patient deleted"})
		return
	}

	updated, err := h.Repo.GetPatient(r.Context(), id)
	if err != nil {
		log.Printf("reload patient failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, r, http.StatusOK, patientToResponse(updated))
}

// Schedule manually plans the patient for a date (POST /patients/{id}/schedule).
func (h *PatientHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid patient id")
		return
	}

	date := time.Now().UTC()
	if r.ContentLength > 0 {
		var req dto.ScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid json body")
			return
		}
		if req.Date != nil {
			date = *req.Date
		}
	}

	err := h.Repo.SchedulePatient(r.Context(), id, date)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "patient not found")
		return
	}
	if err != nil {
		log.Printf("schedule patient failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	invalidate(r.Context(), h.Cache)
	h.get(w, r, id)
}

// Unschedule removes the patient from today's plan and snoozes them until
// tomorrow (POST /patients/{id}/unschedule).
func (h *PatientHandler) Unschedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid patient id")
		return
	}

	now := time.Now().UTC()
	tomorrowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	err := h.Repo.UnschedulePatient(r.Context(), id, tomorrowStart)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "patient not found")
		return
	}
	if err != nil {
		log.Printf("unschedule patient failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	invalidate(r.Context(), h.Cache)
	h.get(w, r, id)
}

// Override reassigns the patient to another provider, one-off or permanently
// (PUT /patients/{id}/override).
func (h *PatientHandler) Override(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.Header().Set("Allow", http.MethodPut)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid patient id")
		return
	}

	var req dto.OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	err := h.Repo.SetOverride(r.Context(), id, req.ProviderID, req.Permanent)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "patient not found")
		return
	}
	if err != nil {
		log.Printf("set override failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	invalidate(r.Context(), h.Cache)
	h.get(w, r, id)
}

// resolveCoords geocodes an address, degrading to nil coordinates with a
// warning message on any failure.
func (h *PatientHandler) resolveCoords(r *http.Request, address string) (*domain.Coordinates, string) {
	if h.Geocoder == nil {
		return nil, "geocoding unavailable; patient stored without coordinates"
	}

	coords, err := h.Geocoder.Resolve(r.Context(), address)
	if errors.Is(err, ports.ErrNoResults) {
		return nil, "address could not be geocoded; patient stored without coordinates"
	}
	if err != nil {
		log.Printf("geocode failed for %q: %v", address, err)
		return nil, "geocoding failed; patient stored without coordinates"
	}

	return &coords, ""
}
