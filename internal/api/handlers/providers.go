package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"visit-planner-service/internal/api/dto"
	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/ports"
)

// ProviderHandler exposes provider CRUD endpoints.
type ProviderHandler struct {
	Repo                ports.ProviderRepository
	Cache               ports.PlanCache
	DefaultDailyMinutes int
}

// Collection handles GET (list) and POST (create) on /providers.
func (h *ProviderHandler) Collection(w http.ResponseWriter, r *http.Request) {
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

// ByID handles GET, PUT and DELETE on /providers/{id}.
func (h *ProviderHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid provider id")
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

func (h *ProviderHandler) list(w http.ResponseWriter, r *http.Request) {
	providers, err := h.Repo.ListProviders(r.Context())
	if err != nil {
		log.Printf("list providers failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListProvidersResponse{
		Providers: make([]dto.ProviderResponse, 0, len(providers)),
	}
	for _, p := range providers {
		res.Providers = append(res.Providers, providerToResponse(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ProviderHandler) get(w http.ResponseWriter, r *http.Request, id int) {
	p, err := h.Repo.GetProvider(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "provider not found")
		return
	}
	if err != nil {
		log.Printf("get provider failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, providerToResponse(p))
}

func (h *ProviderHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if req.Name == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}
	if req.MaxDailyMinutes == 0 {
		req.MaxDailyMinutes = h.DefaultDailyMinutes
	}
	if req.MaxDailyMinutes < 0 {
		writeError(w, r, http.StatusBadRequest, "max_daily_minutes must be positive")
		return
	}
	if req.Color == "" {
		req.Color = "#33656E"
	}

	created, err := h.Repo.CreateProvider(r.Context(), &domain.Provider{
		Name:            req.Name,
		Role:            req.Role,
		Color:           req.Color,
		MaxDailyMinutes: req.MaxDailyMinutes,
	})
	if err != nil {
		log.Printf("create provider failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	invalidate(r.Context(), h.Cache)
	writeJSON(w, r, http.StatusCreated, providerToResponse(created))
}

func (h *ProviderHandler) update(w http.ResponseWriter, r *http.Request, id int) {
	var req dto.UpdateProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	p, err := h.Repo.GetProvider(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "provider not found")
		return
	}
	if err != nil {
		log.Printf("get provider failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Role != nil {
		p.Role = *req.Role
	}
	if req.Color != nil {
		p.Color = *req.Color
	}
	if req.MaxDailyMinutes != nil {
		if *req.MaxDailyMinutes <= 0 {
			writeError(w, r, http.StatusBadRequest, "max_daily_minutes must be positive")
			return
		}
		p.MaxDailyMinutes = *req.MaxDailyMinutes
	}

	if err := h.Repo.UpdateProvider(r.Context(), p); err != nil {
		log.Printf("update provider failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	invalidate(r.Context(), h.Cache)
	writeJSON(w, r, http.StatusOK, providerToResponse(p))
}

// delete removes a provider. Patients keep a dangling reference that the
// planner resolves into the unassigned pool.
func (h *ProviderHandler) delete(w http.ResponseWriter, r *http.Request, id int) {
	err := h.Repo.DeleteProvider(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "provider not found")
		return
	}
	if err != nil {
		log.Printf("delete provider failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	invalidate(r.Context(), h.Cache)
	writeJSON(w, r, http.StatusOK, map[string]string{"message": "provider deleted"})
}
