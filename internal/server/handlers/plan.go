// internal/server/handlers/plan.go

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cadence/internal/domain/content"
	"cadence/internal/domain/timing"
	"cadence/internal/domain/trend"
	"cadence/internal/platform/logger"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// PlanHandler handles content plan HTTP requests
type PlanHandler struct {
	planner content.Planner
	store   content.Store
	log     *logger.Logger
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planner content.Planner, store content.Store, log *logger.Logger) *PlanHandler {
	return &PlanHandler{
		planner: planner,
		store:   store,
		log:     log,
	}
}

type createPlanRequest struct {
	Trends     []trend.ScoredTrend     `json:"trends"`
	Timings    []timing.Recommendation `json:"timings"`
	BrandVoice content.BrandVoice      `json:"brandVoice"`
	Platforms  []string                `json:"platforms"`
}

type adaptRequest struct {
	Piece      content.Piece      `json:"piece"`
	Platform   string             `json:"platform"`
	BrandVoice content.BrandVoice `json:"brandVoice"`
}

// CreatePlan generates and stores a weekly plan
func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, err.Error(), nil)
		return
	}

	plan, err := h.planner.GenerateWeeklyPlan(r.Context(), req.Trends, req.Timings, req.BrandVoice, req.Platforms)
	if err != nil {
		respondWithError(w, h.log, generationStatus(err), "Failed to generate plan", err)
		return
	}

	if h.store != nil {
		// A generated plan is still returned when it cannot be stored
		if err := h.store.SavePlan(r.Context(), *plan); err != nil {
			h.log.Error("error saving plan", "plan_id", plan.ID, "error", err)
		}
	}

	respondWithJSON(w, http.StatusCreated, plan)
}

// ListPlans returns stored plans, newest first
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 {
			respondWithError(w, h.log, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		limit = min(l, maxListLimit)
	}

	plans, err := h.store.ListPlans(r.Context(), limit)
	if err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, "Failed to list plans", err)
		return
	}

	respondWithJSON(w, http.StatusOK, plans)
}

// GetPlan returns a specific plan by ID
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, h.log, http.StatusBadRequest, "Missing plan ID", nil)
		return
	}

	plan, err := h.store.GetPlan(r.Context(), id)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			respondWithError(w, h.log, http.StatusNotFound, "Plan not found", nil)
		} else {
			respondWithError(w, h.log, http.StatusInternalServerError, "Failed to get plan", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, plan)
}

// AdaptPiece rewrites a piece for another platform
func (h *PlanHandler) AdaptPiece(w http.ResponseWriter, r *http.Request) {
	var req adaptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if req.Platform == "" {
		respondWithError(w, h.log, http.StatusBadRequest, "Missing target platform", nil)
		return
	}

	piece, err := h.planner.AdaptForPlatform(r.Context(), req.Piece, req.Platform, req.BrandVoice)
	if err != nil {
		respondWithError(w, h.log, generationStatus(err), "Failed to adapt content", err)
		return
	}

	respondWithJSON(w, http.StatusOK, piece)
}
