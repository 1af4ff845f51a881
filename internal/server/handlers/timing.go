package handlers

import (
	"net/http"

	"cadence/internal/domain/timing"
	"cadence/internal/platform/logger"
)

// TimingHandler serves posting-time recommendations
type TimingHandler struct {
	optimizer timing.Optimizer
	log       *logger.Logger
}

// NewTimingHandler creates a new timing handler
func NewTimingHandler(optimizer timing.Optimizer, log *logger.Logger) *TimingHandler {
	return &TimingHandler{
		optimizer: optimizer,
		log:       log,
	}
}

type timingRequest struct {
	Platforms   []string           `json:"platforms"`
	Profile     timing.UserProfile `json:"profile"`
	ContentType string             `json:"contentType"`
}

// GetOptimalTiming recommends a posting time per known platform
func (h *TimingHandler) GetOptimalTiming(w http.ResponseWriter, r *http.Request) {
	var req timingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if len(req.Platforms) == 0 {
		respondWithError(w, h.log, http.StatusBadRequest, "At least one platform is required", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, h.optimizer.GetOptimalTiming(r.Context(), req.Platforms, req.Profile, req.ContentType))
}
