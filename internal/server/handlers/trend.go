// internal/server/handlers/trend.go

package handlers

import (
	"errors"
	"io"
	"net/http"

	"cadence/internal/domain/trend"
	"cadence/internal/platform/logger"
	"cadence/internal/service/listening"
)

// TrendHandler handles trend-related HTTP requests
type TrendHandler struct {
	discoverer trend.Discoverer
	log        *logger.Logger
}

// NewTrendHandler creates a new trend handler
func NewTrendHandler(discoverer trend.Discoverer, log *logger.Logger) *TrendHandler {
	return &TrendHandler{
		discoverer: discoverer,
		log:        log,
	}
}

type discoverRequest struct {
	Platforms []string `json:"platforms"`
	Region    string   `json:"region"`
}

type scoreRequest struct {
	Signals []trend.Signal `json:"signals"`
}

// DiscoverTrends collects, scores and explains current trends
func (h *TrendHandler) DiscoverTrends(w http.ResponseWriter, r *http.Request) {
	// An empty body discovers across every platform and region
	var req discoverRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, h.log, http.StatusBadRequest, err.Error(), nil)
		return
	}

	trends, err := h.discoverer.DiscoverTrends(r.Context(), req.Platforms, req.Region)
	if err != nil {
		if errors.Is(err, listening.ErrNoSignals) {
			respondWithError(w, h.log, http.StatusServiceUnavailable, "No signal source is available", err)
		} else {
			respondWithError(w, h.log, http.StatusInternalServerError, "Failed to discover trends", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, trends)
}

// ScoreSignals scores caller-supplied signals without explanations
func (h *TrendHandler) ScoreSignals(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if len(req.Signals) == 0 {
		respondWithError(w, h.log, http.StatusBadRequest, "At least one signal is required", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, h.discoverer.ScoreSignals(req.Signals))
}

// GetMicroTrends returns fast-growing, low-volume trends
func (h *TrendHandler) GetMicroTrends(w http.ResponseWriter, r *http.Request) {
	micro, err := h.discoverer.DetectMicroTrends(r.Context())
	if err != nil {
		if errors.Is(err, listening.ErrNoSignals) {
			respondWithError(w, h.log, http.StatusServiceUnavailable, "No signal source is available", err)
		} else {
			respondWithError(w, h.log, http.StatusInternalServerError, "Failed to detect micro-trends", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, micro)
}
