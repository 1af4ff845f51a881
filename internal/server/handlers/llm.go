package handlers

import (
	"context"
	"errors"
	"net/http"

	"cadence/internal/domain/insight"
	"cadence/internal/domain/llm"
	"cadence/internal/platform/logger"
	llmService "cadence/internal/service/llm"
)

// LLMHandler exposes provider routing decisions and the one-shot generation flows
type LLMHandler struct {
	selector *llmService.Selector
	analyst  insight.Analyst
	order    []llm.Provider
	log      *logger.Logger
}

// NewLLMHandler creates an LLM handler. A nil order uses llm.FallbackOrder.
func NewLLMHandler(selector *llmService.Selector, analyst insight.Analyst, order []llm.Provider, log *logger.Logger) *LLMHandler {
	if len(order) == 0 {
		order = llm.FallbackOrder
	}
	return &LLMHandler{
		selector: selector,
		analyst:  analyst,
		order:    order,
		log:      log,
	}
}

type routeRequest struct {
	Type       llm.TaskType   `json:"type"`
	Complexity llm.Complexity `json:"complexity"`
}

type routeResponse struct {
	Provider llm.Provider   `json:"provider"`
	Chain    []llm.Provider `json:"chain"`
}

// Route reports the provider a task would go to and its fallback chain
func (h *LLMHandler) Route(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if req.Type == "" {
		respondWithError(w, h.log, http.StatusBadRequest, "Missing task type", nil)
		return
	}
	if req.Complexity == "" {
		req.Complexity = llm.ComplexityMedium
	}

	primary := h.selector.Select(llm.Task{Type: req.Type, Complexity: req.Complexity})
	respondWithJSON(w, http.StatusOK, routeResponse{
		Provider: primary,
		Chain:    llmService.FallbackChain(primary, h.order),
	})
}

// runFlow decodes a request, runs flow and writes its result
func runFlow[Req, Res any](h *LLMHandler, flow func(context.Context, Req) (Res, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithError(w, h.log, http.StatusBadRequest, err.Error(), nil)
			return
		}

		res, err := flow(r.Context(), req)
		if errors.Is(err, insight.ErrMissingInput) {
			respondWithError(w, h.log, http.StatusBadRequest, err.Error(), nil)
			return
		}
		if err != nil {
			respondWithError(w, h.log, generationStatus(err), "Generation failed", err)
			return
		}
		respondWithJSON(w, http.StatusOK, res)
	}
}

// OptimizeHashtags suggests hashtags for a post
func (h *LLMHandler) OptimizeHashtags(w http.ResponseWriter, r *http.Request) {
	runFlow(h, h.analyst.OptimizeHashtags)(w, r)
}

// CheckCompliance screens content before it is published
func (h *LLMHandler) CheckCompliance(w http.ResponseWriter, r *http.Request) {
	runFlow(h, h.analyst.CheckCompliance)(w, r)
}

// ReviewBrandVoice checks a draft against the brand voice
func (h *LLMHandler) ReviewBrandVoice(w http.ResponseWriter, r *http.Request) {
	runFlow(h, h.analyst.ReviewBrandVoice)(w, r)
}

// AnalyzeSentiment reads audience sentiment from text
func (h *LLMHandler) AnalyzeSentiment(w http.ResponseWriter, r *http.Request) {
	runFlow(h, h.analyst.AnalyzeSentiment)(w, r)
}

// PredictPerformance estimates engagement and reach
func (h *LLMHandler) PredictPerformance(w http.ResponseWriter, r *http.Request) {
	runFlow(h, h.analyst.PredictPerformance)(w, r)
}

// PlanStrategy drafts a competitive weekly strategy
func (h *LLMHandler) PlanStrategy(w http.ResponseWriter, r *http.Request) {
	runFlow(h, h.analyst.PlanStrategy)(w, r)
}

// Repurpose rewrites content into another format
func (h *LLMHandler) Repurpose(w http.ResponseWriter, r *http.Request) {
	runFlow(h, h.analyst.Repurpose)(w, r)
}
