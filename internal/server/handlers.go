package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/oddsvault/bookrisk/internal/analysis"
	"github.com/oddsvault/bookrisk/pkg/types"
)

// Sink receives completed analysis results, e.g. a Redis store or a NATS
// alert publisher. Sinks must not block the request path for long.
type Sink interface {
	Consume(ctx context.Context, result *types.AnalysisResult)
}

// Handler serves the risk analysis HTTP API.
type Handler struct {
	facade *analysis.Facade
	sinks  []Sink
	logger *logrus.Entry
}

// NewHandler creates a handler over the facade. Sinks receive every result
// after it is written to the client.
func NewHandler(facade *analysis.Facade, sinks ...Sink) *Handler {
	return &Handler{
		facade: facade,
		sinks:  sinks,
		logger: logrus.WithField("component", "risk-server"),
	}
}

// AnalyzeRequest is the body of POST /v1/analyze.
type AnalyzeRequest struct {
	Snapshot             *types.MarketSnapshot       `json:"snapshot"`
	ExposureDistribution *types.ExposureDistribution `json:"exposure_distribution,omitempty"`
	NumSimulations       int                         `json:"num_simulations,omitempty"`
}

// BulkAnalyzeRequest is the body of POST /v1/analyze/bulk.
type BulkAnalyzeRequest struct {
	Markets               []*types.MarketSnapshot                `json:"markets"`
	ExposureDistributions map[string]*types.ExposureDistribution `json:"exposure_distributions,omitempty"`
	NumSimulations        int                                    `json:"num_simulations,omitempty"`
}

// HealthCheck returns service health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "risk-server",
	})
}

// Analyze runs a single-market risk analysis.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if req.Snapshot == nil {
		respondError(w, http.StatusBadRequest, "snapshot is required")
		return
	}

	result := h.facade.AnalyzeMarketRisk(req.Snapshot, req.ExposureDistribution, req.NumSimulations)
	respondJSON(w, http.StatusOK, result)

	h.dispatch(r.Context(), result)
}

// BulkAnalyze runs a portfolio-level analysis over many markets.
func (h *Handler) BulkAnalyze(w http.ResponseWriter, r *http.Request) {
	var req BulkAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if len(req.Markets) == 0 {
		respondError(w, http.StatusBadRequest, "markets is required")
		return
	}

	portfolio := h.facade.BulkAnalyzeMarkets(req.Markets, req.ExposureDistributions, req.NumSimulations)
	respondJSON(w, http.StatusOK, portfolio)

	for _, result := range portfolio.Markets {
		h.dispatch(r.Context(), result)
	}
}

// dispatch hands a result to every configured sink.
func (h *Handler) dispatch(ctx context.Context, result *types.AnalysisResult) {
	for _, sink := range h.sinks {
		sink.Consume(ctx, result)
	}
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
