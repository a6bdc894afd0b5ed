package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddsvault/bookrisk/internal/analysis"
	"github.com/oddsvault/bookrisk/pkg/types"
)

type captureSink struct {
	results []*types.AnalysisResult
}

func (c *captureSink) Consume(_ context.Context, result *types.AnalysisResult) {
	c.results = append(c.results, result)
}

func testRouter(sinks ...Sink) http.Handler {
	facade := analysis.NewFacade(analysis.Config{NumSimulations: 200, BulkSimulations: 200, Seed: 1})
	return NewRouter(NewHandler(facade, sinks...))
}

func testSnapshot(address string) *types.MarketSnapshot {
	return &types.MarketSnapshot{
		Address:         address,
		Status:          "Open",
		HomeOdds:        1910,
		AwayOdds:        1910,
		TotalPoints:     2215,
		OverOdds:        1910,
		UnderOdds:       1910,
		CurrentExposure: 4000,
		MaxExposure:     10000,
	}
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestAnalyze(t *testing.T) {
	sink := &captureSink{}
	router := testRouter(sink)

	rr := postJSON(t, router, "/v1/analyze", AnalyzeRequest{Snapshot: testSnapshot("0xabc")})
	require.Equal(t, http.StatusOK, rr.Code)

	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "0xabc", result.MarketAddress)
	assert.NotEmpty(t, result.AnalysisID)
	assert.NotEmpty(t, result.RiskStatus)

	require.Len(t, sink.results, 1)
	assert.Equal(t, "0xabc", sink.results[0].MarketAddress)
}

func TestAnalyze_MissingSnapshot(t *testing.T) {
	router := testRouter()

	rr := postJSON(t, router, "/v1/analyze", AnalyzeRequest{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "snapshot")
}

func TestAnalyze_MalformedBody(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBulkAnalyze(t *testing.T) {
	sink := &captureSink{}
	router := testRouter(sink)

	settled := testSnapshot("0xsettled")
	settled.Status = "Settled"

	rr := postJSON(t, router, "/v1/analyze/bulk", BulkAnalyzeRequest{
		Markets: []*types.MarketSnapshot{testSnapshot("0xa"), testSnapshot("0xb"), settled},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var portfolio types.PortfolioResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &portfolio))
	assert.Len(t, portfolio.Markets, 2)
	assert.Equal(t, 2, portfolio.Summary.TotalMarkets)

	assert.Len(t, sink.results, 2)
}

func TestBulkAnalyze_EmptyMarkets(t *testing.T) {
	router := testRouter()

	rr := postJSON(t, router, "/v1/analyze/bulk", BulkAnalyzeRequest{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
