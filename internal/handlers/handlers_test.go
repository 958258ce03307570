package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
	"github.com/quantfoot/analytics-api/internal/store"
)

func testHandler(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Pipeline == nil {
		cfg.Pipeline = &MockSnapshotQueue{}
	}
	return New(cfg)
}

func serve(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Routes([]string{"*"}).ServeHTTP(w, req)
	return w
}

func TestGetFriction(t *testing.T) {
	tests := []struct {
		name           string
		compute        func(ctx context.Context, home, away string) (*models.FrictionCell, error)
		expectedStatus int
	}{
		{
			name: "Happy Path",
			compute: func(_ context.Context, home, away string) (*models.FrictionCell, error) {
				return &models.FrictionCell{TeamHome: home, TeamAway: away, PsychologicalEdge: 12}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Missing Profile",
			compute: func(context.Context, string, string) (*models.FrictionCell, error) {
				return nil, nil
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Database Error",
			compute: func(context.Context, string, string) (*models.FrictionCell, error) {
				return nil, errors.New("db error")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHandler(Config{Friction: &MockFrictionService{ComputeFunc: tt.compute}})

			w := serve(h, "GET", "/api/v1/friction/Liverpool/Arsenal", "")
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var cell models.FrictionCell
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cell))
				assert.Equal(t, "Liverpool", cell.TeamHome)
				assert.Equal(t, 12.0, cell.PsychologicalEdge)
			}
		})
	}
}

func TestGetTeamDNA(t *testing.T) {
	teams := &MockTeamService{
		DNAFunc: func(_ context.Context, team string) (*models.TeamDNA, error) {
			if team == "Liverpool" {
				dna := models.DefaultTeamDNA("Liverpool")
				return dna, nil
			}
			return nil, nil
		},
	}
	h := testHandler(Config{Teams: teams})

	w := serve(h, "GET", "/api/v1/teams/Liverpool/dna", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(h, "GET", "/api/v1/teams/Atlantis/dna", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRecommendations(t *testing.T) {
	source := &MockRecommendationSource{
		ListFunc: func(_ context.Context, f store.RecommendationFilter) ([]models.Recommendation, error) {
			return []models.Recommendation{{ID: "r1", MarketType: f.Market}}, nil
		},
	}
	h := testHandler(Config{Recommendations: source})

	w := serve(h, "GET", "/api/v1/recommendations?market=over25&source=live&top3=true&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, models.MarketOver25, source.LastFilter.Market)
	assert.Equal(t, models.SourceLive, source.LastFilter.Source)
	assert.True(t, source.LastFilter.Top3Only)
	assert.Equal(t, 10, source.LastFilter.Limit)

	var payload struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, 1, payload.Count)
}

func TestListRecommendationsRejectsBadFilters(t *testing.T) {
	h := testHandler(Config{Recommendations: &MockRecommendationSource{}})

	w := serve(h, "GET", "/api/v1/recommendations?market=over99", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(h, "GET", "/api/v1/recommendations?source=imaginary", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCLV(t *testing.T) {
	clv := &MockCLVSource{
		GetFunc: func(_ context.Context, matchID string) (*models.CLVData, error) {
			if matchID == "m1" {
				return &models.CLVData{MatchID: "m1", HomeCLV: 6.5, AwayCLV: 1.0}, nil
			}
			return nil, nil
		},
	}
	h := testHandler(Config{CLV: clv})

	w := serve(h, "GET", "/api/v1/clv/m1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Signal string `json:"signal"`
		Side   string `json:"side"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "SWEET_SPOT", payload.Signal)
	assert.Equal(t, "home", payload.Side)

	w = serve(h, "GET", "/api/v1/clv/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDiagnosticsWindow(t *testing.T) {
	var gotWindow int
	diag := &MockDiagnosticsService{
		RunFunc: func(_ context.Context, windowDays int) (*models.DiagnosticsReport, error) {
			gotWindow = windowDays
			return &models.DiagnosticsReport{WindowDays: windowDays}, nil
		},
	}
	h := testHandler(Config{Diagnostics: diag, DiagnosisWindow: 7})

	w := serve(h, "GET", "/api/v1/diagnostics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, gotWindow)

	w = serve(h, "GET", "/api/v1/diagnostics?window=30", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, gotWindow)

	// Out-of-range windows fall back to the default.
	serve(h, "GET", "/api/v1/diagnostics?window=1000", "")
	assert.Equal(t, 7, gotWindow)
}

func TestGetAdjustments(t *testing.T) {
	adj := &MockAdjustmentSource{
		ListFunc: func(_ context.Context, typ models.AdjustmentType) (map[string]float64, error) {
			if typ == models.AdjustMarketFactor {
				return map[string]float64{"over25": 1.15}, nil
			}
			return map[string]float64{}, nil
		},
	}
	h := testHandler(Config{Adjustments: adj})

	w := serve(h, "GET", "/api/v1/adjustments", "")
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Adjustments map[string]map[string]float64 `json:"adjustments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, 1.15, payload.Adjustments["market_factor"]["over25"])
}

func TestIngestOddsSnapshots(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedQueued int
	}{
		{
			name: "Valid Batch",
			body: `[{"match_id":"m1","home":2.1,"draw":3.4,"away":3.6,"over25":1.85,"under25":1.95},
			        {"match_id":"m2","home":1.5,"draw":4.2,"away":6.0}]`,
			expectedStatus: http.StatusAccepted,
			expectedQueued: 2,
		},
		{
			name:           "Invalid JSON",
			body:           `[{invalid`,
			expectedStatus: http.StatusBadRequest,
			expectedQueued: 0,
		},
		{
			name:           "Validation Failure Skipped",
			body:           `[{"match_id":"m1","home":0.9,"draw":3.4,"away":3.6},{"match_id":"m2","home":2.0,"draw":3.3,"away":3.8}]`,
			expectedStatus: http.StatusAccepted,
			expectedQueued: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := &MockSnapshotQueue{}
			h := testHandler(Config{Pipeline: queue})

			w := serve(h, "POST", "/api/v1/odds/snapshots", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Len(t, queue.Snapshots, tt.expectedQueued)
		})
	}
}

func TestIngestOddsSnapshotsMarksTotals(t *testing.T) {
	queue := &MockSnapshotQueue{}
	h := testHandler(Config{Pipeline: queue})

	body := `[{"match_id":"m1","home":2.1,"draw":3.4,"away":3.6,"over25":1.85,"under25":1.95},
	          {"match_id":"m2","home":1.5,"draw":4.2,"away":6.0}]`
	serve(h, "POST", "/api/v1/odds/snapshots", body)

	require.Len(t, queue.Snapshots, 2)
	assert.True(t, queue.Snapshots[0].HasTotals)
	assert.False(t, queue.Snapshots[1].HasTotals)
	assert.Equal(t, "pinnacle", queue.Snapshots[1].Bookmaker)
}

func TestPhaseTriggers(t *testing.T) {
	collect := &MockPhaseRunner{RunFunc: func(context.Context) (int, error) { return 3, nil }}
	resolve := &MockPhaseRunner{RunFunc: func(context.Context) (int, error) { return 0, errors.New("feed down") }}
	h := testHandler(Config{Collect: collect, Resolve: resolve})

	w := serve(h, "POST", "/api/v1/admin/collect", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, collect.Calls)

	var payload struct {
		Phase     string `json:"phase"`
		Processed int    `json:"processed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "collect", payload.Phase)
	assert.Equal(t, 3, payload.Processed)

	w = serve(h, "POST", "/api/v1/admin/resolve", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealth(t *testing.T) {
	h := testHandler(Config{})

	w := serve(h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
