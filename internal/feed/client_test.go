package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpportunitiesClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/opportunities", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"opportunities":[
			{"match_id":"m1","home_team":"Liverpool","away_team":"Arsenal","league":"EPL","kickoff_at":"2026-09-05T15:00:00Z"},
			{"match_id":"m2","home_team":"Betis","away_team":"Sevilla","league":"LaLiga","kickoff_at":"2026-09-06T19:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	client := NewOpportunitiesClient(srv.URL, 0, zap.NewNop().Sugar())

	opps, err := client.Opportunities(context.Background())
	require.NoError(t, err)
	require.Len(t, opps, 2)
	assert.Equal(t, "m1", opps[0].MatchID)
	assert.Equal(t, "Liverpool", opps[0].HomeTeam)
	assert.Equal(t, "LaLiga", opps[1].League)
}

func TestOpportunitiesClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewOpportunitiesClient(srv.URL, 0, zap.NewNop().Sugar())

	_, err := client.Opportunities(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestResultsClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/results", r.URL.Path)
		assert.Equal(t, "m1,m2,m3", r.URL.Query().Get("ids"))
		w.Write([]byte(`{"results":[
			{"match_id":"m1","score_home":3,"score_away":1,"is_finished":true},
			{"match_id":"m2","score_home":1,"score_away":1,"is_finished":true},
			{"match_id":"m3","score_home":0,"score_away":0,"is_finished":false}
		]}`))
	}))
	defer srv.Close()

	client := NewResultsClient(srv.URL, 0, zap.NewNop().Sugar())

	results, err := client.GetFinishedResults(context.Background(), []string{"m1", "m2", "m3"})
	require.NoError(t, err)

	// The in-play m3 must not surface as a result.
	require.Len(t, results, 2)
	assert.Equal(t, "home", string(results["m1"].Outcome))
	assert.Equal(t, 3, results["m1"].ScoreHome)
	assert.Equal(t, "draw", string(results["m2"].Outcome))
	assert.True(t, results["m2"].IsFinished)
}

func TestResultsClientEmptyBatch(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewResultsClient(srv.URL, time.Second, zap.NewNop().Sugar())

	results, err := client.GetFinishedResults(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.False(t, called)
}

func TestResultsClientMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"results": not-json`))
	}))
	defer srv.Close()

	client := NewResultsClient(srv.URL, 0, zap.NewNop().Sugar())

	_, err := client.GetFinishedResults(context.Background(), []string{"m1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
