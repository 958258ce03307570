// Package feed holds the HTTP clients for the two upstream services: the
// opportunities feed listing upcoming matches and the results feed serving
// finished scores.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
)

// DefaultTimeout bounds every upstream call.
const DefaultTimeout = 30 * time.Second

// Client is the shared HTTP plumbing for both feeds.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.SugaredLogger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.SugaredLogger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feed %s: status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	c.logger.Debugw("Feed call", "path", path,
		"bytes", len(body), "took", time.Since(start))
	return nil
}

// OpportunitiesClient lists upcoming matches worth analyzing.
type OpportunitiesClient struct {
	*Client
}

func NewOpportunitiesClient(baseURL string, timeout time.Duration, logger *zap.SugaredLogger) *OpportunitiesClient {
	return &OpportunitiesClient{Client: NewClient(baseURL, timeout, logger)}
}

// Opportunities fetches the current upcoming-match list.
func (c *OpportunitiesClient) Opportunities(ctx context.Context) ([]models.Opportunity, error) {
	var payload struct {
		Opportunities []models.Opportunity `json:"opportunities"`
	}
	if err := c.getJSON(ctx, "/api/opportunities", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Opportunities, nil
}

// ResultsClient serves finished match results.
type ResultsClient struct {
	*Client
}

func NewResultsClient(baseURL string, timeout time.Duration, logger *zap.SugaredLogger) *ResultsClient {
	return &ResultsClient{Client: NewClient(baseURL, timeout, logger)}
}

type resultPayload struct {
	MatchID    string `json:"match_id"`
	ScoreHome  int    `json:"score_home"`
	ScoreAway  int    `json:"score_away"`
	IsFinished bool   `json:"is_finished"`
}

// GetFinishedResults fetches results for a batch of match ids. Matches the
// upstream has no final score for are simply absent from the map.
func (c *ResultsClient) GetFinishedResults(ctx context.Context, matchIDs []string) (map[string]models.MatchResult, error) {
	if len(matchIDs) == 0 {
		return map[string]models.MatchResult{}, nil
	}

	query := url.Values{}
	query.Set("ids", strings.Join(matchIDs, ","))

	var payload struct {
		Results []resultPayload `json:"results"`
	}
	if err := c.getJSON(ctx, "/api/results", query, &payload); err != nil {
		return nil, err
	}

	out := make(map[string]models.MatchResult, len(payload.Results))
	for _, r := range payload.Results {
		if !r.IsFinished {
			continue
		}
		out[r.MatchID] = models.MatchResult{
			MatchID:    r.MatchID,
			ScoreHome:  r.ScoreHome,
			ScoreAway:  r.ScoreAway,
			Outcome:    outcomeFor(r.ScoreHome, r.ScoreAway),
			IsFinished: true,
		}
	}
	return out, nil
}

func outcomeFor(home, away int) models.Outcome {
	switch {
	case home > away:
		return models.OutcomeHome
	case home < away:
		return models.OutcomeAway
	default:
		return models.OutcomeDraw
	}
}
