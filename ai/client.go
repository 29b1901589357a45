// Package ai talks to the external issue-triage flow. The model and
// prompt live behind an HTTP endpoint; this side only knows the
// input/output contract.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TriageInput is what the triage flow needs to classify an issue.
type TriageInput struct {
	Description  string `json:"description"`
	PhotoDataURI string `json:"photoDataUri"`
}

// TriageResult is the structured classification the flow returns.
// Priority is reported lowercase ("high", "medium", "low") and the
// summary is under 20 words.
type TriageResult struct {
	Category   string `json:"category"`
	Priority   string `json:"priority"`
	IsCritical bool   `json:"isCritical"`
	Summary    string `json:"summary"`
}

// Client is the triage adapter consumed by the submission path.
type Client interface {
	Triage(ctx context.Context, input TriageInput) (*TriageResult, error)
}

// HTTPClient calls the triage flow over HTTP.
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

func NewHTTPClient(endpoint string) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) Triage(ctx context.Context, input TriageInput) (*TriageResult, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("AI_TRIAGE_URL is not configured")
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("triage flow returned status %d", resp.StatusCode)
	}

	var result TriageResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
