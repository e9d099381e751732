// Package scoring talks to the external resume-matching service. The engine
// only consumes the final score; how it is computed lives entirely on the
// other side of this client.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type scoreRequest struct {
	JobID       int64  `json:"job_id"`
	CandidateID string `json:"candidate_id"`
}

type scoreResponse struct {
	FinalScore float64 `json:"final_score"`
}

// HTTPScorer implements domain.Scorer against the matcher service's HTTP
// endpoint.
type HTTPScorer struct {
	baseURL string
	client  *http.Client
}

func NewHTTPScorer(baseURL string) *HTTPScorer {
	return &HTTPScorer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPScorer) Score(ctx context.Context, jobID int64, candidateID string) (float64, error) {
	payload, err := json.Marshal(scoreRequest{JobID: jobID, CandidateID: candidateID})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/match", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("scoring: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("scoring: matcher returned status %d", resp.StatusCode)
	}

	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("scoring: decode response: %w", err)
	}
	return out.FinalScore, nil
}
