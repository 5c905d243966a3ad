package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
)

// Client talks to an external judge service over HTTP. The judge receives
// the code and the problem's hidden test cases and returns a Result.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an evaluator backed by the judge at baseURL. Timeouts
// are enforced per-call through the request context, not on the client.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// evaluateRequest is the judge's wire format for a submission.
type evaluateRequest struct {
	Code          string            `json:"code"`
	Language      string            `json:"language"`
	TimeLimitMs   int64             `json:"time_limit_ms"`
	MemoryLimitKb int64             `json:"memory_limit_kb"`
	TestCases     []domain.TestCase `json:"test_cases"`
}

// Evaluate submits the code to the judge and decodes the verdict.
func (c *Client) Evaluate(ctx context.Context, code, language string, problem domain.ContestProblem) (*Result, error) {
	payload, err := json.Marshal(evaluateRequest{
		Code:          code,
		Language:      language,
		TimeLimitMs:   problem.TimeLimitMs,
		MemoryLimitKb: problem.MemoryLimitKb,
		TestCases:     problem.TestCases,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode evaluation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/evaluate", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("judge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Judge returned non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.String("language", language),
		)
		return nil, fmt.Errorf("judge returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode judge response: %w", err)
	}
	return &result, nil
}
