// Package client implements the HTTP exchange with the Lawsarthi answering
// backend: one question in, one answer out.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the documented fallback when no backend URL is
// configured.
const DefaultBaseURL = "http://localhost:5000"

// DefaultTimeout bounds a single backend exchange so a hung request cannot
// occupy the pending state forever.
const DefaultTimeout = 60 * time.Second

// AnswerClient performs one request/response exchange with the backend.
type AnswerClient interface {
	// Ask sends a question and returns the backend's answer. Any transport
	// failure, non-success status, or missing/empty answer is an error; the
	// caller does not distinguish between failure kinds.
	Ask(ctx context.Context, question string) (string, error)
}

// ChatRequest represents the request body for the backend's chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse represents the response from the backend's chat endpoint.
// The Flask backend answers with "response"; "answer" is accepted as well.
type ChatResponse struct {
	Response string `json:"response"`
	Answer   string `json:"answer"`
}

// HealthResponse represents the response from the backend's health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// HTTPAnswerClient implements AnswerClient against the Flask backend.
type HTTPAnswerClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ AnswerClient = (*HTTPAnswerClient)(nil)

// New creates a client for the backend at baseURL. A zero timeout falls back
// to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *HTTPAnswerClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPAnswerClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ask sends the question to the backend's chat endpoint.
func (c *HTTPAnswerClient) Ask(ctx context.Context, question string) (string, error) {
	reqBody := ChatRequest{Message: question}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %v", err)
	}

	url := c.baseURL + "/chat"
	log.Debug().Str("url", url).Msg("sending question to backend")

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Bytes("body", body).Msg("backend returned non-success status")
		return "", fmt.Errorf("backend request failed (HTTP %d)", resp.StatusCode)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("error parsing response: %v", err)
	}

	answer := chatResp.Response
	if answer == "" {
		answer = chatResp.Answer
	}
	if answer == "" {
		return "", fmt.Errorf("backend returned an empty answer")
	}

	return answer, nil
}

// Health checks the backend's health endpoint.
func (c *HTTPAnswerClient) Health(ctx context.Context) (*HealthResponse, error) {
	url := c.baseURL + "/health"

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("health check failed (HTTP %d)", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, fmt.Errorf("error parsing response: %v", err)
	}

	if health.Status != "healthy" {
		return &health, fmt.Errorf("backend reported status %q", health.Status)
	}

	return &health, nil
}
