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
)

// Fallback messages shown when the server gives no usable error text
const (
	MessageRejected  = "Something went wrong. Please try again."
	MessageTransport = "Failed to submit. Please try again."
)

// DefaultBaseURL is the origin of a locally running server
const DefaultBaseURL = "http://localhost:8080"

// Endpoint paths of the intake API, relative to the site origin
const (
	EndpointBooking    = "/api/booking"
	EndpointMultiCity  = "/api/multi-city"
	EndpointContact    = "/api/contact"
	EndpointEnterprise = "/api/enterprise-inquiry"
	EndpointServices   = "/api/services"
)

// Kind separates a server rejection from a request that never got an answer
type Kind int

const (
	KindRejected Kind = iota
	KindTransport
)

func (k Kind) String() string {
	if k == KindTransport {
		return "transport"
	}
	return "rejected"
}

// SubmissionError is returned by Submit for every failed submission.
// Message is safe to show to the end user.
type SubmissionError struct {
	Kind    Kind
	Status  int
	Code    string
	Fields  []string
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Client posts wizard payloads to the intake API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds configuration for the intake client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// New creates a new intake client. A zero timeout means 30s.
func New(config Config) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	// endpoints carry the /api prefix, so a base URL ending in it is reduced
	// to the origin
	baseURL := strings.TrimSuffix(strings.TrimRight(config.BaseURL, "/"), "/api")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type submitResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	ID      string   `json:"id"`
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Fields  []string `json:"fields"`
}

// Submit posts payload to endpoint and returns the server-assigned id.
// There is no retry and no idempotency key.
func (c *Client) Submit(ctx context.Context, endpoint string, payload interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &SubmissionError{Kind: KindTransport, Message: MessageTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &SubmissionError{Kind: KindTransport, Status: resp.StatusCode, Message: MessageTransport, Err: err}
	}

	var result submitResponse
	decodeErr := json.Unmarshal(raw, &result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := MessageRejected
		if decodeErr == nil && result.Error != "" {
			msg = result.Error
		}
		return "", &SubmissionError{
			Kind:    KindRejected,
			Status:  resp.StatusCode,
			Code:    result.Code,
			Fields:  result.Fields,
			Message: msg,
		}
	}

	if decodeErr != nil || result.ID == "" {
		return "", &SubmissionError{Kind: KindRejected, Status: resp.StatusCode, Message: MessageRejected, Err: decodeErr}
	}
	return result.ID, nil
}
