// Package eventapi provides a client for the remote event-registration and
// judging REST API. Payloads are validated at this boundary; callers only
// ever see fully populated models.
package eventapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/abrezinsky/judgedesk/internal/errors"
	"github.com/abrezinsky/judgedesk/internal/logger"
	"github.com/abrezinsky/judgedesk/internal/metrics"
	"github.com/abrezinsky/judgedesk/internal/models"
)

// Endpoint names used in logs and metrics
const (
	EndpointScores       = "scores"
	EndpointProgress     = "progress"
	EndpointMyScores     = "my_scores"
	EndpointAssignments  = "assignments"
	EndpointParticipants = "participants"
	EndpointApprove      = "approve_payment"
)

// Client defines the event API operations judgedesk uses
type Client interface {
	// FetchParticipantScores returns every judge's scores for a participant
	FetchParticipantScores(ctx context.Context, participantID int) ([]models.Score, error)
	// FetchJudgeProgress returns the current judge's progress for a program, nil if the API has none
	FetchJudgeProgress(ctx context.Context, programID int) (*models.Progress, error)
	// FetchMyScores returns the current judge's own submissions for a program
	FetchMyScores(ctx context.Context, programID int) ([]models.JudgingScore, error)
	// FetchAssignments returns the programs the current judge is assigned to
	FetchAssignments(ctx context.Context) ([]models.Assignment, error)
	// FetchParticipants lists registrants matching the filter
	FetchParticipants(ctx context.Context, filter models.ParticipantFilter) ([]models.Participant, error)
	// ApprovePayment marks a participant's payment approved
	ApprovePayment(ctx context.Context, participantID int) error
	BaseURL() string
	SetBaseURL(url string)
	// SetToken sets the bearer token forwarded on every request
	SetToken(token string)
}

// HTTPClient is the real HTTP client for the event API
type HTTPClient struct {
	httpClient *http.Client
	log        logger.Logger
	metrics    *metrics.Metrics
	validate   *validator.Validate

	mu      sync.RWMutex
	baseURL string
	token   string
}

// NewHTTPClient creates a client with a 30 second request timeout
func NewHTTPClient(baseURL string, log logger.Logger, m *metrics.Metrics) *HTTPClient {
	return NewHTTPClientWithHTTPClient(baseURL, &http.Client{Timeout: 30 * time.Second}, log, m)
}

// NewHTTPClientWithHTTPClient creates a client around a custom http.Client
func NewHTTPClientWithHTTPClient(baseURL string, httpClient *http.Client, log logger.Logger, m *metrics.Metrics) *HTTPClient {
	return &HTTPClient{
		httpClient: httpClient,
		log:        log,
		metrics:    m,
		validate:   validator.New(),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *HTTPClient) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

func (c *HTTPClient) SetBaseURL(u string) {
	c.mu.Lock()
	c.baseURL = strings.TrimRight(u, "/")
	c.mu.Unlock()
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// doRequest sends a request and returns the body of a 2xx response.
// 404 maps to a NotFound error; any other failure is Unavailable.
func (c *HTTPClient) doRequest(ctx context.Context, endpoint, method, path string, query url.Values, payload any) ([]byte, error) {
	c.mu.RLock()
	base, token := c.baseURL, c.token
	c.mu.RUnlock()

	if base == "" {
		return nil, errors.Unavailable("event API URL is not configured", nil)
	}

	reqURL := base + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Internal(fmt.Errorf("encode %s request: %w", endpoint, err))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug("Event API request", "method", method, "url", reqURL, "endpoint", endpoint)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRemote(endpoint, "error", time.Since(start))
		return nil, errors.Unavailable("failed to connect to event API", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	c.metrics.ObserveRemote(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))
	if err != nil {
		return nil, errors.Unavailable("failed to read event API response", err)
	}

	c.log.Debug("Event API response", "endpoint", endpoint, "status", resp.StatusCode, "bytes", len(respBody))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NotFoundf("event API %s: not found", endpoint)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, errors.Unavailable(fmt.Sprintf("event API %s returned status %d", endpoint, resp.StatusCode), nil)
	}
	return respBody, nil
}

// fetchList decodes a list response record by record, drops records that
// fail to decode or validate and converts the rest
func fetchList[W any, M any](c *HTTPClient, ctx context.Context, endpoint, path string, query url.Values, conv func(W) M) ([]M, error) {
	body, err := c.doRequest(ctx, endpoint, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	raw, err := decodeList(body)
	if err != nil {
		return nil, errors.Unavailable(fmt.Sprintf("failed to parse event API %s response", endpoint), err)
	}

	out := make([]M, 0, len(raw))
	rejected := 0
	for i, rec := range raw {
		var item W
		if err := json.Unmarshal(rec, &item); err != nil {
			rejected++
			c.log.Warn("Dropping malformed event API record", "endpoint", endpoint, "index", i, "error", err)
			continue
		}
		if err := c.validate.Struct(item); err != nil {
			rejected++
			c.log.Warn("Dropping invalid event API record", "endpoint", endpoint, "index", i, "error", err)
			continue
		}
		out = append(out, conv(item))
	}
	c.metrics.RecordRejected(endpoint, rejected)
	return out, nil
}

func (c *HTTPClient) FetchParticipantScores(ctx context.Context, participantID int) ([]models.Score, error) {
	q := url.Values{}
	q.Set("contestant", strconv.Itoa(participantID))
	return fetchList(c, ctx, EndpointScores, "/api/scores/", q, wireScore.model)
}

func (c *HTTPClient) FetchJudgeProgress(ctx context.Context, programID int) (*models.Progress, error) {
	q := url.Values{}
	q.Set("program", strconv.Itoa(programID))
	body, err := c.doRequest(ctx, EndpointProgress, http.MethodGet, "/api/judging/progress/", q, nil)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}

	var w wireProgress
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return nil, errors.Unavailable("failed to parse event API progress response", err)
	}
	if err := c.validate.Struct(w); err != nil {
		c.metrics.RecordRejected(EndpointProgress, 1)
		return nil, errors.Unavailable("event API progress response failed validation", err)
	}
	return w.model(), nil
}

func (c *HTTPClient) FetchMyScores(ctx context.Context, programID int) ([]models.JudgingScore, error) {
	q := url.Values{}
	q.Set("program", strconv.Itoa(programID))
	return fetchList(c, ctx, EndpointMyScores, "/api/judging/my-scores/", q, wireJudgingScore.model)
}

func (c *HTTPClient) FetchAssignments(ctx context.Context) ([]models.Assignment, error) {
	return fetchList(c, ctx, EndpointAssignments, "/api/judging/assignments/", nil, wireAssignment.model)
}

func (c *HTTPClient) FetchParticipants(ctx context.Context, filter models.ParticipantFilter) ([]models.Participant, error) {
	q := url.Values{}
	if filter.Program != 0 {
		q.Set("program", strconv.Itoa(filter.Program))
	}
	if filter.PaymentStatus != "" {
		q.Set("payment_status", filter.PaymentStatus)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	return fetchList(c, ctx, EndpointParticipants, "/api/participants/", q, wireParticipant.model)
}

func (c *HTTPClient) ApprovePayment(ctx context.Context, participantID int) error {
	path := fmt.Sprintf("/api/participants/%d/", participantID)
	_, err := c.doRequest(ctx, EndpointApprove, http.MethodPatch, path, nil, map[string]string{
		"payment_status": models.PaymentApproved,
	})
	return err
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)
