package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Backend defines the medication API surface consumed by the UI.
// This interface is implemented by *Client and can be used for testing.
type Backend interface {
	Medicines(ctx context.Context) ([]Medicine, error)
	Medicine(ctx context.Context, id int64) (*Medicine, error)
	CreateMedicine(ctx context.Context, req NewMedicine) (*Medicine, error)
	TodaySchedules(ctx context.Context) ([]Schedule, error)
	ScheduleDetail(ctx context.Context, id int64) (*ScheduleDetail, error)
	CreateSchedule(ctx context.Context, req NewSchedule) (*ScheduleDetail, error)
	SubmitConditions(ctx context.Context, conditions []string) error
	AnalyzeScan(ctx context.Context, req ScanRequest) (*Report, error)
	ChatSessions(ctx context.Context) ([]ChatSession, error)
	ChatHistory(ctx context.Context, sessionID string) ([]ChatMessage, error)
	SendChat(ctx context.Context, message, sessionID string) (*ChatReply, error)
}

// Ensure Client implements Backend at compile time.
var _ Backend = (*Client)(nil)

// Client talks to the medication backend's HTTP API.
type Client struct {
	baseURL       *url.URL
	http          *http.Client
	userAgent     string
	createTimeout time.Duration
}

const (
	defaultBaseURL   = "http://localhost:3000"
	defaultUserAgent = "pillterm/0.1"

	// requestTimeout bounds every request; scan analysis and chat replies
	// come from a slow model backend, so it is deliberately generous.
	requestTimeout = 60 * time.Second

	// createMedicineTimeout is the client-side deadline on medicine
	// registration, surfaced as ErrTimeout when it expires.
	createMedicineTimeout = 30 * time.Second
)

// ErrTimeout marks a request aborted by the client-side deadline, as opposed
// to a server rejection.
var ErrTimeout = errors.New("request timed out")

// StatusError reports a non-success HTTP response along with the body text
// the server returned.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("api returned status %d", e.Code)
	}
	return fmt.Sprintf("api returned status %d: %s", e.Code, body)
}

// NewClient builds a Client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent:     defaultUserAgent,
		createTimeout: createMedicineTimeout,
	}, nil
}

// Medicines retrieves all registered medicines.
func (c *Client) Medicines(ctx context.Context) ([]Medicine, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Medicine
	if err := c.do(ctx, http.MethodGet, "/api/v1/medicines/", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Medicine retrieves a single medicine record.
func (c *Client) Medicine(ctx context.Context, id int64) (*Medicine, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Medicine
	path := "/api/v1/medicines/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateMedicine registers a medicine. The request runs under its own
// 30-second deadline; when that deadline expires the returned error wraps
// ErrTimeout so callers can distinguish it from a server rejection.
func (c *Client) CreateMedicine(ctx context.Context, req NewMedicine) (*Medicine, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, c.createTimeout)
	defer cancel()

	var payload Medicine
	if err := c.do(ctx, http.MethodPost, "/api/v1/medicines/", req, &payload); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("create medicine: %w", ErrTimeout)
		}
		return nil, err
	}
	return &payload, nil
}

// TodaySchedules retrieves the doses planned for today.
func (c *Client) TodaySchedules(ctx context.Context) ([]Schedule, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Schedule
	if err := c.do(ctx, http.MethodGet, "/api/v1/schedules/today", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ScheduleDetail retrieves the full record behind a dose.
func (c *Client) ScheduleDetail(ctx context.Context, id int64) (*ScheduleDetail, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload ScheduleDetail
	path := "/api/v1/schedules/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateSchedule registers one dose time for a medicine.
func (c *Client) CreateSchedule(ctx context.Context, req NewSchedule) (*ScheduleDetail, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload ScheduleDetail
	if err := c.do(ctx, http.MethodPost, "/api/v1/schedules/", req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SubmitConditions replaces the user's medical condition list.
// The body is the bare string array, matching the backend contract.
func (c *Client) SubmitConditions(ctx context.Context, conditions []string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if conditions == nil {
		conditions = []string{}
	}
	return c.do(ctx, http.MethodPut, "/api/v1/users/medical-conditions", conditions, nil)
}

// AnalyzeScan submits a captured image for drug-risk analysis.
func (c *Client) AnalyzeScan(ctx context.Context, req ScanRequest) (*Report, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Report
	if err := c.do(ctx, http.MethodPost, "/api/v1/analysis/scan", req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ChatSessions lists the user's assistant conversations.
func (c *Client) ChatSessions(ctx context.Context) ([]ChatSession, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []ChatSession
	if err := c.do(ctx, http.MethodGet, "/api/v1/chat/sessions", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ChatHistory retrieves the messages of one session.
func (c *Client) ChatHistory(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("session id required")
	}
	values := url.Values{}
	values.Set("session_id", sessionID)
	rel := &url.URL{Path: "/api/v1/chat/history", RawQuery: values.Encode()}
	var payload []ChatMessage
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// SendChat sends a message to the assistant. An empty sessionID starts a new
// session; the reply carries the session id the server assigned.
func (c *Client) SendChat(ctx context.Context, message, sessionID string) (*ChatReply, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body := struct {
		Message   string  `json:"message"`
		SessionID *string `json:"session_id"`
	}{Message: message}
	if strings.TrimSpace(sessionID) != "" {
		body.SessionID = &sessionID
	}
	var payload ChatReply
	if err := c.do(ctx, http.MethodPost, "/api/v1/chat/", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: string(text)}
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base_url %q: %w", baseURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
