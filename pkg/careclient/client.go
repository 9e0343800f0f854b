package careclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// TokenSource yields the bearer token attached to outgoing requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource for a fixed token string.
type StaticToken string

func (s StaticToken) Token() (string, error) { return string(s), nil }

// Client is a typed request layer over the care backend. It performs no
// retries, caching, or request deduplication.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.SugaredLogger
}

func NewClient(baseURL string, tokens TokenSource, logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
		logger: logger,
	}
}

func (c *Client) CheckUser(ctx context.Context, phone string) (bool, error) {

	var resp CheckUserResponse
	err := c.do(ctx, http.MethodPost, "/auth/check-user", nil, map[string]string{"phone": phone}, &resp)
	if err != nil {
		return false, fmt.Errorf("check user failed: %w", err)
	}

	return resp.Exists, nil
}

func (c *Client) Login(ctx context.Context, phone, otp string) (*TokenResponse, error) {

	var resp TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, map[string]string{"phone": phone, "otp": otp}, &resp)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*TokenResponse, error) {

	var resp TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return &resp, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {

	var resp User
	err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch profile failed: %w", err)
	}

	return &resp, nil
}

func (c *Client) Medications(ctx context.Context) ([]Medication, error) {

	var resp []Medication
	err := c.do(ctx, http.MethodGet, "/medications", nil, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch medications failed: %w", err)
	}

	return resp, nil
}

func (c *Client) MedicationLogs(ctx context.Context, startDate, endDate string) ([]MedicationLog, error) {

	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	var resp []MedicationLog
	err := c.do(ctx, http.MethodGet, "/medications/logs", query, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch medication logs failed: %w", err)
	}

	return resp, nil
}

func (c *Client) RecordCompliance(ctx context.Context, medicationID, date, status string, takenAt *time.Time) error {

	body := map[string]interface{}{
		"date":   date,
		"status": status,
	}
	if takenAt != nil {
		body["taken_at"] = takenAt
	}

	path := fmt.Sprintf("/medications/%s/log", url.PathEscape(medicationID))
	if err := c.do(ctx, http.MethodPost, path, nil, body, nil); err != nil {
		return fmt.Errorf("record compliance failed: %w", err)
	}

	return nil
}

func (c *Client) Nominees(ctx context.Context) ([]Nominee, error) {

	var resp []Nominee
	err := c.do(ctx, http.MethodGet, "/nominees", nil, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch nominees failed: %w", err)
	}

	return resp, nil
}

func (c *Client) CreateNominee(ctx context.Context, name, relationship, phone string) (*Nominee, error) {

	body := map[string]string{
		"name":         name,
		"relationship": relationship,
		"phone":        phone,
	}

	var resp Nominee
	err := c.do(ctx, http.MethodPost, "/nominees", nil, body, &resp)
	if err != nil {
		return nil, fmt.Errorf("create nominee failed: %w", err)
	}

	return &resp, nil
}

// ActiveEmergency fetches the user's active alert. Absence (HTTP 404) is
// normal control flow and is reported as (nil, nil), not an error.
func (c *Client) ActiveEmergency(ctx context.Context) (*EmergencyAlert, error) {

	req, err := c.newRequest(ctx, http.MethodGet, "/emergency/active", nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("active emergency request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var alert EmergencyAlert
	if err := json.NewDecoder(resp.Body).Decode(&alert); err != nil {
		return nil, fmt.Errorf("failed to parse active emergency response: %w", err)
	}

	return &alert, nil
}

func (c *Client) CreateEmergency(ctx context.Context, stage Stage) (*EmergencyAlert, error) {

	var resp EmergencyAlert
	err := c.do(ctx, http.MethodPost, "/emergency", nil, map[string]Stage{"stage": stage}, &resp)
	if err != nil {
		return nil, fmt.Errorf("create emergency failed: %w", err)
	}

	return &resp, nil
}

func (c *Client) ResolveEmergency(ctx context.Context, alertID string) error {

	path := fmt.Sprintf("/emergency/%s/resolve", url.PathEscape(alertID))
	if err := c.do(ctx, http.MethodPost, path, nil, nil, nil); err != nil {
		return fmt.Errorf("resolve emergency failed: %w", err)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read access token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}

	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

func (c *Client) statusError(resp *http.Response) error {

	var apiErr APIError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && (apiErr.Kind != "" || apiErr.Detail != "") {
		if c.logger != nil {
			c.logger.Debugw("API request rejected",
				"status", resp.StatusCode,
				"error", apiErr.Kind,
				"detail", apiErr.Detail,
			)
		}
		return fmt.Errorf("HTTP %d: %w", resp.StatusCode, &apiErr)
	}

	return fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
}
