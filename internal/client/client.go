// Package client talks to the planner API over HTTP. It is the Trip Store the
// command-line planner drives its drag sessions against.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/globetrotter/planner/internal/api"
	"github.com/globetrotter/planner/internal/domain"
)

// APIError is a non-2xx response decoded from the API's error envelope.
// It unwraps to the matching domain sentinel so callers can use errors.Is.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnprocessableEntity:
		return domain.ErrValidation
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	}
	return nil
}

// Client is a minimal JSON client for the planner API.
type Client struct {
	base  *url.URL
	token string
	http  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client.New: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("client.New: %q is not an absolute URL", baseURL)
	}
	c := &Client{base: u, http: &http.Client{Timeout: 15 * time.Second}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetTrip fetches the trip aggregate: the trip, its stops and their activities.
func (c *Client) GetTrip(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	var body api.Trip
	if err := c.do(ctx, http.MethodGet, "/trips/"+id.String(), nil, nil, &body); err != nil {
		return domain.Trip{}, fmt.Errorf("client.Client.GetTrip: %w", err)
	}
	return body.Domain(), nil
}

// UpdateActivity sends a as a full replacement of activity id.
func (c *Client) UpdateActivity(ctx context.Context, id uuid.UUID, a domain.Activity) (domain.Activity, error) {
	var body api.Activity
	req := api.ActivityRequestFrom(a)
	if err := c.do(ctx, http.MethodPut, "/activities/"+id.String(), nil, req, &body); err != nil {
		return domain.Activity{}, fmt.Errorf("client.Client.UpdateActivity: %w", err)
	}
	return body.Domain(), nil
}

// Budget fetches the budget summary of a trip.
func (c *Client) Budget(ctx context.Context, id uuid.UUID) (api.Budget, error) {
	var body api.Budget
	if err := c.do(ctx, http.MethodGet, "/trips/"+id.String()+"/budget", nil, nil, &body); err != nil {
		return api.Budget{}, fmt.Errorf("client.Client.Budget: %w", err)
	}
	return body, nil
}

// ListTrips fetches one page of trips.
func (c *Client) ListTrips(ctx context.Context, page, limit int) (api.TripList, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	var body api.TripList
	if err := c.do(ctx, http.MethodGet, "/trips", q, nil, &body); err != nil {
		return api.TripList{}, fmt.Errorf("client.Client.ListTrips: %w", err)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.base.JoinPath(path)
	u.RawQuery = query.Encode()

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var env api.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &env); err == nil && env.Error.Code != "" {
		apiErr.Code, apiErr.Message = env.Error.Code, env.Error.Message
		return apiErr
	}
	apiErr.Code = strings.ToLower(strings.ReplaceAll(http.StatusText(resp.StatusCode), " ", "_"))
	apiErr.Message = strings.TrimSpace(string(raw))
	return apiErr
}

// Message returns the user-facing message of an API error, or err's text.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
