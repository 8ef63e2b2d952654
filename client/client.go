// Package client is a small HTTP client for the review API. It implements
// srs.Rater so a terminal session can persist ratings through the server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andrewpaige1/revisa-api/models"
	"github.com/andrewpaige1/revisa-api/srs"
)

// ErrUnauthorized is returned when the server rejects the token.
var ErrUnauthorized = errors.New("client: token rejected")

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the API at baseURL, sending token as bearer.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ srs.Rater = (*Client)(nil)

// Due lists the cards due now, in server order.
func (c *Client) Due(ctx context.Context) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	if err := c.do(ctx, http.MethodGet, "/api/flashcards/due", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// Rate persists a rating and returns the schedule the server stored.
func (c *Client) Rate(ctx context.Context, cardID string, q srs.Quality) (srs.Schedule, error) {
	body := map[string]any{"flashcardId": cardID, "quality": int(q)}
	var row models.ReviewSchedule
	if err := c.do(ctx, http.MethodPost, "/api/flashcards/review", body, &row); err != nil {
		return srs.Schedule{}, err
	}
	return *row.Schedule(), nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/api/me", nil, &user)
	return user, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
