// Package supabase is a prefs.Backend over the hosted PostgREST API.
package supabase

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

	"github.com/rs/zerolog"

	"github.com/folio-dev/folio/internal/models"
	"github.com/folio-dev/folio/internal/prefs"
)

const (
	defaultTimeout = 5 * time.Second

	preferencesTable = "user_preferences"
	eventsTable      = "analytics_events"

	// PostgREST reports "no rows" for single-object requests with this code.
	codeNoRows = "PGRST116"

	singleObjectMediaType = "application/vnd.pgrst.object+json"
)

// Configuration errors.
var (
	ErrMissingURL     = errors.New("supabase URL is required")
	ErrMissingAnonKey = errors.New("supabase anon key is required")
)

// Config holds the project URL and the public anon key.
type Config struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

// Client talks to the user_preferences and analytics_events tables.
type Client struct {
	BaseURL string
	AnonKey string
	Client  *http.Client
	Logger  zerolog.Logger
}

// New validates cfg and constructs a client with defaults applied.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, ErrMissingURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid supabase URL %q: %w", cfg.URL, err)
	}
	anonKey := strings.TrimSpace(cfg.AnonKey)
	if anonKey == "" {
		return nil, ErrMissingAnonKey
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		BaseURL: baseURL,
		AnonKey: anonKey,
		Client:  &http.Client{Timeout: timeout},
		Logger:  zerolog.Nop(),
	}, nil
}

// SelectPreferences fetches one row by primary key.
func (c *Client) SelectPreferences(ctx context.Context, id string) (*models.UserPreferences, error) {
	query := url.Values{}
	query.Set("id", "eq."+id)
	query.Set("select", "*")

	req, err := c.newRequest(ctx, http.MethodGet, preferencesTable, query, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", singleObjectMediaType)

	body, err := c.do(req, "select")
	if err != nil {
		return nil, err
	}

	var row models.UserPreferences
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return &row, nil
}

// UpsertPreferences merges the supplied columns into the row, creating it if needed.
func (c *Client) UpsertPreferences(ctx context.Context, row models.PreferencesUpsert) error {
	query := url.Values{}
	query.Set("on_conflict", "id")

	req, err := c.newRequest(ctx, http.MethodPost, preferencesTable, query, row)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	_, err = c.do(req, "upsert")
	return err
}

// InsertEvent appends one analytics row.
func (c *Client) InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	req, err := c.newRequest(ctx, http.MethodPost, eventsTable, nil, event)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=minimal")

	_, err = c.do(req, "insert")
	return err
}

func (c *Client) newRequest(ctx context.Context, method, table string, query url.Values, payload any) (*http.Request, error) {
	if c == nil {
		return nil, errors.New("supabase client is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	endpoint := c.BaseURL + "/rest/v1/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.AnonKey)
	req.Header.Set("Authorization", "Bearer "+c.AnonKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) httpClient() *http.Client {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: defaultTimeout}
	}
	if c.Client.Timeout <= 0 {
		c.Client.Timeout = defaultTimeout
	}
	return c.Client
}

func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	started := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, &prefs.RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.Logger.Debug().
		Str("op", op).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("supabase request")

	return readResponseBody(resp, op)
}

// postgrestError is the error body PostgREST returns.
type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func readResponseBody(resp *http.Response, op string) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &prefs.RemoteError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return body, nil
	}

	var pgErr postgrestError
	_ = json.Unmarshal(body, &pgErr)
	message := strings.TrimSpace(pgErr.Message)
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	if message == "" {
		message = resp.Status
	}

	if pgErr.Code == codeNoRows || (op == "select" && resp.StatusCode == http.StatusNotAcceptable) {
		return nil, prefs.NotFound(op, pgErr.Code, message, resp.StatusCode)
	}
	return nil, &prefs.RemoteError{Op: op, Status: resp.StatusCode, Code: pgErr.Code, Message: message}
}
