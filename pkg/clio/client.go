// Package clio provides a resilient client for the Clio Manage v4 API:
// OAuth token lifecycle, rate-limit backoff, and the resource operations
// the intake pipeline drives.
package clio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/richards-law/intake-cli/internal/resilience"
)

const (
	defaultBaseURL = "https://app.clio.com"

	apiVersionHeader = "X-API-VERSION"
	apiVersion       = "4.0.11"

	// Error bodies are truncated to this length in APIError detail.
	maxErrorBody = 500
)

// Client defines the Clio Manage operations used by the intake pipeline.
type Client interface {
	// Identity and auth.
	WhoAmI(ctx context.Context) (*User, error)
	AuthURL() string
	ExchangeCode(ctx context.Context, code string) error
	TokenStatus() TokenStatus

	// Custom field definitions.
	CustomFields(ctx context.Context) ([]CustomField, error)
	FieldIDMap(ctx context.Context) (map[string]int64, error)

	// Contacts.
	FindContactByName(ctx context.Context, name string) (*Contact, error)
	CreateContact(ctx context.Context, req ContactRequest) (*Contact, error)

	// Matters and workflow.
	PracticeAreas(ctx context.Context) ([]PracticeArea, error)
	CreateMatter(ctx context.Context, req MatterRequest) (*Matter, error)
	GetMatter(ctx context.Context, id int64) (*Matter, error)
	UpdateMatterCustomFields(ctx context.Context, id int64, etag string, values []CustomFieldValue) error
	UpdateMatterStage(ctx context.Context, id int64, etag string, stageID int64) error
	StageByName(ctx context.Context, name string, practiceAreaID int64) (*MatterStage, error)

	// Calendars.
	Calendars(ctx context.Context) ([]Calendar, error)
	CreateCalendarEntry(ctx context.Context, req CalendarEntryRequest) error

	// Documents.
	DocumentTemplates(ctx context.Context) ([]DocumentTemplate, error)
	FindTemplateByName(ctx context.Context, name string) (*DocumentTemplate, error)
	GenerateDocument(ctx context.Context, matterID, templateID int64, name string) (*Document, error)
	GetDocument(ctx context.Context, id int64) (*Document, error)
	DownloadDocument(ctx context.Context, id int64) ([]byte, error)
}

// APIError is returned when Clio responds with an unrecoverable status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("clio: HTTP %d: %s", e.StatusCode, e.Body)
}

// OAuthApp identifies the registered OAuth application.
type OAuthApp struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTokens seeds the in-memory credential pair. Takes precedence over the
// token store at construction.
func WithTokens(access, refresh string) Option {
	return func(c *httpClient) {
		c.cred = Credentials{AccessToken: access, RefreshToken: refresh}
	}
}

// WithTokenStore sets the persistent credential cache.
func WithTokenStore(store TokenStore) Option {
	return func(c *httpClient) {
		c.store = store
	}
}

// WithRateLimit sets a per-second rate limit on outbound API calls.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

// WithRetryConfig overrides the rate-limit retry schedule. Used by tests to
// shorten backoff sleeps.
func WithRetryConfig(cfg resilience.RetryConfig) Option {
	return func(c *httpClient) {
		c.retry = cfg
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	app     OAuthApp
	baseURL string
	http    *http.Client
	store   TokenStore
	limiter *rate.Limiter
	retry   resilience.RetryConfig

	// cred is shared mutable state across concurrent pipeline runs; credMu
	// serializes reads, refreshes and the post-refresh store write.
	credMu sync.Mutex
	cred   Credentials

	fieldFlight singleflight.Group
	fieldMu     sync.RWMutex
	fieldMap    map[string]int64
}

// NewClient creates a Clio client. Credentials supplied via WithTokens win;
// otherwise the token store is consulted so a restarted process recovers
// without re-authorizing.
func NewClient(app OAuthApp, opts ...Option) Client {
	c := &httpClient{
		app:     app,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		retry: resilience.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.cred.Empty() && c.store != nil {
		cred, err := c.store.Load()
		if err != nil {
			zap.L().Warn("clio: token cache unreadable", zap.Error(err))
		} else {
			c.cred = cred
		}
	}

	return c
}

// accessToken returns the current bearer token.
func (c *httpClient) accessToken() string {
	c.credMu.Lock()
	defer c.credMu.Unlock()
	return c.cred.AccessToken
}

// setCredentials swaps the credential pair and rewrites the persistent
// cache. A cache write failure is logged, not fatal.
func (c *httpClient) setCredentialsLocked(cred Credentials) {
	c.cred = cred
	if c.store == nil {
		return
	}
	if err := c.store.Save(cred); err != nil {
		zap.L().Warn("clio: persist tokens", zap.Error(err))
	}
}

func (c *httpClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// request issues one logical API call: bearer auth plus API-version header,
// a single token refresh on the first 401, and backoff retries on 429.
func (c *httpClient) request(ctx context.Context, method, path string, body any, query url.Values) (json.RawMessage, error) {
	var out json.RawMessage
	refreshed := false

	cfg := c.retry
	if cfg.OnRetry == nil {
		cfg.OnRetry = resilience.RetryLogger("clio", method+" "+path)
	}

	err := resilience.Do(ctx, cfg, func(ctx context.Context) error {
		token := c.accessToken()
		status, data, err := c.do(ctx, method, path, body, query, token)
		if err != nil {
			return err
		}

		if status == http.StatusUnauthorized && !refreshed {
			refreshed = true
			if err := c.refresh(ctx, token); err != nil {
				return err
			}
			status, data, err = c.do(ctx, method, path, body, query, c.accessToken())
			if err != nil {
				return err
			}
		}

		switch {
		case status == http.StatusTooManyRequests:
			return resilience.NewTransientError(&APIError{StatusCode: status, Body: truncate(data)}, status)
		case status < 200 || status >= 300:
			return &APIError{StatusCode: status, Body: truncate(data)}
		}

		// 204 and empty bodies normalize to an empty result.
		if len(data) == 0 {
			out = nil
			return nil
		}
		out = json.RawMessage(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// do performs a single HTTP exchange and reads the full body.
func (c *httpClient) do(ctx context.Context, method, path string, body any, query url.Values, token string) (int, []byte, error) {
	if err := c.wait(ctx); err != nil {
		return 0, nil, eris.Wrap(err, "clio: rate limit")
	}

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, nil, eris.Wrap(err, "clio: marshal request")
		}
		rd = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return 0, nil, eris.Wrap(err, "clio: create request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(apiVersionHeader, apiVersion)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, eris.Wrap(err, "clio: execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, eris.Wrap(err, "clio: read response body")
	}
	return resp.StatusCode, data, nil
}

// download fetches raw bytes (document content). Non-2xx becomes APIError.
func (c *httpClient) download(ctx context.Context, path string) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, eris.Wrap(err, "clio: rate limit")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, eris.Wrap(err, "clio: create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken())
	req.Header.Set(apiVersionHeader, apiVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "clio: execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "clio: read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: truncate(data)}
	}
	return data, nil
}

// decodeData unwraps Clio's {"data": ...} envelope into out. A raw payload
// without the envelope decodes directly.
func decodeData(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return eris.Wrap(err, "clio: decode response")
	}
	return nil
}

func truncate(data []byte) string {
	if len(data) > maxErrorBody {
		return string(data[:maxErrorBody])
	}
	return string(data)
}
