package regsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/openregs/docketsync/internal/clock"
)

const (
	defaultCooldown   = 120 * time.Second
	downloadChunkSize = 64 * 1024
)

// Config holds the client knobs.
type Config struct {
	// BaseURL is the fixed root of the upstream API, without trailing slash.
	BaseURL string
	// APIKey is appended to the query of every outgoing call.
	APIKey string
	// Delay is the minimum spacing enforced between outbound calls.
	Delay time.Duration
	// Cooldown is the sleep before the single retry of a rate-limited or
	// server-errored call. Defaults to 120s.
	Cooldown time.Duration
}

// Client wraps the upstream docket API with request pacing and a two-tier
// bounded retry protocol. It is not safe for concurrent use; the sync run is
// fully sequential.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	pauser     clock.Pauser
	cooldown   time.Duration
	logger     *zap.Logger
	calls      int
}

// New constructs a Client. httpClient and pauser may be nil, in which case
// the defaults (http.DefaultClient, a real timer) are used.
func New(cfg Config, httpClient *http.Client, pauser clock.Pauser, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if pauser == nil {
		pauser = clock.TimerPauser{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.Delay), 1)
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		limiter:    limiter,
		pauser:     pauser,
		cooldown:   cooldown,
		logger:     logger,
	}, nil
}

// Calls reports the outbound HTTP call count, retries included.
func (c *Client) Calls() int {
	return c.calls
}

// Documents fetches one page of public-submission summaries for the query.
func (c *Client) Documents(ctx context.Context, q DocumentsQuery) (DocumentsPage, error) {
	params := url.Values{}
	params.Set("dct", "PS")
	if q.DocketID != "" {
		params.Set("dktid", q.DocketID)
	}
	if q.PostedDate != "" {
		params.Set("pd", q.PostedDate)
	}
	params.Set("rpp", strconv.Itoa(q.PerPage))
	params.Set("po", strconv.Itoa(q.PageOffset))

	body, err := c.request(ctx, http.MethodGet, "/documents.json", params)
	if err != nil {
		return DocumentsPage{}, err
	}
	return parseDocumentsPage(body)
}

// Document fetches the full detail for one document id.
func (c *Client) Document(ctx context.Context, documentID string) (DocumentDetail, error) {
	params := url.Values{}
	params.Set("documentId", documentID)

	body, err := c.request(ctx, http.MethodGet, "/document.json", params)
	if err != nil {
		return DocumentDetail{}, err
	}
	return parseDocumentDetail(body)
}

// Docket fetches docket metadata as a raw map; the shape is only used for
// informational logging.
func (c *Client) Docket(ctx context.Context, docketID string) (map[string]any, error) {
	params := url.Values{}
	params.Set("docketId", docketID)

	body, err := c.request(ctx, http.MethodGet, "/docket.json", params)
	if err != nil {
		return nil, err
	}
	var docket map[string]any
	if err := json.Unmarshal(body, &docket); err != nil {
		return nil, fmt.Errorf("decode docket: %w", err)
	}
	return docket, nil
}

// Download streams the content behind rawURL to dest in fixed-size chunks,
// applying the same pacing and retry protocol as every other call. It returns
// the request URL used.
func (c *Client) Download(ctx context.Context, rawURL string, dest string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse download url %s: %w", rawURL, err)
	}
	q := u.Query()
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()
	reqURL := u.String()

	resp, err := c.execute(ctx, http.MethodGet, reqURL)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("closing download body failed", zap.Error(cerr))
		}
	}()

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create download file %s: %w", dest, err)
	}
	buf := make([]byte, downloadChunkSize)
	if _, err := io.CopyBuffer(f, resp.Body, buf); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("stream download to %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close download file %s: %w", dest, err)
	}
	totalDownloads.Inc()
	return reqURL, nil
}

// request performs one paced call and returns the response body.
func (c *Client) request(ctx context.Context, method, path string, params url.Values) ([]byte, error) {
	resp, err := c.execute(ctx, method, c.buildURL(path, params))
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("closing response body failed", zap.Error(cerr))
		}
	}()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

// execute issues the call and applies the retry protocol: 429 and 5xx get a
// fixed cooldown and exactly one retry; if the retry also fails the error
// references the original response. Other 4xx fail immediately.
func (c *Client) execute(ctx context.Context, method, reqURL string) (*http.Response, error) {
	resp, err := c.attempt(ctx, method, reqURL)
	if err != nil {
		return nil, err
	}
	status := resp.StatusCode
	if status < 400 {
		return resp, nil
	}

	if status != http.StatusTooManyRequests && status < 500 {
		totalRequestErrors.Inc()
		return nil, c.terminalError(method, reqURL, resp)
	}

	if status == http.StatusTooManyRequests {
		totalRateLimitHits.Inc()
		c.logger.Warn("rate limited, cooling down",
			zap.String("url", reqURL),
			zap.Duration("cooldown", c.cooldown))
	} else {
		c.logger.Warn("server error, cooling down",
			zap.Int("status", status),
			zap.String("url", reqURL),
			zap.Duration("cooldown", c.cooldown))
	}
	original := c.terminalError(method, reqURL, resp)

	c.pauser.Pause(ctx, c.cooldown)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cooldown interrupted: %w", err)
	}

	totalRetries.Inc()
	retry, err := c.attempt(ctx, method, reqURL)
	if err != nil {
		return nil, err
	}
	if retry.StatusCode >= 400 {
		c.drain(retry)
		totalRequestErrors.Inc()
		return nil, original
	}
	return retry, nil
}

// attempt waits for the pacing limiter, then issues exactly one HTTP call.
func (c *Client) attempt(ctx context.Context, method, reqURL string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("request pacing: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, reqURL, err)
	}
	c.calls++
	totalRequests.Inc()
	c.logger.Debug("api call", zap.String("method", method), zap.String("url", reqURL))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		totalRequestErrors.Inc()
		return nil, fmt.Errorf("%s %s: %w", method, reqURL, err)
	}
	return resp, nil
}

// terminalError consumes resp and wraps it as an APIError.
func (c *Client) terminalError(method, reqURL string, resp *http.Response) *APIError {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("reading error response body failed", zap.Error(err))
	}
	c.drain(resp)
	return &APIError{
		Method:     method,
		URL:        reqURL,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}

func (c *Client) drain(resp *http.Response) {
	if cerr := resp.Body.Close(); cerr != nil {
		c.logger.Warn("closing response body failed", zap.Error(cerr))
	}
}

// buildURL joins the base URL, path, caller params, and the api key.
func (c *Client) buildURL(path string, params url.Values) string {
	q := url.Values{}
	for key, vals := range params {
		for _, v := range vals {
			q.Add(key, v)
		}
	}
	q.Set("api_key", c.apiKey)
	return c.baseURL + path + "?" + q.Encode()
}
