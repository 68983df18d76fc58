package api

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/log"
	"github.com/thesavant42/wikitop/internal/models"
)

const (
	DefaultBaseURL   = "https://wikimedia.org/api/rest_v1"
	DefaultUserAgent = "wikitop/1.0 (https://github.com/thesavant42/wikitop)"
	defaultTimeout   = 30 * time.Second
	maxErrorBody     = 4096
)

// Signals the pageviews API uses for expected conditions.
// See https://wikitech.wikimedia.org/wiki/Analytics/AQS/Pageviews (gotchas section).
var (
	ErrDataNotLoaded = errors.New("no data, or data not loaded yet")
	ErrThrottled     = errors.New("too many requests")
	ErrEmptyPayload  = errors.New("response contains no items")
)

// APIError is a non-200 answer from the pageviews API
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
	URL        string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("pageviews API returned status %d", e.StatusCode)
	if e.Title != "" {
		msg += ": " + e.Title
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap maps the status codes the API documents to sentinel errors
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrDataNotLoaded
	case http.StatusTooManyRequests:
		return ErrThrottled
	default:
		return nil
	}
}

// problemBody is the application/problem+json document the API sends on errors
type problemBody struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	URI    string `json:"uri"`
}

// PageviewsClient handles Wikimedia pageviews API requests
type PageviewsClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *log.Logger
}

// ClientOption customizes a PageviewsClient
type ClientOption func(*PageviewsClient)

// WithBaseURL points the client at another REST root (tests, mirrors)
func WithBaseURL(base string) ClientOption {
	return func(c *PageviewsClient) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithUserAgent overrides the User-Agent sent with every request
func WithUserAgent(ua string) ClientOption {
	return func(c *PageviewsClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *PageviewsClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *PageviewsClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewPageviewsClient creates a new pageviews API client. logger may be nil.
func NewPageviewsClient(logger *log.Logger, opts ...ClientOption) *PageviewsClient {
	c := &PageviewsClient{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildTopURL constructs the per-day "top articles" endpoint URL
func BuildTopURL(base, project, access string, date civil.Date) string {
	year, month, day := models.DatePathParts(date)
	return fmt.Sprintf("%s/metrics/pageviews/top/%s/%s/%s/%s/%s",
		strings.TrimRight(base, "/"),
		url.PathEscape(project),
		url.PathEscape(access),
		year, month, day,
	)
}

// Top fetches the most viewed articles of a project for one day
func (c *PageviewsClient) Top(ctx context.Context, project, access string, date civil.Date) (*models.TopResponse, error) {
	rawURL := BuildTopURL(c.baseURL, project, access, date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	if c.logger != nil {
		c.logger.Debug("GET", "endpoint", rawURL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Request failed", "url", rawURL, "error", err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := newAPIError(resp.StatusCode, rawURL, errorBody(resp))
		if c.logger != nil {
			c.logger.Debug("API error", "status", resp.StatusCode, "title", apiErr.Title, "url", rawURL)
		}
		return nil, apiErr
	}

	reader, err := decodedBody(resp)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var payload models.TopResponse
	if err := json.NewDecoder(reader).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if c.logger != nil {
		articles := 0
		if len(payload.Items) > 0 {
			articles = len(payload.Items[0].Articles)
		}
		c.logger.Debug("Fetched top articles", "project", project, "date", models.FormatDate(date), "articles", articles)
	}

	return &payload, nil
}

// decodedBody returns the response body, gunzipped when the server compressed it.
// Setting Accept-Encoding ourselves disables the transport's transparent decompression.
func decodedBody(resp *http.Response) (io.ReadCloser, error) {
	if !isGzip(resp) {
		return io.NopCloser(resp.Body), nil
	}
	gzReader, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	return gzReader, nil
}

// errorBody is a best-effort reader for error responses: a body that claims
// gzip but is not (or is empty) is read raw
func errorBody(resp *http.Response) io.Reader {
	if !isGzip(resp) {
		return resp.Body
	}
	gzReader, err := gzip.NewReader(resp.Body)
	if err != nil {
		return resp.Body
	}
	return gzReader
}

func isGzip(resp *http.Response) bool {
	return strings.Contains(strings.ToLower(resp.Header.Get("Content-Encoding")), "gzip")
}

// newAPIError reads the problem document (if any) from an error response
func newAPIError(status int, rawURL string, body io.Reader) *APIError {
	apiErr := &APIError{StatusCode: status, URL: rawURL}

	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var problem problemBody
	if err := json.Unmarshal(data, &problem); err == nil && (problem.Title != "" || problem.Detail != "") {
		apiErr.Title = problem.Title
		apiErr.Detail = problem.Detail
		return apiErr
	}

	apiErr.Detail = strings.TrimSpace(string(data))
	return apiErr
}

// FirstItemArticles returns the article list of the first item in a payload
func FirstItemArticles(resp *models.TopResponse) ([]models.TopArticle, error) {
	if resp == nil || len(resp.Items) == 0 {
		return nil, ErrEmptyPayload
	}
	return resp.Items[0].Articles, nil
}
