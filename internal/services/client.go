// Package services talks to the hospital REST backend.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/decade006/java-database-capstone/internal/logging"
	"github.com/decade006/java-database-capstone/internal/metrics"
	"github.com/decade006/java-database-capstone/internal/models"
)

// Messages used when the backend does not provide one.
const (
	MessageSaved              = "Saved"
	MessageDeleted            = "Deleted"
	MessageFailedToSave       = "Failed to save"
	MessageFailedToDelete     = "Failed to delete"
	MessageUnexpectedResponse = "Unexpected response"
	MessageNetworkError       = "Network error"
)

// nullSegment stands in for an absent path parameter.
const nullSegment = "null"

// Client is an HTTP client for the hospital backend. None of its operations
// return errors: failures collapse into sentinel results and are logged.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    *time.Duration // applied by NewClient once every option ran
	logger     *logging.Logger
	metrics    *metrics.PortalMetrics
	now        func() time.Time
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout bounds every backend request. Zero means no timeout. It holds
// whatever order it is given in relative to WithHTTPClient, and never
// changes a client passed to WithHTTPClient.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = &d
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics records every backend call.
func WithMetrics(m *metrics.PortalMetrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a backend client. baseURL is the API root, e.g.
// "http://localhost:8080/api".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logging.Default(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.httpClient
		hc.Timeout = *c.timeout
		c.httpClient = &hc
	}

	return c
}

// callResult is the raw outcome of one request.
type callResult struct {
	status  int
	body    []byte
	network bool
}

func (r callResult) ok() bool {
	return !r.network && r.status >= 200 && r.status < 300
}

// decode unmarshals the body into out and reports whether it was valid JSON.
func (r callResult) decode(out any) bool {
	if len(bytes.TrimSpace(r.body)) == 0 {
		return false
	}
	return json.Unmarshal(r.body, out) == nil
}

func (c *Client) do(ctx context.Context, op, method, path string, payload any) callResult {
	log := logging.FromContext(ctx, c.logger).With("operation", op, "method", method)
	start := c.now()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Error("backend: encode request body", "error", err)
			c.metrics.ObserveBackendCall(op, metrics.OutcomeMalformed, 0)
			return callResult{network: true}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		log.Error("backend: create request", "error", err)
		c.metrics.ObserveBackendCall(op, metrics.OutcomeNetwork, 0)
		return callResult{network: true}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("backend: request failed", "error", err)
		c.metrics.ObserveBackendCall(op, metrics.OutcomeNetwork, c.now().Sub(start).Seconds())
		return callResult{network: true}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("backend: read response", "status", resp.StatusCode, "error", err)
		c.metrics.ObserveBackendCall(op, metrics.OutcomeNetwork, c.now().Sub(start).Seconds())
		return callResult{network: true}
	}

	result := callResult{status: resp.StatusCode, body: data}
	outcome := metrics.OutcomeOK
	if !result.ok() {
		outcome = metrics.OutcomeStatus
		log.Error("backend: unexpected status", "status", resp.StatusCode)
	}
	c.metrics.ObserveBackendCall(op, outcome, c.now().Sub(start).Seconds())
	return result
}

// writeResult maps a write request outcome to a Result, preferring the
// server's message.
func (c *Client) writeResult(ctx context.Context, op string, r callResult, okMessage, failMessage string) models.Result {
	if r.network {
		return models.Result{Success: false, Message: MessageNetworkError}
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	decoded := r.decode(&body)
	message := body.Message
	if message == "" {
		message = body.Error
	}
	if !r.ok() {
		if message == "" {
			message = failMessage
		}
		return models.Result{Success: false, Message: message}
	}
	if !decoded {
		logging.FromContext(ctx, c.logger).Error("backend: malformed response body", "operation", op, "status", r.status)
		return models.Result{Success: false, Message: MessageUnexpectedResponse}
	}
	if message == "" {
		message = okMessage
	}
	return models.Result{Success: true, Message: message}
}

func segment(value *string) string {
	if value == nil {
		return nullSegment
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nullSegment
	}
	return url.PathEscape(v)
}

func tokenSegment(token string) string {
	return url.PathEscape(token)
}

func idSegment(id int64) string {
	return strconv.FormatInt(id, 10)
}
