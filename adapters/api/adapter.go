// Package api implements the HTTP-backed DataSource adapter for
// "api"-provider views: it builds URLs and query strings from structured
// query parameters, executes requests through a pluggable client, and
// normalizes the heterogeneous response envelopes of REST, OData and
// Salesforce-style backends into a single QueryResult shape.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/objectui/objectui/config"
	"github.com/objectui/objectui/core"
)

// Doer is the pluggable fetch seam. *http.Client satisfies it; callers that
// need timeouts, retries or abortable requests supply their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures an Adapter beyond its endpoints.
type Options struct {
	// Client overrides the HTTP client. Defaults to an http.Client with the
	// configured timeout.
	Client Doer

	// DefaultHeaders apply to every request, at the lowest priority:
	// endpoint-config headers and per-request headers both override them.
	DefaultHeaders map[string]string

	// Timeout applies to the default client only.
	Timeout time.Duration

	// Debug enables request trace logging.
	Debug bool
}

// Adapter adapts the DataSource contract to raw HTTP against one or two
// configured endpoints: read for queries, write for mutations, each falling
// back to the other when absent.
type Adapter struct {
	read           *core.HTTPEndpoint
	write          *core.HTTPEndpoint
	client         Doer
	defaultHeaders map[string]string
	logger         *HTTPLogger
}

// New creates an adapter with defaults taken from the environment config.
func New(read, write *core.HTTPEndpoint) *Adapter {
	return NewWithOptions(read, write, Options{})
}

// NewWithOptions creates an adapter with explicit options.
func NewWithOptions(read, write *core.HTTPEndpoint, opts Options) *Adapter {
	cfg := config.LoadConfig()

	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = cfg.HTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Adapter{
		read:           read,
		write:          write,
		client:         client,
		defaultHeaders: opts.DefaultHeaders,
		logger:         NewHTTPLogger(opts.Debug || cfg.DebugEnabled),
	}
}

// SetDebugEnabled enables or disables request trace logging.
func (a *Adapter) SetDebugEnabled(enabled bool) {
	a.logger.SetEnabled(enabled)
}

// readEndpoint returns the endpoint for queries, falling back to write.
func (a *Adapter) readEndpoint() *core.HTTPEndpoint {
	if a.read != nil {
		return a.read
	}
	return a.write
}

// writeEndpoint returns the endpoint for mutations, falling back to read.
func (a *Adapter) writeEndpoint() *core.HTTPEndpoint {
	if a.write != nil {
		return a.write
	}
	return a.read
}

// Find issues a query request and normalizes whatever envelope comes back.
func (a *Adapter) Find(ctx context.Context, _ string, params *core.QueryParams) (*core.QueryResult, error) {
	ep := a.readEndpoint()
	if ep == nil {
		return nil, ErrNoHTTPConfig
	}

	u := NewRequestURL(ep.URL).
		WithParams(ep.Params).
		WithParams(queryValues(params)).
		String()

	body, err := a.request(ctx, methodOr(ep.Method, http.MethodGet), u, ep.Headers, nil)
	if err != nil {
		return nil, err
	}
	return normalizeQueryResult(body), nil
}

// FindOne fetches a record by appending the ID as a path suffix. Any
// request failure, including a 404 surfaced as an HTTPError, is reported as
// a plain miss.
func (a *Adapter) FindOne(ctx context.Context, _ string, id any, params *core.QueryParams) (core.Record, error) {
	ep := a.readEndpoint()
	if ep == nil {
		// Configuration errors are never swallowed, unlike request errors.
		return nil, ErrNoHTTPConfig
	}

	u := NewRequestURL(ep.URL).
		WithPath(fmt.Sprint(id)).
		WithParams(ep.Params).
		WithParams(queryValues(params)).
		String()

	body, err := a.request(ctx, methodOr(ep.Method, http.MethodGet), u, ep.Headers, nil)
	if err != nil {
		return nil, nil
	}
	return parseRecord(body), nil
}

// Create POSTs the record to the write endpoint.
func (a *Adapter) Create(ctx context.Context, _ string, data core.Record) (core.Record, error) {
	ep := a.writeEndpoint()
	if ep == nil {
		return nil, ErrNoHTTPConfig
	}

	u := NewRequestURL(ep.URL).WithParams(ep.Params).String()
	body, err := a.request(ctx, http.MethodPost, u, ep.Headers, data)
	if err != nil {
		return nil, err
	}
	return parseRecord(body), nil
}

// Update PATCHes the record addressed by ID.
func (a *Adapter) Update(ctx context.Context, _ string, id any, data core.Record) (core.Record, error) {
	ep := a.writeEndpoint()
	if ep == nil {
		return nil, ErrNoHTTPConfig
	}

	u := NewRequestURL(ep.URL).
		WithPath(fmt.Sprint(id)).
		WithParams(ep.Params).
		String()

	body, err := a.request(ctx, http.MethodPatch, u, ep.Headers, data)
	if err != nil {
		return nil, err
	}
	return parseRecord(body), nil
}

// Delete issues a DELETE for the record. "Already gone" is an expected
// outcome, so any error converts to a false return instead of propagating.
func (a *Adapter) Delete(ctx context.Context, _ string, id any) (bool, error) {
	ep := a.writeEndpoint()
	if ep == nil {
		return false, ErrNoHTTPConfig
	}

	u := NewRequestURL(ep.URL).
		WithPath(fmt.Sprint(id)).
		WithParams(ep.Params).
		String()

	if _, err := a.request(ctx, http.MethodDelete, u, ep.Headers, nil); err != nil {
		return false, nil
	}
	return true, nil
}

// Aggregate GETs the conventional <read-url>/aggregate endpoint.
func (a *Adapter) Aggregate(ctx context.Context, _ string, params core.AggregateParams) ([]core.AggregateRow, error) {
	ep := a.readEndpoint()
	if ep == nil {
		return nil, ErrNoHTTPConfig
	}

	b := NewRequestURL(ep.URL).
		WithPath("aggregate").
		WithParams(ep.Params).
		WithParam("field", params.Field).
		WithParam("function", string(params.Function)).
		WithParam("groupBy", params.GroupBy)
	if params.Filter != nil {
		if buf, err := json.Marshal(params.Filter); err == nil {
			b.WithParam("filter", string(buf))
		}
	}

	body, err := a.request(ctx, http.MethodGet, b.String(), ep.Headers, nil)
	if err != nil {
		return nil, err
	}
	return normalizeAggregate(body), nil
}

// GetObjectSchema returns an empty-fields stub: generic HTTP APIs expose no
// metadata endpoint, and schema-dependent callers should degrade rather
// than crash.
func (a *Adapter) GetObjectSchema(_ context.Context, name string) (*core.Schema, error) {
	return core.NewSchemaStub(name), nil
}

// GetView is metadata a generic HTTP API does not expose.
func (a *Adapter) GetView(_ context.Context, _, _ string) (core.Record, error) {
	return nil, nil
}

// GetApp is metadata a generic HTTP API does not expose.
func (a *Adapter) GetApp(_ context.Context, _ string) (core.Record, error) {
	return nil, nil
}

// request executes one HTTP round trip and returns the response body.
// Non-2xx statuses become an *HTTPError carrying the body text.
func (a *Adapter) request(ctx context.Context, method, rawURL string, epHeaders map[string]string, body any) ([]byte, error) {
	headers := mergeHeaders(a.defaultHeaders, epHeaders)

	reader, contentType, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	if contentType != "" && !hasContentType(headers) {
		headers["Content-Type"] = contentType
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.LogError(method, rawURL, time.Since(start), err)
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		a.logger.LogError(method, rawURL, time.Since(start), err)
		return nil, err
	}
	a.logger.LogRequest(method, rawURL, time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       string(respBody),
		}
	}
	return respBody, nil
}

// encodeBody prepares the request body: byte slices and readers pass
// through untouched, strings go as text/plain, everything else is JSON.
func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return bytes.NewReader(b), "", nil
	case io.Reader:
		return b, "", nil
	case string:
		return strings.NewReader(b), "text/plain", nil
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(buf), "application/json", nil
	}
}

// mergeHeaders merges header maps left to right, later maps winning.
func mergeHeaders(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

func hasContentType(headers map[string]string) bool {
	for k := range headers {
		if strings.EqualFold(k, "Content-Type") {
			return true
		}
	}
	return false
}

func methodOr(method, fallback string) string {
	if method == "" {
		return fallback
	}
	return strings.ToUpper(method)
}

// queryValues translates structured query params into wire parameters:
// select/expand comma-joined, filter JSON-stringified, orderby as
// "field asc|desc" pairs, skip/top/search/count passed through.
func queryValues(params *core.QueryParams) map[string]string {
	if params == nil {
		return nil
	}
	out := make(map[string]string)

	if len(params.Select) > 0 {
		out["select"] = strings.Join(params.Select, ",")
	}
	if params.Filter != nil {
		if buf, err := json.Marshal(params.Filter); err == nil {
			out["filter"] = string(buf)
		}
	}
	if len(params.OrderBy) > 0 {
		pairs := make([]string, len(params.OrderBy))
		for i, key := range params.OrderBy {
			direction := key.Direction
			if !direction.IsValid() {
				direction = core.SortAsc
			}
			pairs[i] = key.Field + " " + string(direction)
		}
		out["orderby"] = strings.Join(pairs, ",")
	}
	if params.Skip > 0 {
		out["skip"] = strconv.Itoa(params.Skip)
	}
	if params.Top > 0 {
		out["top"] = strconv.Itoa(params.Top)
	}
	if len(params.Expand) > 0 {
		out["expand"] = strings.Join(params.Expand, ",")
	}
	if params.Search != "" {
		out["search"] = params.Search
	}
	if params.Count {
		out["count"] = "true"
	}
	return out
}
