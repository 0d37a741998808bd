package api

import (
	"net/url"
	"strings"
)

// RequestURLBuilder provides a fluent interface for building endpoint URLs:
// a base URL (trailing slashes stripped), an optional path suffix for a
// record ID, and url-encoded query parameters.
type RequestURLBuilder struct {
	base   string
	path   string
	params url.Values
}

// NewRequestURL creates a builder for the given base URL.
func NewRequestURL(base string) *RequestURLBuilder {
	return &RequestURLBuilder{
		base:   strings.TrimRight(base, "/"),
		params: make(url.Values),
	}
}

// WithPath appends a path-escaped segment, typically a record ID.
func (b *RequestURLBuilder) WithPath(segment string) *RequestURLBuilder {
	if segment != "" {
		b.path += "/" + url.PathEscape(segment)
	}
	return b
}

// WithParam sets a single query parameter.
func (b *RequestURLBuilder) WithParam(key, value string) *RequestURLBuilder {
	if key != "" {
		b.params.Set(key, value)
	}
	return b
}

// WithParams sets every parameter in the map. Later calls win on conflict,
// so endpoint-config params should be applied before call-site params.
func (b *RequestURLBuilder) WithParams(params map[string]string) *RequestURLBuilder {
	for k, v := range params {
		b.WithParam(k, v)
	}
	return b
}

// String builds and returns the final URL.
func (b *RequestURLBuilder) String() string {
	u := b.base + b.path
	if len(b.params) == 0 {
		return u
	}
	return u + "?" + b.params.Encode()
}
