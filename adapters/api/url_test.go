package api

import (
	"net/url"
	"strings"
	"testing"
)

func TestRequestURLBasic(t *testing.T) {
	u := NewRequestURL("https://example.com/api/items").String()
	if u != "https://example.com/api/items" {
		t.Errorf("got %q", u)
	}
}

func TestRequestURLStripsTrailingSlashes(t *testing.T) {
	u := NewRequestURL("https://example.com/api/items///").WithPath("42").String()
	if u != "https://example.com/api/items/42" {
		t.Errorf("got %q", u)
	}
}

func TestRequestURLEscapesPathSegment(t *testing.T) {
	u := NewRequestURL("https://example.com/items").WithPath("a b/c").String()
	if strings.Contains(u, " ") {
		t.Errorf("path segment not escaped: %q", u)
	}
	if !strings.HasPrefix(u, "https://example.com/items/") {
		t.Errorf("got %q", u)
	}
}

func TestRequestURLParamsEncodedAndOverridden(t *testing.T) {
	u := NewRequestURL("https://example.com/items").
		WithParams(map[string]string{"tenant": "acme", "top": "999"}).
		WithParams(map[string]string{"top": "5"}).
		WithParam("q", "a&b").
		String()

	parsed, err := url.Parse(u)
	if err != nil {
		t.Fatalf("built URL does not parse: %v", err)
	}
	query := parsed.Query()
	if query.Get("tenant") != "acme" {
		t.Errorf("tenant = %q", query.Get("tenant"))
	}
	if query.Get("top") != "5" {
		t.Errorf("later params should win, top = %q", query.Get("top"))
	}
	if query.Get("q") != "a&b" {
		t.Errorf("param not round-tripped, q = %q", query.Get("q"))
	}
}

func TestRequestURLEmptyKeysIgnored(t *testing.T) {
	u := NewRequestURL("https://example.com/items").
		WithParam("", "x").
		WithPath("").
		String()
	if u != "https://example.com/items" {
		t.Errorf("got %q", u)
	}
}
