package core

import (
	json "github.com/goccy/go-json"
)

// Provider discriminates which adapter a ViewData selects.
type Provider string

const (
	// ProviderObject defers to whatever data source the rendering context
	// already has, typically a remote object-model client owned by the host
	// application. The resolver never constructs an adapter for it.
	ProviderObject Provider = "object"

	// ProviderAPI backs the view with raw HTTP endpoints.
	ProviderAPI Provider = "api"

	// ProviderValue backs the view with a caller-supplied in-memory array.
	ProviderValue Provider = "value"
)

// HTTPEndpoint configures one HTTP endpoint of an API-backed view.
type HTTPEndpoint struct {
	URL     string            `json:"url"`
	Method  string            `json:"method,omitempty"`
	Params  map[string]string `json:"params,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// ViewData is the declarative, schema-embedded configuration that selects
// and parameterizes a data source for a view. Which fields are meaningful
// depends on Provider: Object for "object", Read/Write for "api", Items and
// IDField for "value".
type ViewData struct {
	Provider Provider      `json:"provider"`
	Object   string        `json:"object,omitempty"`
	Read     *HTTPEndpoint `json:"read,omitempty"`
	Write    *HTTPEndpoint `json:"write,omitempty"`
	Items    []Record      `json:"items,omitempty"`
	IDField  string        `json:"idField,omitempty"`
}

// ParseViewData decodes a ViewData embedded as a plain map in a component
// schema. It returns nil for nil input or input that does not decode.
func ParseViewData(raw Record) (*ViewData, error) {
	if raw == nil {
		return nil, nil
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var view ViewData
	if err := json.Unmarshal(buf, &view); err != nil {
		return nil, err
	}
	return &view, nil
}
