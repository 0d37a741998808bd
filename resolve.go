package objectui

import (
	"github.com/objectui/objectui/adapters/api"
	"github.com/objectui/objectui/adapters/value"
	"github.com/objectui/objectui/core"
)

// ResolveOptions parameterize the adapters ResolveDataSource constructs.
type ResolveOptions struct {
	// Client overrides the API adapter's HTTP client; the extension point
	// for abortable or retrying requests.
	Client api.Doer

	// DefaultHeaders apply to every API adapter request at the lowest
	// priority.
	DefaultHeaders map[string]string

	// IDField overrides the value adapter's record ID field when the view
	// itself does not name one.
	IDField string

	// Debug enables HTTP trace logging on constructed API adapters.
	Debug bool
}

// ResolveDataSource picks the data source for a view from its declarative
// configuration.
//
// A nil view, the "object" provider and any unknown provider all return the
// caller-supplied fallback (which may be nil): "object" intentionally never
// constructs an adapter, it defers to whatever data source the rendering
// context already has. The "api" and "value" providers construct a fresh
// adapter on every call; there is no caching, so rendering components are
// responsible for stabilizing the reference across re-renders.
func ResolveDataSource(view *core.ViewData, fallback core.DataSource, opts *ResolveOptions) core.DataSource {
	if view == nil {
		return fallback
	}

	switch view.Provider {
	case core.ProviderAPI:
		var apiOpts api.Options
		if opts != nil {
			apiOpts.Client = opts.Client
			apiOpts.DefaultHeaders = opts.DefaultHeaders
			apiOpts.Debug = opts.Debug
		}
		return api.NewWithOptions(view.Read, view.Write, apiOpts)

	case core.ProviderValue:
		idField := view.IDField
		if idField == "" && opts != nil {
			idField = opts.IDField
		}
		return value.NewWithIDField(view.Items, idField)

	default:
		return fallback
	}
}
