// Package objectui is the data-source resolution layer of a schema-driven
// UI framework: declarative ViewData configuration embedded in component
// schemas selects one of a small set of adapters (in-memory value arrays,
// raw HTTP endpoints, or a host-supplied object-model client) unified
// behind the core.DataSource contract.
//
// Rendering components call ResolveDataSource with a view's configuration
// and the context's fallback data source, then talk to whatever comes back
// purely through the contract:
//
//	ds := objectui.ResolveDataSource(view, fallback, nil)
//	result, err := ds.Find(ctx, "orders", core.NewQueryParams().
//		WithFilter(core.ObjectFilter{"status": "active"}).
//		WithSort("created_at", core.SortDesc))
//
// The query engine, aggregation helpers and the contract itself live in
// package core; the adapters live under adapters/.
package objectui
