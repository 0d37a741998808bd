package core

import "context"

// Record is the schema-less record shape used throughout the data-source
// layer. Records typically originate from JSON payloads or caller-supplied
// literals, so values are whatever encoding/json would produce.
type Record = map[string]any

// BulkOperation selects which CRUD operation a Bulk call applies to each item.
type BulkOperation string

const (
	BulkCreate BulkOperation = "create"
	BulkUpdate BulkOperation = "update"
	BulkDelete BulkOperation = "delete"
)

// QueryResult represents paginated query results.
// Total reflects the pre-pagination count whenever the data source can
// compute it; HasMore is advisory.
type QueryResult struct {
	Data    []Record `json:"data"`
	Total   int64    `json:"total"`
	HasMore bool     `json:"hasMore,omitempty"`
	Cursor  string   `json:"cursor,omitempty"`
}

// DataSource defines the interface every data-source adapter implements and
// every rendering component depends on. Rendering code never depends on
// concrete adapter types, only on this contract.
type DataSource interface {
	// Find runs a paged/filtered/sorted query against a resource.
	Find(ctx context.Context, resource string, params *QueryParams) (*QueryResult, error)

	// FindOne fetches a single record by ID. A miss is not an error:
	// it returns (nil, nil).
	FindOne(ctx context.Context, resource string, id any, params *QueryParams) (Record, error)

	// Create inserts a record and returns the stored representation.
	Create(ctx context.Context, resource string, data Record) (Record, error)

	// Update merges data over the record with the given ID. Updating a
	// record that does not exist is an error, never a silent no-op.
	Update(ctx context.Context, resource string, id any, data Record) (Record, error)

	// Delete removes a record by ID. A miss returns (false, nil).
	Delete(ctx context.Context, resource string, id any) (bool, error)
}

// BulkWriter is an optional capability for data sources that support
// multi-record writes. Bulk is best-effort and non-transactional: each item
// is processed independently and a failure partway through leaves the
// already-processed items applied.
type BulkWriter interface {
	Bulk(ctx context.Context, resource string, op BulkOperation, items []Record) ([]Record, error)
}

// Aggregator is an optional capability for data sources with native
// group-by aggregation. Callers that need aggregation over a plain
// DataSource should go through RunAggregate, which falls back to
// client-side grouping.
type Aggregator interface {
	Aggregate(ctx context.Context, resource string, params AggregateParams) ([]AggregateRow, error)
}

// SchemaProvider is an optional capability exposing object/view/app
// metadata. Adapters without a metadata backend return stubs rather than
// errors so schema-dependent callers degrade gracefully.
type SchemaProvider interface {
	GetObjectSchema(ctx context.Context, name string) (*Schema, error)
	GetView(ctx context.Context, object, view string) (Record, error)
	GetApp(ctx context.Context, name string) (Record, error)
}
