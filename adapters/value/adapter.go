// Package value implements the in-memory DataSource adapter backing
// "value"-provider views: a caller-supplied record array with a full
// filter/sort/paginate pipeline, local CRUD with synthetic IDs, and
// group-by aggregation.
package value

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/objectui/objectui/core"
)

// Adapter turns a static in-memory array into a full core.DataSource.
// The input array is deep-cloned on construction and every read returns
// clones, so records never alias between UI state and the adapter's store.
type Adapter struct {
	mu      sync.RWMutex
	items   []core.Record
	idField string
}

// New creates an adapter over a copy of the given records. The record ID is
// taken from "_id" and then "id", per record.
func New(items []core.Record) *Adapter {
	return NewWithIDField(items, "")
}

// NewWithIDField creates an adapter with an explicit ID field.
func NewWithIDField(items []core.Record, idField string) *Adapter {
	return &Adapter{
		items:   core.DeepCopyRecords(items),
		idField: idField,
	}
}

// All returns a deep copy of the adapter's current records.
func (a *Adapter) All() []core.Record {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return core.DeepCopyRecords(a.items)
}

// idOf extracts a record's ID and whether it has one.
func (a *Adapter) idOf(rec core.Record) (any, bool) {
	if a.idField != "" {
		v, ok := rec[a.idField]
		return v, ok
	}
	if v, ok := rec["_id"]; ok {
		return v, true
	}
	v, ok := rec["id"]
	return v, ok
}

// sameID compares IDs by their string form, so a numeric 7 matches "7" from
// a URL path.
func (a *Adapter) sameID(rec core.Record, id any) bool {
	recID, ok := a.idOf(rec)
	if !ok {
		return false
	}
	return fmt.Sprint(recID) == fmt.Sprint(id)
}

// Find runs the in-memory query pipeline: filter, free-text search, total
// (pre-pagination), sort, skip/top, then field selection.
func (a *Adapter) Find(_ context.Context, _ string, params *core.QueryParams) (*core.QueryResult, error) {
	if params == nil {
		params = &core.QueryParams{}
	}

	records := a.All()
	records = core.ApplyFilter(records, params.Filter)
	records = core.ApplySearch(records, params.Search)

	total := int64(len(records))

	records = core.ApplySort(records, params.OrderBy)
	records = core.ApplyPagination(records, params.Skip, params.Top)
	records = core.ApplySelect(records, params.Select)

	window := params.Top
	if window == 0 {
		window = len(records)
	}

	return &core.QueryResult{
		Data:    records,
		Total:   total,
		HasMore: int64(params.Skip+window) < total,
	}, nil
}

// FindOne scans for a record by ID. A miss returns (nil, nil).
func (a *Adapter) FindOne(_ context.Context, _ string, id any, params *core.QueryParams) (core.Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, rec := range a.items {
		if !a.sameID(rec, id) {
			continue
		}
		found := core.DeepCopyRecord(rec)
		if params != nil && len(params.Select) > 0 {
			return core.ApplySelect([]core.Record{found}, params.Select)[0], nil
		}
		return found, nil
	}
	return nil, nil
}

// Create appends a copy of the record, generating a synthetic ID when the
// configured ID field is absent.
func (a *Adapter) Create(_ context.Context, _ string, data core.Record) (core.Record, error) {
	stored := core.ShallowCopyRecord(data)
	if stored == nil {
		stored = core.Record{}
	}
	if _, ok := a.idOf(stored); !ok {
		stored[a.idFieldName()] = generateID()
	}

	a.mu.Lock()
	a.items = append(a.items, stored)
	a.mu.Unlock()

	return core.DeepCopyRecord(stored), nil
}

// Update shallow-merges data over the record with the given ID. Unlike
// FindOne and Delete, a miss is an error: silently no-op-ing an update would
// hide a caller bug.
func (a *Adapter) Update(_ context.Context, resource string, id any, data core.Record) (core.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, rec := range a.items {
		if !a.sameID(rec, id) {
			continue
		}
		for k, v := range data {
			rec[k] = v
		}
		return core.DeepCopyRecord(rec), nil
	}
	return nil, fmt.Errorf("update %s %v: %w", resource, id, core.ErrNotFound)
}

// Delete removes a record by ID, reporting whether anything was removed.
func (a *Adapter) Delete(_ context.Context, _ string, id any) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, rec := range a.items {
		if a.sameID(rec, id) {
			a.items = append(a.items[:i], a.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Bulk dispatches each item to Create, Update or Delete in order. There is
// no atomicity: an update miss aborts the remainder and leaves the already
// processed items applied, while delete misses are skipped silently.
func (a *Adapter) Bulk(ctx context.Context, resource string, op core.BulkOperation, items []core.Record) ([]core.Record, error) {
	results := make([]core.Record, 0, len(items))

	for _, item := range items {
		switch op {
		case core.BulkCreate:
			created, err := a.Create(ctx, resource, item)
			if err != nil {
				return results, err
			}
			results = append(results, created)
		case core.BulkUpdate:
			id, ok := a.idOf(item)
			if !ok {
				return results, fmt.Errorf("bulk update %s: item has no ID: %w", resource, core.ErrNotFound)
			}
			updated, err := a.Update(ctx, resource, id, item)
			if err != nil {
				return results, err
			}
			results = append(results, updated)
		case core.BulkDelete:
			id, ok := a.idOf(item)
			if !ok {
				continue
			}
			removed, err := a.Delete(ctx, resource, id)
			if err != nil {
				return results, err
			}
			if removed {
				results = append(results, item)
			}
		default:
			return results, fmt.Errorf("bulk %s: unsupported operation %q", resource, op)
		}
	}
	return results, nil
}

// Aggregate groups the (optionally filtered) records client-side.
func (a *Adapter) Aggregate(_ context.Context, _ string, params core.AggregateParams) ([]core.AggregateRow, error) {
	records := core.ApplyFilter(a.All(), params.Filter)
	return core.AggregateRecords(records, params), nil
}

// GetObjectSchema infers a minimal schema from the first stored record.
func (a *Adapter) GetObjectSchema(_ context.Context, name string) (*core.Schema, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return core.InferSchema(name, a.items), nil
}

// GetView is metadata the in-memory adapter does not carry.
func (a *Adapter) GetView(_ context.Context, _, _ string) (core.Record, error) {
	return nil, nil
}

// GetApp is metadata the in-memory adapter does not carry.
func (a *Adapter) GetApp(_ context.Context, _ string) (core.Record, error) {
	return nil, nil
}

func (a *Adapter) idFieldName() string {
	if a.idField != "" {
		return a.idField
	}
	return "id"
}

// generateID produces a synthetic record ID: auto_<millis>_<6 random hex>.
func generateID() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("auto_%d_%s", time.Now().UnixMilli(), random)
}
