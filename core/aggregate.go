package core

import (
	"context"
	"strconv"
	"strings"
)

// AggregateFunc names a reduction applied per group.
type AggregateFunc string

const (
	AggSum   AggregateFunc = "sum"
	AggCount AggregateFunc = "count"
	AggAvg   AggregateFunc = "avg"
	AggMin   AggregateFunc = "min"
	AggMax   AggregateFunc = "max"
)

// AggregateParams describes a group-by aggregation.
type AggregateParams struct {
	Field    string        `json:"field"`
	Function AggregateFunc `json:"function"`
	GroupBy  string        `json:"groupBy"`
	Filter   Filter        `json:"filter,omitempty"`
}

// AggregateRow is one aggregation result row: the group key under the
// GroupBy field name and the numeric result under the Field name.
type AggregateRow = Record

// AggregateRecords groups records by the stringified GroupBy value and
// reduces each group's Field values with the requested function (sum when
// unspecified). Records without a group value land in the "Unknown" group.
// Non-numeric field values coerce to 0, so a single bad record never poisons
// an entire aggregation.
func AggregateRecords(records []Record, params AggregateParams) []AggregateRow {
	groups := make(map[string][]float64)
	var order []string

	for _, rec := range records {
		key := "Unknown"
		if v, ok := rec[params.GroupBy]; ok && v != nil {
			key = stringify(v)
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], toNumber(rec[params.Field]))
	}

	rows := make([]AggregateRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, AggregateRow{
			params.GroupBy: key,
			params.Field:   reduce(groups[key], params.Function),
		})
	}
	return rows
}

func reduce(values []float64, fn AggregateFunc) float64 {
	switch fn {
	case AggCount:
		return float64(len(values))
	case AggAvg:
		if len(values) == 0 {
			return 0
		}
		return sum(values) / float64(len(values))
	case AggMin:
		if len(values) == 0 {
			return 0
		}
		min := values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
		}
		return min
	case AggMax:
		if len(values) == 0 {
			return 0
		}
		max := values[0]
		for _, v := range values[1:] {
			if v > max {
				max = v
			}
		}
		return max
	default:
		// sum is the default, including for unrecognized functions.
		return sum(values)
	}
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// toNumber applies loose numeric coercion: numbers pass through, booleans
// become 0/1, numeric strings parse, everything else (including nil) is 0.
func toNumber(v any) float64 {
	if f, ok := toFloat(v); ok {
		return f
	}
	switch n := v.(type) {
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return 0
}

// ExtractRecords normalizes a raw query response into a flat record slice.
// It accepts a record slice, a *QueryResult, or a map carrying the records
// under "records", "data" or "value" (checked in that order); anything else
// yields an empty slice.
func ExtractRecords(response any) []Record {
	switch r := response.(type) {
	case nil:
		return []Record{}
	case []Record:
		return r
	case *QueryResult:
		if r == nil {
			return []Record{}
		}
		return r.Data
	case QueryResult:
		return r.Data
	case []any:
		return toRecords(r)
	case map[string]any:
		for _, key := range []string{"records", "data", "value"} {
			if items, ok := r[key].([]any); ok {
				return toRecords(items)
			}
			if items, ok := r[key].([]Record); ok {
				return items
			}
		}
	}
	return []Record{}
}

func toRecords(items []any) []Record {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]any); ok {
			out = append(out, rec)
		}
	}
	return out
}

// RunAggregate aggregates through the data source's native Aggregate when it
// implements Aggregator, and otherwise falls back to fetching the (filtered)
// records and grouping client-side. Chart components use this so they work
// against any DataSource.
func RunAggregate(ctx context.Context, ds DataSource, resource string, params AggregateParams) ([]AggregateRow, error) {
	if agg, ok := ds.(Aggregator); ok {
		return agg.Aggregate(ctx, resource, params)
	}

	result, err := ds.Find(ctx, resource, &QueryParams{Filter: params.Filter})
	if err != nil {
		return nil, err
	}
	return AggregateRecords(result.Data, params), nil
}
