package core

import (
	"context"
	"testing"
)

func salesRecords() []Record {
	return []Record{
		{"region": "x", "amount": 10.0},
		{"region": "x", "amount": 20.0},
		{"region": "y", "amount": 5.0},
	}
}

// rowsByKey indexes aggregate rows by group key, since group order is not
// part of the contract.
func rowsByKey(t *testing.T, rows []AggregateRow, groupBy string) map[string]AggregateRow {
	t.Helper()
	out := make(map[string]AggregateRow, len(rows))
	for _, row := range rows {
		key, ok := row[groupBy].(string)
		if !ok {
			t.Fatalf("row %v has no %q key", row, groupBy)
		}
		out[key] = row
	}
	return out
}

func TestAggregateRecordsSum(t *testing.T) {
	rows := AggregateRecords(salesRecords(), AggregateParams{
		Field: "amount", Function: AggSum, GroupBy: "region",
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(rows))
	}

	byKey := rowsByKey(t, rows, "region")
	if byKey["x"]["amount"] != 30.0 {
		t.Errorf("sum for x = %v, want 30", byKey["x"]["amount"])
	}
	if byKey["y"]["amount"] != 5.0 {
		t.Errorf("sum for y = %v, want 5", byKey["y"]["amount"])
	}
}

func TestAggregateRecordsFunctions(t *testing.T) {
	records := salesRecords()

	tests := []struct {
		fn    AggregateFunc
		wantX float64
	}{
		{AggCount, 2},
		{AggAvg, 15},
		{AggMin, 10},
		{AggMax, 20},
		{"", 30},          // sum is the default
		{"bogus", 30},     // and the fallback for unknown functions
	}

	for _, tt := range tests {
		t.Run(string(tt.fn), func(t *testing.T) {
			rows := AggregateRecords(records, AggregateParams{
				Field: "amount", Function: tt.fn, GroupBy: "region",
			})
			byKey := rowsByKey(t, rows, "region")
			if byKey["x"]["amount"] != tt.wantX {
				t.Errorf("%s for x = %v, want %v", tt.fn, byKey["x"]["amount"], tt.wantX)
			}
		})
	}
}

func TestAggregateRecordsUnknownGroupAndCoercion(t *testing.T) {
	records := []Record{
		{"region": "x", "amount": "12"},     // numeric string parses
		{"amount": 5.0},                     // missing group key
		{"region": nil, "amount": "oops"},   // nil group, junk value
		{"region": "x", "amount": true},     // booleans coerce to 1
	}

	rows := AggregateRecords(records, AggregateParams{
		Field: "amount", GroupBy: "region",
	})
	byKey := rowsByKey(t, rows, "region")

	if byKey["x"]["amount"] != 13.0 {
		t.Errorf(`sum for x = %v, want 13 ("12" + true)`, byKey["x"]["amount"])
	}
	if byKey["Unknown"]["amount"] != 5.0 {
		t.Errorf("Unknown group sum = %v, want 5", byKey["Unknown"]["amount"])
	}
}

func TestExtractRecords(t *testing.T) {
	recs := []any{map[string]any{"id": 1.0}, map[string]any{"id": 2.0}}

	tests := []struct {
		name  string
		input any
		want  int
	}{
		{"bare slice", recs, 2},
		{"records envelope", map[string]any{"records": recs}, 2},
		{"data envelope", map[string]any{"data": recs}, 2},
		{"value envelope", map[string]any{"value": recs}, 2},
		{"query result", &QueryResult{Data: []Record{{"id": 1}}}, 1},
		{"nil", nil, 0},
		{"primitive", 42, 0},
		{"unrecognized object", map[string]any{"rows": recs}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractRecords(tt.input); len(got) != tt.want {
				t.Errorf("ExtractRecords() returned %d records, want %d", len(got), tt.want)
			}
		})
	}

	// "records" wins over "data" when both are present.
	got := ExtractRecords(map[string]any{
		"records": []any{map[string]any{"from": "records"}},
		"data":    recs,
	})
	if len(got) != 1 || got[0]["from"] != "records" {
		t.Errorf("records key should take priority, got %v", got)
	}
}

// findOnlySource implements DataSource but not Aggregator.
type findOnlySource struct {
	records []Record
	gotFilter Filter
}

func (f *findOnlySource) Find(_ context.Context, _ string, params *QueryParams) (*QueryResult, error) {
	if params != nil {
		f.gotFilter = params.Filter
	}
	return &QueryResult{Data: f.records, Total: int64(len(f.records))}, nil
}

func (f *findOnlySource) FindOne(context.Context, string, any, *QueryParams) (Record, error) {
	return nil, nil
}

func (f *findOnlySource) Create(context.Context, string, Record) (Record, error) {
	return nil, nil
}

func (f *findOnlySource) Update(context.Context, string, any, Record) (Record, error) {
	return nil, nil
}

func (f *findOnlySource) Delete(context.Context, string, any) (bool, error) {
	return false, nil
}

func TestRunAggregateFallsBackToClientSide(t *testing.T) {
	ds := &findOnlySource{records: salesRecords()}

	rows, err := RunAggregate(context.Background(), ds, "sales", AggregateParams{
		Field: "amount", Function: AggSum, GroupBy: "region",
		Filter: ObjectFilter{"region": "x"},
	})
	if err != nil {
		t.Fatalf("RunAggregate failed: %v", err)
	}

	// The filter must be pushed into the Find call, not applied twice.
	if ds.gotFilter == nil {
		t.Error("fallback should pass the filter to Find")
	}
	byKey := rowsByKey(t, rows, "region")
	if byKey["x"]["amount"] != 30.0 {
		t.Errorf("client-side sum = %v, want 30", byKey["x"]["amount"])
	}
}
