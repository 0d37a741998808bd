package core

import "testing"

func sampleRecord() Record {
	return Record{
		"name":   "Widget Mk II",
		"status": "active",
		"price":  25.5,
		"stock":  int(40),
		"tags":   []any{"tool", "metal"},
	}
}

func TestMatchesFilterNilMatchesEverything(t *testing.T) {
	if !MatchesFilter(sampleRecord(), nil) {
		t.Error("nil filter should match everything")
	}
	if !MatchesFilter(sampleRecord(), ASTFilter{}) {
		t.Error("empty AST filter should match everything")
	}
	if !MatchesFilter(sampleRecord(), ObjectFilter{}) {
		t.Error("empty object filter should match everything")
	}
}

func TestASTLeafOperators(t *testing.T) {
	rec := sampleRecord()

	tests := []struct {
		name string
		node ASTFilter
		want bool
	}{
		{"equals", ASTFilter{"status", "=", "active"}, true},
		{"equals miss", ASTFilter{"status", "=", "archived"}, false},
		{"equals numeric cross-type", ASTFilter{"stock", "=", 40.0}, true},
		{"not equals", ASTFilter{"status", "!=", "archived"}, true},
		{"greater", ASTFilter{"price", ">", 20}, true},
		{"greater miss", ASTFilter{"price", ">", 25.5}, false},
		{"greater or equal", ASTFilter{"price", ">=", 25.5}, true},
		{"less", ASTFilter{"price", "<", 30}, true},
		{"less or equal", ASTFilter{"stock", "<=", 40}, true},
		{"in", ASTFilter{"status", "in", []any{"active", "draft"}}, true},
		{"in miss", ASTFilter{"status", "in", []any{"archived"}}, false},
		{"not in", ASTFilter{"status", "not in", []any{"archived"}}, true},
		{"notin alias", ASTFilter{"status", "notin", []any{"active"}}, false},
		{"contains case-insensitive", ASTFilter{"name", "contains", "mk ii"}, true},
		{"contains on non-string never matches", ASTFilter{"price", "contains", "25"}, false},
		{"notcontains", ASTFilter{"name", "notcontains", "deluxe"}, true},
		{"startswith", ASTFilter{"name", "startswith", "widget"}, true},
		{"startswith miss", ASTFilter{"name", "startswith", "gadget"}, false},
		{"between inclusive", ASTFilter{"price", "between", []any{25.5, 30}}, true},
		{"between outside", ASTFilter{"price", "between", []any{30, 40}}, false},
		{"between malformed", ASTFilter{"price", "between", []any{30}}, false},
		{"unknown operator is permissive", ASTFilter{"price", "approximately", 99}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesFilter(rec, tt.node); got != tt.want {
				t.Errorf("MatchesFilter(%v) = %v, want %v", tt.node, got, tt.want)
			}
		})
	}
}

func TestASTLogicalNodes(t *testing.T) {
	rec := sampleRecord()

	and := ASTFilter{"and",
		[]any{"status", "=", "active"},
		[]any{"price", ">", 20},
	}
	if !MatchesFilter(rec, and) {
		t.Error("and-node with two passing legs should match")
	}

	or := ASTFilter{"or",
		[]any{"status", "=", "archived"},
		[]any{"price", ">", 20},
	}
	if !MatchesFilter(rec, or) {
		t.Error("or-node with one passing leg should match")
	}

	orMiss := ASTFilter{"or",
		[]any{"status", "=", "archived"},
		[]any{"price", ">", 100},
	}
	if MatchesFilter(rec, orMiss) {
		t.Error("or-node with no passing leg should not match")
	}

	nested := ASTFilter{"and",
		[]any{"status", "=", "active"},
		[]any{"or",
			[]any{"price", ">", 100},
			[]any{"stock", ">=", 40},
		},
	}
	if !MatchesFilter(rec, nested) {
		t.Error("nested and/or should match")
	}
}

// The and-node must behave exactly like the conjunction of its legs.
func TestASTConjunctionProperty(t *testing.T) {
	records := []Record{
		{"a": 1, "b": "x"},
		{"a": 2, "b": "y"},
		{"a": 3, "b": "x"},
		{"b": "x"},
	}
	legA := []any{"a", ">=", 2}
	legB := []any{"b", "=", "x"}

	for i, rec := range records {
		combined := MatchesFilter(rec, ASTFilter{"and", legA, legB})
		separate := MatchesFilter(rec, ASTFilter(legA)) && MatchesFilter(rec, ASTFilter(legB))
		if combined != separate {
			t.Errorf("record %d: and-node %v != conjunction %v", i, combined, separate)
		}
	}
}

func TestObjectFilter(t *testing.T) {
	rec := sampleRecord()

	tests := []struct {
		name   string
		filter ObjectFilter
		want   bool
	}{
		{"primitive equality", ObjectFilter{"status": "active"}, true},
		{"primitive equality miss", ObjectFilter{"status": "archived"}, false},
		{"fields are AND-ed", ObjectFilter{"status": "active", "price": 99.0}, false},
		{"gt", ObjectFilter{"price": map[string]any{"$gt": 20}}, true},
		{"gte and lt in one bag", ObjectFilter{"price": map[string]any{"$gte": 25.5, "$lt": 26}}, true},
		{"bag operators are AND-ed", ObjectFilter{"price": map[string]any{"$gt": 20, "$lt": 25}}, false},
		{"ne", ObjectFilter{"status": map[string]any{"$ne": "archived"}}, true},
		{"in", ObjectFilter{"status": map[string]any{"$in": []any{"active"}}}, true},
		{"contains", ObjectFilter{"name": map[string]any{"$contains": "WIDGET"}}, true},
		{"unknown bag operator is permissive", ObjectFilter{"price": map[string]any{"$near": 25}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesFilter(rec, tt.filter); got != tt.want {
				t.Errorf("MatchesFilter(%v) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	if f := ParseFilter([]any{"status", "=", "active"}); f == nil {
		t.Fatal("array input should parse to a filter")
	} else if _, ok := f.(ASTFilter); !ok {
		t.Errorf("array input should parse to ASTFilter, got %T", f)
	}

	if f := ParseFilter(map[string]any{"status": "active"}); f == nil {
		t.Fatal("map input should parse to a filter")
	} else if _, ok := f.(ObjectFilter); !ok {
		t.Errorf("map input should parse to ObjectFilter, got %T", f)
	}

	if f := ParseFilter(nil); f != nil {
		t.Errorf("nil input should parse to nil, got %T", f)
	}
	if f := ParseFilter("status = active"); f != nil {
		t.Errorf("string input should parse to nil, got %T", f)
	}
}

func TestApplyFilter(t *testing.T) {
	records := []Record{
		{"id": 1, "status": "active"},
		{"id": 2, "status": "archived"},
		{"id": 3, "status": "active"},
	}

	got := ApplyFilter(records, ObjectFilter{"status": "active"})
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0]["id"] != 1 || got[1]["id"] != 3 {
		t.Errorf("filtered records should preserve order, got %v", got)
	}
}
