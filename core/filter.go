package core

import (
	"log"
	"reflect"
	"strings"
	"sync"
)

// Filter is the query predicate attached to QueryParams. It is a closed sum
// type: declarative schemas carry either a flat MongoDB-like object of
// field→condition (ObjectFilter) or a nested array AST (ASTFilter), and the
// two evaluators are distinct and not interoperable.
type Filter interface {
	isFilter()
}

// ObjectFilter is a flat map of field name to condition. A condition that is
// a plain map is an operator bag ($gt, $gte, $lt, $lte, $ne, $in, $contains)
// and every operator in the bag must pass; any other condition value is an
// equality check. Conditions across fields are AND-ed.
type ObjectFilter map[string]any

func (ObjectFilter) isFilter() {}

// ASTFilter is a nested array predicate: a 3-element leaf
// [field, operator, value] or a logical node ["and"|"or", ...subnodes].
type ASTFilter []any

func (ASTFilter) isFilter() {}

// ParseFilter decodes the dynamic $filter shape found in JSON schemas:
// an array becomes an ASTFilter, a map becomes an ObjectFilter, anything
// else (including nil) is no filter at all.
func ParseFilter(v any) Filter {
	switch f := v.(type) {
	case nil:
		return nil
	case Filter:
		return f
	case []any:
		return ASTFilter(f)
	case map[string]any:
		return ObjectFilter(f)
	default:
		return nil
	}
}

// MatchesFilter reports whether a record satisfies the given filter.
// A nil or empty filter matches everything.
func MatchesFilter(rec Record, filter Filter) bool {
	switch f := filter.(type) {
	case ASTFilter:
		return matchesASTNode(rec, []any(f))
	case ObjectFilter:
		return matchesObjectFilter(rec, f)
	default:
		return true
	}
}

// ApplyFilter returns the records matching the filter, preserving order.
func ApplyFilter(records []Record, filter Filter) []Record {
	if filter == nil {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if MatchesFilter(rec, filter) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesASTNode(rec Record, node []any) bool {
	if len(node) == 0 {
		return true
	}

	// Logical nodes combine their sub-nodes with all/any semantics.
	if op, ok := node[0].(string); ok {
		switch strings.ToLower(op) {
		case "and":
			for _, sub := range node[1:] {
				if child, ok := sub.([]any); ok && !matchesASTNode(rec, child) {
					return false
				}
			}
			return true
		case "or":
			for _, sub := range node[1:] {
				child, ok := sub.([]any)
				if !ok {
					// Malformed sub-nodes evaluate permissively.
					return true
				}
				if matchesASTNode(rec, child) {
					return true
				}
			}
			return false
		}
	}

	if len(node) == 3 {
		field, fok := node[0].(string)
		op, ook := node[1].(string)
		if fok && ook {
			return evalLeaf(rec[field], op, node[2])
		}
	}

	// Malformed nodes degrade to match-all rather than failing the query.
	return true
}

func evalLeaf(got any, op string, want any) bool {
	switch strings.ToLower(op) {
	case "=":
		return equalValues(got, want)
	case "!=":
		return !equalValues(got, want)
	case ">":
		cmp, ok := compareOrdered(got, want)
		return ok && cmp > 0
	case ">=":
		cmp, ok := compareOrdered(got, want)
		return ok && cmp >= 0
	case "<":
		cmp, ok := compareOrdered(got, want)
		return ok && cmp < 0
	case "<=":
		cmp, ok := compareOrdered(got, want)
		return ok && cmp <= 0
	case "in":
		return valueIn(got, want)
	case "not in", "notin":
		return !valueIn(got, want)
	case "contains":
		return stringMatch(got, want, strings.Contains)
	case "notcontains":
		s, ok := got.(string)
		if !ok {
			return false
		}
		return !strings.Contains(strings.ToLower(s), strings.ToLower(stringify(want)))
	case "startswith":
		return stringMatch(got, want, strings.HasPrefix)
	case "between":
		bounds, ok := toSlice(want)
		if !ok || len(bounds) != 2 {
			return false
		}
		lo, lok := compareOrdered(got, bounds[0])
		hi, hok := compareOrdered(got, bounds[1])
		return lok && hok && lo >= 0 && hi <= 0
	default:
		warnUnknownOperator(op)
		return true
	}
}

func matchesObjectFilter(rec Record, filter ObjectFilter) bool {
	for field, cond := range filter {
		got := rec[field]

		bag, isBag := cond.(map[string]any)
		if !isBag {
			if !equalValues(got, cond) {
				return false
			}
			continue
		}

		// Operator bag: every operator on the field must pass.
		for op, want := range bag {
			switch op {
			case "$gt":
				if cmp, ok := compareOrdered(got, want); !ok || cmp <= 0 {
					return false
				}
			case "$gte":
				if cmp, ok := compareOrdered(got, want); !ok || cmp < 0 {
					return false
				}
			case "$lt":
				if cmp, ok := compareOrdered(got, want); !ok || cmp >= 0 {
					return false
				}
			case "$lte":
				if cmp, ok := compareOrdered(got, want); !ok || cmp > 0 {
					return false
				}
			case "$ne":
				if equalValues(got, want) {
					return false
				}
			case "$in":
				if !valueIn(got, want) {
					return false
				}
			case "$contains":
				if !stringMatch(got, want, strings.Contains) {
					return false
				}
			default:
				warnUnknownOperator(op)
			}
		}
	}
	return true
}

// equalValues compares for equality with cross-type numeric tolerance, so
// an int recorded by a caller matches the float64 the same value decodes to
// from JSON.
func equalValues(a, b any) bool {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

// compareOrdered compares two values when both are numeric or both are
// strings. The second return value is false when the pair is not orderable.
func compareOrdered(a, b any) (int, bool) {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		if !bok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs), true
	}
	return 0, false
}

func valueIn(got any, want any) bool {
	values, ok := toSlice(want)
	if !ok {
		return false
	}
	for _, v := range values {
		if equalValues(got, v) {
			return true
		}
	}
	return false
}

// stringMatch applies a case-insensitive string predicate. Non-string
// record values never match.
func stringMatch(got any, want any, pred func(s, substr string) bool) bool {
	s, ok := got.(string)
	if !ok {
		return false
	}
	return pred(strings.ToLower(s), strings.ToLower(stringify(want)))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

var unknownOps sync.Map

// warnUnknownOperator logs once per operator. Unknown operators are treated
// as match-all so a typo'd filter degrades to a no-op instead of hiding
// every record, but the typo should still be visible somewhere.
func warnUnknownOperator(op string) {
	if _, seen := unknownOps.LoadOrStore(op, struct{}{}); !seen {
		log.Printf("[filter] unknown operator %q, treating as match-all", op)
	}
}
