package core

import (
	"sort"
	"strings"
)

// SortDirection represents the sort order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// IsValid checks if the sort direction is valid.
func (sd SortDirection) IsValid() bool {
	return sd == SortAsc || sd == SortDesc
}

// Opposite returns the opposite sort direction.
func (sd SortDirection) Opposite() SortDirection {
	if sd == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// SortField represents a single sort key.
type SortField struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"order"`
}

// OrderBy is an ordered list of sort keys, applied left to right.
type OrderBy []SortField

// ParseOrderBy normalizes the dynamic $orderby shapes found in declarative
// schemas into an ordered key list. Accepted shapes:
//
//   - []string, where a leading "-" means descending ("-created_at")
//   - []map with "field" and "order" entries
//   - map of field → direction (iteration order is not guaranteed for
//     multi-key maps decoded from JSON; prefer the list forms)
//   - OrderBy / []SortField passed through unchanged
func ParseOrderBy(v any) OrderBy {
	switch ob := v.(type) {
	case nil:
		return nil
	case OrderBy:
		return ob
	case []SortField:
		return OrderBy(ob)
	case []string:
		out := make(OrderBy, 0, len(ob))
		for _, s := range ob {
			out = append(out, parseSortString(s))
		}
		return out
	case map[string]string:
		out := make(OrderBy, 0, len(ob))
		for field, dir := range ob {
			out = append(out, SortField{Field: field, Direction: parseDirection(dir)})
		}
		return out
	case map[string]any:
		out := make(OrderBy, 0, len(ob))
		for field, dir := range ob {
			out = append(out, SortField{Field: field, Direction: parseDirection(stringify(dir))})
		}
		return out
	case []any:
		out := make(OrderBy, 0, len(ob))
		for _, item := range ob {
			switch key := item.(type) {
			case string:
				out = append(out, parseSortString(key))
			case map[string]any:
				field, _ := key["field"].(string)
				if field == "" {
					continue
				}
				out = append(out, SortField{
					Field:     field,
					Direction: parseDirection(stringify(key["order"])),
				})
			}
		}
		return out
	default:
		return nil
	}
}

func parseSortString(s string) SortField {
	if strings.HasPrefix(s, "-") {
		return SortField{Field: strings.TrimPrefix(s, "-"), Direction: SortDesc}
	}
	return SortField{Field: s, Direction: SortAsc}
}

func parseDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// ApplySort sorts records by the given keys: the input slice is reordered
// and returned. The sort is stable, so records that
// compare equal on every key keep their original relative order. Missing and
// nil values sort first ascending and last descending; value pairs that are
// not mutually orderable are treated as equal.
func ApplySort(records []Record, orderBy OrderBy) []Record {
	if len(orderBy) == 0 {
		return records
	}
	sort.SliceStable(records, func(i, j int) bool {
		for _, key := range orderBy {
			a, aok := records[i][key.Field]
			b, bok := records[j][key.Field]
			aNull := !aok || a == nil
			bNull := !bok || b == nil

			if aNull && bNull {
				continue
			}
			if aNull || bNull {
				// Nulls first ascending, last descending.
				if key.Direction == SortDesc {
					return bNull
				}
				return aNull
			}

			cmp, ok := compareOrdered(a, b)
			if !ok || cmp == 0 {
				continue
			}
			if key.Direction == SortDesc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	return records
}
