package core

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Constants for pagination
const (
	DefaultPageSize = 20
	MaxPageSize     = 500
)

// QueryParams is the structured query descriptor every data source accepts.
// The zero value imposes nothing: no filter, no sort, no pagination cap.
type QueryParams struct {
	// Select is the ordered list of fields to retain per record. Selection
	// is applied last, after filtering, sorting and pagination, so it never
	// affects which records match or how they sort.
	Select []string `json:"$select,omitempty"`

	// Filter is either an ObjectFilter or an ASTFilter; nil means no filter.
	Filter Filter `json:"$filter,omitempty"`

	// OrderBy lists sort keys in priority order.
	OrderBy OrderBy `json:"$orderby,omitempty"`

	// Skip drops a prefix of the result set; Top caps the length after the
	// skip. Top == 0 means no cap.
	Skip int `json:"$skip,omitempty"`
	Top  int `json:"$top,omitempty"`

	// Expand names related entities to expand; it is passed through to
	// backends that understand it and ignored by the in-memory adapter.
	Expand []string `json:"$expand,omitempty"`

	// Search is a free-text, case-insensitive substring match across all
	// string-valued fields.
	Search string `json:"$search,omitempty"`

	// Count requests an exact total alongside the page.
	Count bool `json:"$count,omitempty"`
}

// NewQueryParams creates QueryParams with the default page size applied.
func NewQueryParams() *QueryParams {
	return &QueryParams{Top: getPageSizeFromEnv()}
}

// WithSelect sets the field projection.
func (q *QueryParams) WithSelect(fields ...string) *QueryParams {
	q.Select = fields
	return q
}

// WithFilter sets the query filter.
func (q *QueryParams) WithFilter(filter Filter) *QueryParams {
	q.Filter = filter
	return q
}

// WithSort appends a sort key.
func (q *QueryParams) WithSort(field string, direction SortDirection) *QueryParams {
	q.OrderBy = append(q.OrderBy, SortField{Field: field, Direction: direction})
	return q
}

// WithPagination sets skip/top, clamping to sane bounds.
func (q *QueryParams) WithPagination(skip, top int) *QueryParams {
	if skip < 0 {
		skip = 0
	}
	if top < 0 {
		top = 0
	}
	if top > MaxPageSize {
		top = MaxPageSize
	}
	q.Skip = skip
	q.Top = top
	return q
}

// WithSearch sets the free-text search term.
func (q *QueryParams) WithSearch(term string) *QueryParams {
	q.Search = term
	return q
}

// ApplyPagination slices records to the skip/top window. Top == 0 means
// no cap.
func ApplyPagination(records []Record, skip, top int) []Record {
	if skip > 0 {
		if skip >= len(records) {
			return []Record{}
		}
		records = records[skip:]
	}
	if top > 0 && top < len(records) {
		records = records[:top]
	}
	return records
}

// ApplySelect projects each record down to the named fields. Fields absent
// from a record are simply omitted from its projection.
func ApplySelect(records []Record, fields []string) []Record {
	if len(fields) == 0 {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		projected := make(Record, len(fields))
		for _, f := range fields {
			if v, ok := rec[f]; ok {
				projected[f] = v
			}
		}
		out = append(out, projected)
	}
	return out
}

// ApplySearch keeps records where any string-valued field contains the term,
// case-insensitively. An empty term keeps everything.
func ApplySearch(records []Record, term string) []Record {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if recordContains(rec, needle) {
			out = append(out, rec)
		}
	}
	return out
}

func recordContains(rec Record, lowerTerm string) bool {
	for _, v := range rec {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), lowerTerm) {
			return true
		}
	}
	return false
}

// stringify renders an arbitrary value the way loose string coercion would:
// nil becomes the empty string.
func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// getPageSizeFromEnv gets the default page size from the environment.
func getPageSizeFromEnv() int {
	if envSize := os.Getenv("OBJECTUI_PAGE_SIZE"); envSize != "" {
		if size, err := strconv.Atoi(envSize); err == nil && size > 0 && size <= MaxPageSize {
			return size
		}
	}
	return DefaultPageSize
}
