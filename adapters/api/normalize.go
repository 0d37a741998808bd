package api

import (
	"github.com/tidwall/gjson"

	"github.com/objectui/objectui/core"
)

// envelopeKeys are the response-envelope conventions Find understands, in
// priority order: the plain REST "data", generic "items"/"results"/
// "records", and OData/Salesforce-style "value".
var envelopeKeys = []string{"data", "items", "results", "records", "value"}

// totalKeys are the fields a total count may hide under.
var totalKeys = []string{"total", "totalCount", "count"}

// normalizeQueryResult turns a raw JSON response body into a QueryResult,
// whatever envelope the backend speaks: a bare array, an already
// QueryResult-shaped object, one of the known envelope keys, or a lone
// object (wrapped as a one-row result).
func normalizeQueryResult(body []byte) *core.QueryResult {
	parsed := gjson.ParseBytes(body)

	if parsed.IsArray() {
		data := resultRecords(parsed)
		return &core.QueryResult{Data: data, Total: int64(len(data))}
	}

	if !parsed.IsObject() {
		return &core.QueryResult{Data: []core.Record{}}
	}

	for _, key := range envelopeKeys {
		arr := parsed.Get(key)
		if !arr.IsArray() {
			continue
		}
		data := resultRecords(arr)
		result := &core.QueryResult{
			Data:  data,
			Total: totalOf(parsed, len(data)),
		}
		if hasMore := parsed.Get("hasMore"); hasMore.Exists() {
			result.HasMore = hasMore.Bool()
		}
		if cursor := parsed.Get("cursor"); cursor.Exists() {
			result.Cursor = cursor.String()
		}
		return result
	}

	// A single object response is a one-row result.
	if rec, ok := parsed.Value().(map[string]any); ok {
		return &core.QueryResult{Data: []core.Record{rec}, Total: 1}
	}
	return &core.QueryResult{Data: []core.Record{}}
}

// normalizeAggregate accepts an array response or a ".data"/".results"
// wrapped one, defaulting to no rows on anything unrecognized.
func normalizeAggregate(body []byte) []core.AggregateRow {
	parsed := gjson.ParseBytes(body)
	if parsed.IsArray() {
		return resultRecords(parsed)
	}
	if parsed.IsObject() {
		for _, key := range []string{"data", "results"} {
			if arr := parsed.Get(key); arr.IsArray() {
				return resultRecords(arr)
			}
		}
	}
	return []core.AggregateRow{}
}

// parseRecord decodes an object response body; non-objects yield nil.
func parseRecord(body []byte) core.Record {
	parsed := gjson.ParseBytes(body)
	if rec, ok := parsed.Value().(map[string]any); ok {
		return rec
	}
	return nil
}

func resultRecords(arr gjson.Result) []core.Record {
	items, _ := arr.Value().([]any)
	out := make([]core.Record, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]any); ok {
			out = append(out, rec)
		}
	}
	return out
}

func totalOf(parsed gjson.Result, fallback int) int64 {
	for _, key := range totalKeys {
		if v := parsed.Get(key); v.Exists() {
			return v.Int()
		}
	}
	return int64(fallback)
}
