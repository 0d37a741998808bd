package core

import (
	"github.com/iancoleman/strcase"
)

// FieldInfo represents metadata about a single record field.
type FieldInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
}

// Schema is the minimal object metadata a data source can report. Adapters
// without a metadata backend return an empty-fields stub rather than an
// error so schema-dependent callers degrade gracefully.
type Schema struct {
	Name   string               `json:"name"`
	Fields map[string]FieldInfo `json:"fields"`
}

// NewSchemaStub returns a schema with no field information.
func NewSchemaStub(name string) *Schema {
	return &Schema{Name: name, Fields: map[string]FieldInfo{}}
}

// InferSchema samples the first record's keys and value kinds to build a
// minimal schema. It is shape inference only, not validation.
func InferSchema(name string, records []Record) *Schema {
	schema := NewSchemaStub(name)
	if len(records) == 0 {
		return schema
	}
	for key, value := range records[0] {
		schema.Fields[key] = FieldInfo{
			Name:        key,
			Type:        valueKind(value),
			DisplayName: generateDisplayName(key),
		}
	}
	return schema
}

// valueKind reports a JSON-ish type name for a record value.
func valueKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		if _, ok := toFloat(v); ok {
			return "number"
		}
		return "object"
	}
}

// generateDisplayName converts a field key to a "Display Name": the key is
// first normalized to CamelCase, then split on the case boundaries.
func generateDisplayName(key string) string {
	name := strcase.ToCamel(key)
	result := ""
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result += " "
		}
		result += string(r)
	}
	return result
}
