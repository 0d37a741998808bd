package core

// DeepCopyRecord clones a record recursively. Nested maps and slices are
// copied; scalar values are shared, which is safe because they are
// immutable.
func DeepCopyRecord(rec Record) Record {
	if rec == nil {
		return nil
	}
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = deepCopyValue(v)
	}
	return out
}

// DeepCopyRecords clones a record slice recursively.
func DeepCopyRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = DeepCopyRecord(rec)
	}
	return out
}

// ShallowCopyRecord clones the top level of a record only.
func ShallowCopyRecord(rec Record) Record {
	if rec == nil {
		return nil
	}
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return DeepCopyRecord(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	case []Record:
		return DeepCopyRecords(val)
	default:
		return v
	}
}
