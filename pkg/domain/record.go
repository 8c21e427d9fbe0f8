package domain

import "fmt"

// IDField is the field that uniquely identifies a Record.
const IDField = "Id"

// Record is an opaque mapping from field name to scalar or nested-object value.
// Records are owned by the host and are never mutated in place by the engine.
type Record map[string]any

// ID returns the record identifier, or "" when the record carries none.
func (r Record) ID() string {
	v, ok := r[IDField]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// IndexRecords maps record identifiers to records. Records without an
// identifier are skipped; on duplicates the first occurrence wins.
func IndexRecords(records []Record) map[string]Record {
	idx := make(map[string]Record, len(records))
	for _, r := range records {
		id := r.ID()
		if id == "" {
			continue
		}
		if _, exists := idx[id]; !exists {
			idx[id] = r
		}
	}
	return idx
}
