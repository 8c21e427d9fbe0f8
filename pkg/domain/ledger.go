package domain

import "encoding/json"

// EditLedger holds pending, unsaved field edits per record.
//
// It is immutable: Set, Unset, Drop and Retain return a new ledger and never
// touch the receiver. Records are kept in the order of their first edit, and a
// record is present only while it has at least one pending field.
type EditLedger struct {
	order  []string
	fields map[string]map[string]any
}

// Len returns the number of records with pending edits.
func (l EditLedger) Len() int {
	return len(l.order)
}

// Has reports whether the record has at least one pending edit.
func (l EditLedger) Has(recordID string) bool {
	_, ok := l.fields[recordID]
	return ok
}

// Get returns the pending value for a record field.
func (l EditLedger) Get(recordID, field string) (any, bool) {
	fields, ok := l.fields[recordID]
	if !ok {
		return nil, false
	}
	v, ok := fields[field]
	return v, ok
}

// Fields returns a copy of the pending fields of a record.
func (l EditLedger) Fields(recordID string) map[string]any {
	fields, ok := l.fields[recordID]
	if !ok {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// IDs returns the edited record identifiers in first-edit order.
func (l EditLedger) IDs() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Set returns a ledger with the field set (or overwritten) to value.
func (l EditLedger) Set(recordID, field string, value any) EditLedger {
	next := l.shallow()
	fields := make(map[string]any, len(l.fields[recordID])+1)
	for k, v := range l.fields[recordID] {
		fields[k] = v
	}
	fields[field] = value
	if _, existed := l.fields[recordID]; !existed {
		next.order = append(next.order, recordID)
	}
	next.fields[recordID] = fields
	return next
}

// Unset returns a ledger without the field; the record entry is pruned when it
// has no pending fields left.
func (l EditLedger) Unset(recordID, field string) EditLedger {
	current, ok := l.fields[recordID]
	if !ok {
		return l
	}
	if _, ok := current[field]; !ok {
		return l
	}
	if len(current) == 1 {
		return l.Drop(recordID)
	}
	next := l.shallow()
	fields := make(map[string]any, len(current)-1)
	for k, v := range current {
		if k != field {
			fields[k] = v
		}
	}
	next.fields[recordID] = fields
	return next
}

// Drop returns a ledger without the given records.
func (l EditLedger) Drop(recordIDs ...string) EditLedger {
	drop := make(map[string]struct{}, len(recordIDs))
	for _, id := range recordIDs {
		drop[id] = struct{}{}
	}
	return l.Retain(func(id string) bool {
		_, gone := drop[id]
		return !gone
	})
}

// Retain returns a ledger holding only the records for which keep is true.
func (l EditLedger) Retain(keep func(recordID string) bool) EditLedger {
	next := EditLedger{fields: make(map[string]map[string]any, len(l.fields))}
	for _, id := range l.order {
		if keep(id) {
			next.order = append(next.order, id)
			next.fields[id] = l.fields[id]
		}
	}
	return next
}

// shallow copies the index; inner field maps are shared and must be replaced,
// never written, by callers.
func (l EditLedger) shallow() EditLedger {
	next := EditLedger{
		order:  make([]string, len(l.order), len(l.order)+1),
		fields: make(map[string]map[string]any, len(l.fields)+1),
	}
	copy(next.order, l.order)
	for k, v := range l.fields {
		next.fields[k] = v
	}
	return next
}

type ledgerEntry struct {
	RecordID string         `json:"record_id"`
	Fields   map[string]any `json:"fields"`
}

// MarshalJSON encodes the ledger as an ordered array of entries.
func (l EditLedger) MarshalJSON() ([]byte, error) {
	entries := make([]ledgerEntry, 0, len(l.order))
	for _, id := range l.order {
		entries = append(entries, ledgerEntry{RecordID: id, Fields: l.fields[id]})
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes an ordered array of entries, skipping empty ones.
func (l *EditLedger) UnmarshalJSON(data []byte) error {
	var entries []ledgerEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	next := EditLedger{}
	for _, e := range entries {
		for field, v := range e.Fields {
			next = next.Set(e.RecordID, field, v)
		}
	}
	*l = next
	return nil
}
