package domain

import (
	"encoding/json"
	"sort"
)

// Selection is an immutable set of selected record identifiers.
// The zero value is an empty selection. Every mutating method returns a new value.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection builds a selection from identifiers.
func NewSelection(ids ...string) Selection {
	return Selection{}.With(ids...)
}

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected identifiers.
func (s Selection) Len() int {
	return len(s.ids)
}

// IDs returns the identifiers in sorted order.
func (s Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// With returns a selection that additionally contains ids.
func (s Selection) With(ids ...string) Selection {
	next := s.clone(len(ids))
	for _, id := range ids {
		if id != "" {
			next.ids[id] = struct{}{}
		}
	}
	return next
}

// Without returns a selection with ids removed.
func (s Selection) Without(ids ...string) Selection {
	next := s.clone(0)
	for _, id := range ids {
		delete(next.ids, id)
	}
	return next
}

// Retain returns a selection holding only the ids for which keep is true.
func (s Selection) Retain(keep func(id string) bool) Selection {
	next := Selection{ids: make(map[string]struct{}, len(s.ids))}
	for id := range s.ids {
		if keep(id) {
			next.ids[id] = struct{}{}
		}
	}
	return next
}

// Equal reports whether both selections hold the same identifiers.
func (s Selection) Equal(other Selection) bool {
	if s.Len() != other.Len() {
		return false
	}
	for id := range s.ids {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

func (s Selection) clone(extra int) Selection {
	next := Selection{ids: make(map[string]struct{}, len(s.ids)+extra)}
	for id := range s.ids {
		next.ids[id] = struct{}{}
	}
	return next
}

// MarshalJSON encodes the selection as a sorted array of identifiers.
func (s Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON decodes an array of identifiers.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewSelection(ids...)
	return nil
}
