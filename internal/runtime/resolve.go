package runtime

import (
	"strings"

	"github.com/aretw0/flowgrid/pkg/domain"
)

// Resolve reads a possibly dot-separated field path from a record.
//
// A path without dots is a direct lookup. Otherwise each segment descends one
// level into a nested map; a missing or null intermediate yields nil.
func Resolve(rec domain.Record, path string) any {
	if rec == nil || path == "" {
		return nil
	}
	if !strings.Contains(path, ".") {
		return rec[path]
	}

	var current any = map[string]any(rec)
	for _, segment := range strings.Split(path, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil
		}
		current = m[segment]
		if current == nil {
			return nil
		}
	}
	return current
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case domain.Record:
		return m, true
	default:
		return nil, false
	}
}

// effectiveValue is the pending edit for a cell if one exists, else the raw value.
func effectiveValue(rec domain.Record, field string, edits domain.EditLedger) any {
	if v, ok := edits.Get(rec.ID(), field); ok {
		return v
	}
	return Resolve(rec, field)
}

// linkTarget resolves the identifier of the related record behind a
// relationship cell. It is empty when the column is not a relationship or the
// identifier sub-field is absent.
func linkTarget(rec domain.Record, col domain.ColumnDescriptor) string {
	if !col.IsRelationship || col.RelationshipIDField == "" {
		return ""
	}
	return stringify(Resolve(rec, col.RelationshipIDField))
}
