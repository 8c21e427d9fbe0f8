package runtime

import (
	"cmp"
	"slices"
	"strings"

	"github.com/aretw0/flowgrid/pkg/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DeriveView filters and sorts the raw records into display order.
//
// Filtering keeps a record when any column's effective value contains the
// search term, case-insensitively. Sorting is stable, uses effective values and
// always places nulls last; the direction only affects non-null comparisons.
// The input slice is never reordered.
func DeriveView(records []domain.Record, columns []domain.ColumnDescriptor, edits domain.EditLedger, search string, sort domain.SortState) []domain.Record {
	out := make([]domain.Record, 0, len(records))

	term := strings.ToLower(search)
	for _, rec := range records {
		if term == "" || matches(rec, columns, edits, term) {
			out = append(out, rec)
		}
	}

	if !sort.Active() {
		return out
	}

	// Collators keep internal buffers, so each derivation gets its own.
	coll := collate.New(language.English)
	sign := 1
	if sort.Direction == domain.SortDescending {
		sign = -1
	}

	slices.SortStableFunc(out, func(a, b domain.Record) int {
		va := effectiveValue(a, sort.Field, edits)
		vb := effectiveValue(b, sort.Field, edits)
		switch {
		case va == nil && vb == nil:
			return 0
		case va == nil:
			return 1
		case vb == nil:
			return -1
		}
		return sign * compareValues(coll, va, vb)
	})
	return out
}

func matches(rec domain.Record, columns []domain.ColumnDescriptor, edits domain.EditLedger, term string) bool {
	for _, col := range columns {
		v := effectiveValue(rec, col.FieldAPIName, edits)
		if v == nil {
			continue
		}
		if strings.Contains(strings.ToLower(stringify(v)), term) {
			return true
		}
	}
	return false
}

// compareValues orders two non-null values. Strings use locale-aware
// collation; numbers and booleans compare naturally.
func compareValues(coll *collate.Collator, a, b any) int {
	_, aStr := a.(string)
	_, bStr := b.(string)
	if aStr || bStr {
		return coll.CompareString(stringify(a), stringify(b))
	}
	if na, ok := toNumber(a); ok {
		if nb, ok := toNumber(b); ok {
			return cmp.Compare(na, nb)
		}
	}
	return strings.Compare(stringify(a), stringify(b))
}

func setSearch(s *domain.State, term string) *domain.State {
	if !s.Config.SearchEnabled || s.Search == term {
		return s
	}
	next := s.Snapshot()
	next.Search = term
	return next
}

// sortBy cycles a header click: a new field sorts ascending, the active field
// flips direction.
func sortBy(s *domain.State, field string) *domain.State {
	if _, ok := domain.FindColumn(s.Columns, field); !ok {
		return s
	}
	sort := domain.SortState{Field: field, Direction: domain.SortAscending}
	if s.Sort.Field == field {
		sort.Direction = direction(s.Sort.Direction).Flip()
	}
	next := s.Snapshot()
	next.Sort = sort
	return next
}

func setSort(s *domain.State, field string, dir domain.SortDirection) *domain.State {
	if field == "" {
		return clearSort(s)
	}
	if _, ok := domain.FindColumn(s.Columns, field); !ok {
		return s
	}
	sort := domain.SortState{Field: field, Direction: direction(dir)}
	if s.Sort == sort {
		return s
	}
	next := s.Snapshot()
	next.Sort = sort
	return next
}

func clearSort(s *domain.State) *domain.State {
	if !s.Sort.Active() {
		return s
	}
	next := s.Snapshot()
	next.Sort = domain.SortState{}
	return next
}

func direction(d domain.SortDirection) domain.SortDirection {
	if d == domain.SortDescending {
		return d
	}
	return domain.SortAscending
}
