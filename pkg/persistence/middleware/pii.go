package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/ports"
)

// Mask replaces values of sensitive fields in persisted states.
const Mask = "***"

type piiMiddleware struct {
	next     ports.StateStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks record values and pending
// edits whose field name matches any of the patterns. Record identifiers are
// never masked. Masking is one way: a grid loaded back carries the mask.
func NewPIIMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, 0, len(patternStrings))
	for _, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid mask pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}
	return func(next ports.StateStore) ports.StateStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) Save(ctx context.Context, gridID string, state *domain.State) error {
	if len(m.patterns) == 0 {
		return m.next.Save(ctx, gridID, state)
	}

	// The engine keeps using state after Save; work on a copy.
	masked := state.Snapshot()
	masked.Records = make([]domain.Record, len(state.Records))
	for i, r := range state.Records {
		masked.Records[i] = domain.Record(m.maskMap(r))
	}

	edits := domain.EditLedger{}
	for _, id := range state.Edits.IDs() {
		for field, v := range state.Edits.Fields(id) {
			if m.sensitive(field) {
				v = Mask
			}
			edits = edits.Set(id, field, v)
		}
	}
	masked.Edits = edits

	return m.next.Save(ctx, gridID, masked)
}

func (m *piiMiddleware) Load(ctx context.Context, gridID string) (*domain.State, error) {
	return m.next.Load(ctx, gridID)
}

func (m *piiMiddleware) Delete(ctx context.Context, gridID string) error {
	return m.next.Delete(ctx, gridID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *piiMiddleware) sensitive(key string) bool {
	if key == domain.IDField {
		return false
	}
	for _, p := range m.patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}

// maskMap returns a masked deep copy of a record or nested object.
func (m *piiMiddleware) maskMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		switch {
		case m.sensitive(k):
			out[k] = Mask
		default:
			switch sub := v.(type) {
			case map[string]any:
				out[k] = m.maskMap(sub)
			case domain.Record:
				out[k] = domain.Record(m.maskMap(sub))
			default:
				out[k] = v
			}
		}
	}
	return out
}
