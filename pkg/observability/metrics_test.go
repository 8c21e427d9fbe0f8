package observability_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *observability.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics(false)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnEventApplied(ctx, &domain.AppliedEvent{Type: domain.EventToggleSelection, Changed: true})
	hooks.OnEventApplied(ctx, &domain.AppliedEvent{Type: domain.EventToggleSelection, Changed: true})
	hooks.OnEventApplied(ctx, &domain.AppliedEvent{Type: domain.EventBlur, Changed: false})
	hooks.OnProjected(ctx, &domain.ProjectionEvent{VisibleRows: 3, Duration: time.Millisecond})
	hooks.OnMetadataError(ctx, &domain.MetadataError{ObjectName: "Account", Err: errors.New("boom")})

	body := scrape(t, m)
	assert.Contains(t, body, `flowgrid_events_total{changed="true",type="toggle_selection"} 2`)
	assert.Contains(t, body, `flowgrid_events_total{changed="false",type="blur"} 1`)
	assert.Contains(t, body, `flowgrid_projections_total 1`)
	assert.Contains(t, body, `flowgrid_visible_rows_count 1`)
	assert.Contains(t, body, `flowgrid_metadata_errors_total{object="Account"} 1`)
	assert.NotContains(t, body, "go_goroutines")
}

func TestMetrics_RuntimeCollectors(t *testing.T) {
	body := scrape(t, observability.NewMetrics(true))
	assert.Contains(t, body, "go_goroutines")
}

func TestCombine(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnEventApplied: func(context.Context, *domain.AppliedEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnEventApplied:  func(context.Context, *domain.AppliedEvent) { calls = append(calls, "b") },
		OnMetadataError: func(context.Context, *domain.MetadataError) { calls = append(calls, "b-meta") },
	}

	hooks := observability.Combine(a, domain.LifecycleHooks{}, b)
	hooks.OnEventApplied(context.Background(), &domain.AppliedEvent{})
	hooks.OnMetadataError(context.Background(), &domain.MetadataError{})

	assert.Nil(t, hooks.OnProjected)
	assert.Equal(t, []string{"a", "b", "b-meta"}, calls)
}

func TestLoggingHooks(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hooks := observability.LoggingHooks(logger)

	hooks.OnEventApplied(context.Background(), &domain.AppliedEvent{GridID: "g", Type: domain.EventSetSearch, Revision: 2, Changed: true})
	hooks.OnMetadataError(context.Background(), &domain.MetadataError{ObjectName: "Lead", Err: errors.New("offline")})

	out := buf.String()
	assert.Contains(t, out, "event_applied")
	assert.Contains(t, out, "type=set_search")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "object=Lead")
}
