package process

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("hooks are exercised through sh")
	}
}

func TestRunner_Dispatch(t *testing.T) {
	requireShell(t)

	var out bytes.Buffer
	runner := NewRunner(WithStdout(&out))
	runner.Register(domain.ActionNavigate, "sh", "-c", `echo "$FLOWGRID_ACTION $FLOWGRID_RECORD_ID"`)
	runner.Register(domain.ActionFocusCell, "sh", "-c", `echo "$FLOWGRID_PAYLOAD"`)

	t.Run("Passes Payload Fields Via Env", func(t *testing.T) {
		out.Reset()
		err := runner.Dispatch(context.Background(), domain.ActionRequest{
			Type:    domain.ActionNavigate,
			Payload: domain.NavigationRequest{RecordID: "001A"},
		})
		require.NoError(t, err)
		assert.Equal(t, "NAVIGATE 001A\n", out.String())
	})

	t.Run("Passes Raw Payload", func(t *testing.T) {
		out.Reset()
		err := runner.Dispatch(context.Background(), domain.ActionRequest{
			Type:    domain.ActionFocusCell,
			Payload: domain.EditingCursor{RecordID: "r2", Field: "Amount"},
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"record_id":"r2","field":"Amount"}`, out.String())
	})

	t.Run("Fails For Unregistered Action", func(t *testing.T) {
		err := runner.Dispatch(context.Background(), domain.ActionRequest{Type: domain.ActionOutputsChanged})
		assert.ErrorIs(t, err, ErrNotRegistered)
	})

	assert.Equal(t, []string{domain.ActionFocusCell, domain.ActionNavigate}, runner.Actions())
}

func TestRunner_FailureCarriesStderr(t *testing.T) {
	requireShell(t)

	runner := NewRunner()
	runner.Register("BOOM", "sh", "-c", "echo broken >&2; exit 3")

	err := runner.Dispatch(context.Background(), domain.ActionRequest{Type: "BOOM"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hook BOOM failed")
	assert.Contains(t, err.Error(), "broken")
}

func TestRunner_Timeout(t *testing.T) {
	requireShell(t)

	runner := NewRunner(WithTimeout(100 * time.Millisecond))
	runner.Register("SLOW", "sh", "-c", "exec sleep 5")

	start := time.Now()
	err := runner.Dispatch(context.Background(), domain.ActionRequest{Type: "SLOW"})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestLoadHooks(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "hooks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
hooks:
  - action: navigate
    command: sh
    args: ["-c", "echo first"]
  - action: NAVIGATE
    command: sh
    args: ["-c", "echo $GREETING $FLOWGRID_RECORD_ID"]
    env: {GREETING: open}
`), 0o644))

	hooks, err := LoadHooks(path)
	require.NoError(t, err)
	require.Len(t, hooks, 1, "a later hook replaces the earlier one")
	assert.Equal(t, domain.ActionNavigate, hooks[0].Action)

	var out bytes.Buffer
	runner := NewRunner(WithHooks(hooks), WithBaseDir(dir), WithStdout(&out))
	require.NoError(t, runner.Dispatch(context.Background(), domain.ActionRequest{
		Type:    domain.ActionNavigate,
		Payload: domain.NavigationRequest{RecordID: "42"},
	}))
	assert.Equal(t, "open 42\n", out.String())

	jsonPath := filepath.Join(dir, "hooks.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"hooks":[{"action":"FOCUS_CELL"}]}`), 0o644))
	_, err = LoadHooks(jsonPath)
	assert.ErrorContains(t, err, "hook #1")

	_, err = LoadHooks(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "RECORD_ID", envKey("record_id"))
	assert.Equal(t, "SELECTEDCOUNT", envKey("selectedCount"))
	assert.Equal(t, "A_B", envKey("a-b"))
}
