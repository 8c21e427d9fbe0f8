package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "flowgrid version "))
}

func TestRenderAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
grid: {object_name: Task, fields: [Title], selection_mode: single}
records: [{Id: t1, Title: Write docs}, {Id: t2, Title: Ship}]
objects:
  Task: [{name: Title, label: Task Title}]
`), 0o644))

	out, err := execute(t, "render", path, "--format", "markdown", "--do", "toggle t2")
	require.NoError(t, err)
	assert.Contains(t, out, "| 2 | [x] | Ship |")

	out, err = execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "grid definition is valid")
}
