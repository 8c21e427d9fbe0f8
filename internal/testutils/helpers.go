package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupMetadataRepo initializes a Loam repository in a temp dir holding the
// given object documents (file name to content). It returns the absolute
// directory and the repository, failing the test on any error.
func SetupMetadataRepo(t *testing.T, objects map[string]string, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)

	repo, err := loam.Init(dir, opts...)
	require.NoError(t, err, "init metadata repo")

	for name, content := range objects {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644), "write %s", name)
	}
	return dir, repo
}
