package flowgrid_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/flowgrid"
	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accountDoc = `---
label: Account
fields:
  - name: Name
    label: Account Name
    type: string
    editable: true
  - name: CreatedDate
    label: Created
    type: datetime
---
Customer accounts.`

func TestNew_LoamRepository(t *testing.T) {
	repoPath := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "Account.md"), []byte(accountDoc), 0644))

	eng, err := flowgrid.New(repoPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(repoPath), eng.Name)

	objects, err := eng.Objects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Account"}, objects)

	state, err := eng.Start(context.Background(), "g", domain.Config{
		ObjectName: "Account",
		Fields:     []string{"Name", "CreatedDate"},
	}, []domain.Record{{"Id": "1", "Name": "Acme", "CreatedDate": "2024-03-05T17:30:00Z"}})
	require.NoError(t, err)
	require.Empty(t, state.MetadataError)
	require.Len(t, state.Columns, 2)
	assert.Equal(t, "Account Name", state.Columns[0].Label)

	view := eng.Project(context.Background(), state)
	cell, ok := view.Rows[0].Cell("CreatedDate")
	require.True(t, ok)
	assert.Equal(t, "3/5/2024, 5:30:00 PM", cell.Display)
}

func TestNew_RequiresSource(t *testing.T) {
	_, err := flowgrid.New("")
	assert.ErrorContains(t, err, "repoPath is required")
}

type failingProvider struct{}

func (failingProvider) DescribeFields(ctx context.Context, objectName string, fields []string) ([]domain.FieldMetadata, error) {
	return nil, errors.New("service unavailable")
}

func TestEngine_MetadataFailureHook(t *testing.T) {
	var got *domain.MetadataError
	eng, err := flowgrid.New("", flowgrid.WithMetadataProvider(failingProvider{}), flowgrid.WithLifecycleHooks(domain.LifecycleHooks{
		OnMetadataError: func(ctx context.Context, e *domain.MetadataError) { got = e },
	}))
	require.NoError(t, err)

	state, err := eng.Start(context.Background(), "g", domain.Config{ObjectName: "Lead", Fields: []string{"Name"}}, nil)
	require.NoError(t, err)
	assert.Empty(t, state.Columns)
	assert.Contains(t, state.MetadataError, "service unavailable")
	require.NotNil(t, got)
	assert.Equal(t, "Lead", got.ObjectName)

	_, err = eng.Objects(context.Background())
	assert.Error(t, err, "failingProvider cannot enumerate objects")
}

func TestEngine_WithLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	eng, err := flowgrid.New("", flowgrid.WithMetadataProvider(failingProvider{}), flowgrid.WithLocation(loc))
	require.NoError(t, err)

	col := domain.ColumnDescriptor{FieldAPIName: "At", DataType: domain.DataTypeDateTime}
	assert.Equal(t, "3/5/2024, 2:30:00 PM", eng.Format("2024-03-05T17:30:00Z", col))
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(flowgrid.Version))
}
