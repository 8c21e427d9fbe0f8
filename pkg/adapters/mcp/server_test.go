package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/flowgrid/internal/runtime"
	"github.com/aretw0/flowgrid/pkg/adapters/memory"
	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	eng := runtime.NewEngine(memory.NewProvider(map[string][]domain.FieldMetadata{
		"Contact": {
			{FieldAPIName: "Name", Label: "Full Name", DataType: domain.DataTypeString, IsEditable: true},
			{FieldAPIName: "Email", Label: "Email", DataType: domain.DataTypeEmail},
		},
	}))
	return NewServer(session.NewManager(eng, memory.NewStore()), nil)
}

func openArgs() OpenGridArgs {
	return OpenGridArgs{
		GridID: "contacts",
		Config: domain.Config{
			ObjectName:    "Contact",
			Fields:        []string{"Name", "Email"},
			SelectionMode: domain.SelectionSingle,
			SearchEnabled: true,
		},
		Records: []domain.Record{
			{"Id": "c1", "Name": "Ada", "Email": "ada@example.com"},
			{"Id": "c2", "Name": "Grace", "Email": "grace@example.com"},
		},
	}
}

func TestTools_OpenApplyOutputs(t *testing.T) {
	ctx := context.Background()
	s := newTestServer()

	opened, err := s.handleOpenGrid(ctx, mcp.CallToolRequest{}, openArgs())
	require.NoError(t, err)
	assert.Equal(t, "contacts", opened.View.GridID)
	assert.Len(t, opened.View.Rows, 2)

	res, err := s.handleApplyEvent(ctx, mcp.CallToolRequest{}, ApplyEventArgs{
		GridID: "contacts",
		Event:  domain.Event{Type: domain.EventSetSearch, Term: "grace"},
	})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	require.Len(t, res.View.Rows, 1)
	assert.Equal(t, "c2", res.View.Rows[0].RecordID)

	res, err = s.handleApplyEvent(ctx, mcp.CallToolRequest{}, ApplyEventArgs{
		GridID: "contacts",
		Event:  domain.Event{Type: domain.EventToggleSelection, RecordID: "c2"},
	})
	require.NoError(t, err)
	require.Len(t, res.Actions, 1)
	assert.Equal(t, domain.ActionOutputsChanged, res.Actions[0].Type)

	outputs, err := s.handleGetOutputs(ctx, mcp.CallToolRequest{}, GridArgs{GridID: "contacts"})
	require.NoError(t, err)
	assert.Equal(t, 1, outputs.SelectedCount)

	view, err := s.handleGetView(ctx, mcp.CallToolRequest{}, GridArgs{GridID: "contacts"})
	require.NoError(t, err)
	assert.Equal(t, "grace", view.View.Search)
	assert.False(t, view.Changed)
}

func TestTools_Errors(t *testing.T) {
	ctx := context.Background()
	s := newTestServer()

	_, err := s.handleApplyEvent(ctx, mcp.CallToolRequest{}, ApplyEventArgs{Event: domain.Event{Type: domain.EventReset}})
	assert.Error(t, err)

	_, err = s.handleApplyEvent(ctx, mcp.CallToolRequest{}, ApplyEventArgs{GridID: "missing", Event: domain.Event{Type: domain.EventReset}})
	assert.ErrorIs(t, err, domain.ErrGridNotFound)

	_, err = s.handleGetView(ctx, mcp.CallToolRequest{}, GridArgs{GridID: "missing"})
	assert.ErrorIs(t, err, domain.ErrGridNotFound)

	_, err = s.handleOpenGrid(ctx, mcp.CallToolRequest{}, OpenGridArgs{Config: domain.Config{Fields: []string{"Name"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestResources(t *testing.T) {
	ctx := context.Background()
	s := newTestServer()
	_, err := s.handleOpenGrid(ctx, mcp.CallToolRequest{}, openArgs())
	require.NoError(t, err)

	contents, err := s.readGrids(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text := contents[0].(mcp.TextResourceContents)
	assert.Equal(t, gridsURI, text.URI)
	assert.JSONEq(t, `["contacts"]`, text.Text)

	var req mcp.ReadResourceRequest
	req.Params.URI = "flowgrid://grids/contacts"
	contents, err = s.readGrid(ctx, req)
	require.NoError(t, err)
	var view domain.View
	require.NoError(t, json.Unmarshal([]byte(contents[0].(mcp.TextResourceContents).Text), &view))
	assert.Equal(t, "contacts", view.GridID)
	assert.Equal(t, "Full Name", view.Columns[0].Label)

	req.Params.URI = gridsURI
	_, err = s.readGrid(ctx, req)
	assert.Error(t, err)
}

func TestToolsAreListed(t *testing.T) {
	s := newTestServer()
	msg := s.MCPServer().HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	for _, name := range []string{"open_grid", "apply_event", "get_view", "get_outputs"} {
		assert.Contains(t, string(data), `"name":"`+name+`"`)
	}
}
