package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/flowgrid"
	"github.com/aretw0/flowgrid/internal/logging"
	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/runner"
	"github.com/aretw0/flowgrid/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	gridsURI        = "flowgrid://grids"
	gridTemplateURI = "flowgrid://grids/{id}"
)

// GridResponse is returned by every tool that touches a grid.
type GridResponse struct {
	View    *domain.View           `json:"view" jsonschema_description:"The projected grid view"`
	Actions []domain.ActionRequest `json:"actions" jsonschema_description:"Side effects requested from the host"`
	Changed bool                   `json:"changed" jsonschema_description:"Whether the grid state changed"`
}

// OpenGridArgs are the arguments of open_grid.
type OpenGridArgs struct {
	GridID  string          `json:"grid_id,omitempty"`
	Config  domain.Config   `json:"config"`
	Records []domain.Record `json:"records"`
}

// ApplyEventArgs are the arguments of apply_event.
type ApplyEventArgs struct {
	GridID string       `json:"grid_id"`
	Event  domain.Event `json:"event"`
}

// GridArgs identify a grid.
type GridArgs struct {
	GridID string `json:"grid_id"`
}

// Server exposes grid sessions as MCP tools and resources.
type Server struct {
	sessions  *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		sessions: sessions,
		logger:   logger,
		mcpServer: server.NewMCPServer("flowgrid-mcp", strings.TrimSpace(flowgrid.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on the given port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("open_grid",
		mcp.WithDescription("Open a grid session over a record collection and return its first view."),
		mcp.WithString("grid_id", mcp.Description("Session identifier; generated when omitted")),
		mcp.WithObject("config", mcp.Required(), mcp.Description("Grid configuration: object_name, fields, selection_mode, inline_edit, search_enabled, editable_fields, custom_labels")),
		mcp.WithArray("records", mcp.Description("Records to display, each with an Id"), mcp.Items(map[string]any{"type": "object"})),
		mcp.WithOutputSchema[GridResponse](),
	), mcp.NewStructuredToolHandler(s.handleOpenGrid))

	s.mcpServer.AddTool(mcp.NewTool("apply_event",
		mcp.WithDescription("Apply one interaction (toggle_selection, set_edit, set_search, sort_by, tab, ...) to a grid."),
		mcp.WithString("grid_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithObject("event", mcp.Required(), mcp.Description("Event with a type and the fields that type reads: record_id, field, value, term, direction, backward, records")),
		mcp.WithOutputSchema[GridResponse](),
	), mcp.NewStructuredToolHandler(s.handleApplyEvent))

	s.mcpServer.AddTool(mcp.NewTool("get_view",
		mcp.WithDescription("Return the current view of a grid."),
		mcp.WithString("grid_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithOutputSchema[GridResponse](),
	), mcp.NewStructuredToolHandler(s.handleGetView))

	s.mcpServer.AddTool(mcp.NewTool("get_outputs",
		mcp.WithDescription("Return the workflow outputs of a grid: selected records, selection count and edited records."),
		mcp.WithString("grid_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithOutputSchema[domain.Outputs](),
	), mcp.NewStructuredToolHandler(s.handleGetOutputs))
}

func (s *Server) handleOpenGrid(ctx context.Context, request mcp.CallToolRequest, args OpenGridArgs) (GridResponse, error) {
	state, err := s.sessions.Open(ctx, args.GridID, args.Config, args.Records)
	if err != nil {
		return GridResponse{}, fmt.Errorf("open failed: %w", err)
	}
	return GridResponse{
		View:    s.sessions.Engine().Project(ctx, state),
		Actions: []domain.ActionRequest{},
		Changed: true,
	}, nil
}

func (s *Server) handleApplyEvent(ctx context.Context, request mcp.CallToolRequest, args ApplyEventArgs) (GridResponse, error) {
	if args.GridID == "" {
		return GridResponse{}, errors.New("grid_id is required")
	}

	ev, err := runner.SanitizeEvent(args.Event)
	if err != nil {
		s.logger.Warn("MCP apply_event: input rejected", "grid_id", args.GridID, "err", err)
		return GridResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	update, err := s.sessions.Apply(ctx, args.GridID, ev)
	if err != nil {
		return GridResponse{}, fmt.Errorf("apply failed: %w", err)
	}

	actions := update.Actions
	if actions == nil {
		actions = []domain.ActionRequest{}
	}
	return GridResponse{
		View:    s.sessions.Engine().Project(ctx, update.State),
		Actions: actions,
		Changed: update.Changed(),
	}, nil
}

func (s *Server) handleGetView(ctx context.Context, request mcp.CallToolRequest, args GridArgs) (GridResponse, error) {
	view, err := s.sessions.View(ctx, args.GridID)
	if err != nil {
		return GridResponse{}, err
	}
	return GridResponse{View: view, Actions: []domain.ActionRequest{}}, nil
}

func (s *Server) handleGetOutputs(ctx context.Context, request mcp.CallToolRequest, args GridArgs) (domain.Outputs, error) {
	return s.sessions.Outputs(ctx, args.GridID)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(gridsURI, "Open grid sessions",
		mcp.WithResourceDescription("Identifiers of the stored grid sessions"),
		mcp.WithMIMEType("application/json"),
	), s.readGrids)

	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(gridTemplateURI, "Grid view",
		mcp.WithTemplateDescription("Current view of one grid session"),
		mcp.WithTemplateMIMEType("application/json"),
	), s.readGrid)
}

func (s *Server) readGrids(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ids, err := s.sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list grids: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return jsonContents(gridsURI, ids)
}

func (s *Server) readGrid(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	gridID := strings.TrimPrefix(uri, gridsURI+"/")
	if gridID == "" || gridID == uri {
		return nil, fmt.Errorf("invalid grid resource: %s", uri)
	}
	view, err := s.sessions.View(ctx, gridID)
	if err != nil {
		return nil, err
	}
	return jsonContents(uri, view)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
