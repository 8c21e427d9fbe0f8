package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/flowgrid/internal/presentation/tui"
	"github.com/aretw0/flowgrid/pkg/runner"
)

// Render formats understood by RenderGrid.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatOutputs  = "outputs"
)

// RenderGrid starts the grid of a definition, applies the given REPL
// commands in order and prints the result once.
func RenderGrid(ctx context.Context, opts RunOptions, format string, commands []string, w io.Writer) error {
	logger := createLogger(opts)

	def, err := loadDefinition(opts)
	if err != nil {
		return err
	}
	engine, err := createEngine(opts, def, logger)
	if err != nil {
		return err
	}

	gridID := opts.GridID
	if gridID == "" {
		gridID = "render"
	}
	state, err := engine.Start(ctx, gridID, def.Grid, def.Records)
	if err != nil {
		return err
	}

	for _, line := range commands {
		cmd, err := runner.ParseCommand(line)
		if err != nil {
			return fmt.Errorf("%q: %w", line, err)
		}
		if cmd.Kind != runner.CommandEvent {
			return fmt.Errorf("%q: only grid events can be applied", line)
		}
		ev, err := runner.SanitizeEvent(cmd.Event)
		if err != nil {
			return fmt.Errorf("%q: %w", line, err)
		}
		state, _, err = engine.Apply(ctx, state, ev)
		if err != nil {
			return fmt.Errorf("%q: %w", line, err)
		}
	}

	view := engine.Project(ctx, state)
	switch format {
	case FormatMarkdown:
		_, err = io.WriteString(w, tui.Markdown(view))
		return err
	case FormatJSON:
		return writeJSON(w, view)
	case FormatOutputs:
		return writeJSON(w, engine.Outputs(state))
	case FormatTable, "":
		var rendererOpts []tui.RendererOption
		if w != os.Stdout || !tui.IsTerminal(os.Stdout) {
			rendererOpts = append(rendererOpts, tui.WithStyle("notty"))
		}
		render, err := tui.NewRenderer(rendererOpts...)
		if err != nil {
			return err
		}
		text, err := render(view)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, text)
		return err
	default:
		return fmt.Errorf("unknown format %q (want table, markdown, json or outputs)", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
