package tui

import (
	"os"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/runner"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 100

type rendererConfig struct {
	style string
	width int
}

// RendererOption configures NewRenderer.
type RendererOption func(*rendererConfig)

// WithStyle selects a glamour standard style ("dark", "light", "notty", ...).
// Without it the style follows the terminal background.
func WithStyle(style string) RendererOption {
	return func(c *rendererConfig) { c.style = style }
}

// WithWidth sets the word-wrap width.
func WithWidth(width int) RendererOption {
	return func(c *rendererConfig) { c.width = width }
}

// NewRenderer returns a view renderer that draws the grid as a Markdown
// table through glamour.
func NewRenderer(opts ...RendererOption) (runner.ViewRenderer, error) {
	cfg := rendererConfig{width: TerminalWidth(os.Stdout)}
	for _, opt := range opts {
		opt(&cfg)
	}

	styleOpt := glamour.WithAutoStyle()
	if cfg.style != "" {
		styleOpt = glamour.WithStandardStyle(cfg.style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(cfg.width))
	if err != nil {
		return nil, err
	}

	return func(v *domain.View) (string, error) {
		return r.Render(Markdown(v))
	}, nil
}

// TerminalWidth returns the column count of f, or DefaultWidth when f is
// not a terminal.
func TerminalWidth(f *os.File) int {
	if f == nil {
		return DefaultWidth
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return DefaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
