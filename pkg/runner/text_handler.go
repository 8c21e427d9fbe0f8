package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/aretw0/flowgrid/pkg/domain"
)

// TextHandler implements the line-based interactive interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ViewRenderer
	Prompt   string

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the view renderer.
func WithTextHandlerRenderer(renderer ViewRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerPrompt overrides the "> " prompt.
func WithTextHandlerPrompt(prompt string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Prompt = prompt
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		Prompt: "> ",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump reads lines in the background so Input can honour context cancellation.
func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				h.inputChan <- inputResult{err: err}
			}
			close(h.inputChan)
			return
		}
	}
}

func (h *TextHandler) Render(ctx context.Context, view *domain.View) error {
	if h.Renderer != nil {
		out, err := h.Renderer(view)
		if err == nil {
			_, err = fmt.Fprintln(h.Writer, strings.TrimRight(out, "\n"))
			return err
		}
	}
	return writePlainView(h.Writer, view)
}

func (h *TextHandler) Actions(ctx context.Context, actions []domain.ActionRequest) error {
	for _, act := range actions {
		switch p := act.Payload.(type) {
		case domain.NavigationRequest:
			fmt.Fprintf(h.Writer, "-> navigate to %s\n", p.RecordID)
		case domain.EditingCursor:
			fmt.Fprintf(h.Writer, "-> focus %s.%s (confirm with \"focused\")\n", p.RecordID, p.Field)
		case domain.Outputs:
			fmt.Fprintf(h.Writer, "-> outputs changed: %d selected, %d edited\n", p.SelectedCount, len(p.EditedRecords))
		default:
			fmt.Fprintf(h.Writer, "-> %s\n", act.Type)
		}
	}
	return nil
}

func (h *TextHandler) Outputs(ctx context.Context, outputs domain.Outputs) error {
	fmt.Fprintf(h.Writer, "selected_count: %d\n", outputs.SelectedCount)
	fmt.Fprintln(h.Writer, "selected_records:")
	for _, rec := range outputs.SelectedRecords {
		fmt.Fprintf(h.Writer, "  - %s\n", rec.ID())
	}
	fmt.Fprintln(h.Writer, "edited_records:")
	for _, rec := range outputs.EditedRecords {
		fmt.Fprintf(h.Writer, "  - %v\n", map[string]any(rec))
	}
	return nil
}

func (h *TextHandler) Input(ctx context.Context) (Command, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return Command{}, ctx.Err()
		default:
			fmt.Fprint(h.Writer, h.Prompt)
		}

		select {
		case <-ctx.Done():
			return Command{}, ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return Command{}, io.EOF
			}
			if res.err != nil {
				return Command{}, res.err
			}

			clean, err := SanitizeInput(strings.TrimSpace(res.text))
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			cmd, err := ParseCommand(clean)
			if errors.Is(err, ErrEmptyCommand) {
				continue
			}
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v\n", err)
				continue
			}
			return cmd, nil
		}
	}
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "[System] %s\n", msg)
	return err
}

// writePlainView is the fallback when no renderer is configured.
func writePlainView(w io.Writer, view *domain.View) error {
	if view.MetadataError != "" {
		fmt.Fprintf(w, "! %s\n", view.MetadataError)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := []string{"#", "SEL", "ID"}
	for _, c := range view.Columns {
		label := c.Label
		switch c.Sorted {
		case domain.SortAscending:
			label += " ^"
		case domain.SortDescending:
			label += " v"
		}
		header = append(header, label)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range view.Rows {
		sel := " "
		if row.Selected {
			sel = "x"
		}
		line := []string{fmt.Sprint(row.Number), "[" + sel + "]", row.RecordID}
		for _, cell := range row.Cells {
			text := cell.Display
			if cell.Editing {
				text = "[" + text + "]"
			} else if cell.Edited {
				text += "*"
			}
			line = append(line, text)
		}
		fmt.Fprintln(tw, strings.Join(line, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d of %d rows, %d selected\n", len(view.Rows), view.TotalRecords, view.Outputs.SelectedCount)
	return err
}
