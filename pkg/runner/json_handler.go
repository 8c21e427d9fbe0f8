package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/flowgrid/pkg/domain"
)

// JSONHandler implements IOHandler over JSON Lines: one domain.Event per input
// line, one tagged message per output line.
type JSONHandler struct {
	Reader  *bufio.Reader
	Encoder *json.Encoder
}

// Message is one line written by the JSONHandler.
type Message struct {
	Kind    string                 `json:"kind"`
	View    *domain.View           `json:"view,omitempty"`
	Actions []domain.ActionRequest `json:"actions,omitempty"`
	Outputs *domain.Outputs        `json:"outputs,omitempty"`
	Message string                 `json:"message,omitempty"`
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Render(ctx context.Context, view *domain.View) error {
	return h.Encoder.Encode(Message{Kind: "view", View: view})
}

func (h *JSONHandler) Actions(ctx context.Context, actions []domain.ActionRequest) error {
	if len(actions) == 0 {
		return nil
	}
	return h.Encoder.Encode(Message{Kind: "actions", Actions: actions})
}

func (h *JSONHandler) Outputs(ctx context.Context, outputs domain.Outputs) error {
	return h.Encoder.Encode(Message{Kind: "outputs", Outputs: &outputs})
}

// Input reads the next event. Lines may also hold a bare meta command
// ("view", "outputs", "quit") as a JSON string or plain text.
func (h *JSONHandler) Input(ctx context.Context) (Command, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Command{}, err
		}
		line, err := h.Reader.ReadString('\n')
		text := strings.TrimSpace(line)
		if text == "" {
			if err != nil {
				return Command{}, err
			}
			continue
		}

		if strings.HasPrefix(text, "{") {
			var ev domain.Event
			if decErr := json.Unmarshal([]byte(text), &ev); decErr != nil {
				if err := h.SystemOutput(ctx, fmt.Sprintf("invalid event: %v", decErr)); err != nil {
					return Command{}, err
				}
				continue
			}
			return Command{Kind: CommandEvent, Event: ev, HasValue: ev.Type != domain.EventTab || ev.Value != nil}, nil
		}

		var s string
		if json.Unmarshal([]byte(text), &s) == nil {
			text = s
		}
		cmd, perr := ParseCommand(text)
		if perr != nil {
			if err := h.SystemOutput(ctx, perr.Error()); err != nil {
				return Command{}, err
			}
			continue
		}
		return cmd, nil
	}
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(Message{Kind: "system", Message: msg})
}
