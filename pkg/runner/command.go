package runner

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/aretw0/flowgrid/pkg/domain"
	"gopkg.in/yaml.v3"
)

// CommandKind distinguishes grid events from REPL meta commands.
type CommandKind int

const (
	CommandEvent CommandKind = iota
	CommandView
	CommandOutputs
	CommandHelp
	CommandQuit
)

// Command is one parsed line of interactive input.
type Command struct {
	Kind  CommandKind
	Event domain.Event

	// HasValue is false for a bare "tab": the runner then commits the value
	// currently shown in the cursor cell.
	HasValue bool
}

// ErrEmptyCommand is returned for blank lines.
var ErrEmptyCommand = errors.New("empty command")

// ErrUsage wraps malformed commands.
var ErrUsage = errors.New("usage")

// Help is the command reference printed by the "help" command.
const Help = `Commands:
  toggle <record>               select or deselect a row
  all                           select all visible rows (again to clear)
  clear                         clear the selection
  edit <record> <field> <value> stage a cell value
  discard [record]              drop staged edits (all when no record)
  search [term]                 filter rows (no term clears)
  sort <field> [asc|desc]       sort; without direction behaves like a header click
  unsort                        clear the sort
  start <record> <field>        open the cell editor
  blur | commit | cancel        close the cell editor
  tab [value] | backtab [value] commit and move to the next or previous row
  focused                       acknowledge a focus move
  open <record> <field>         follow a relationship link
  replace <yaml list>           replace the records
  reset                         restore the initial interaction state
  view | outputs | help | quit`

var commandAliases = map[string]string{
	"select":     "toggle",
	"select-all": "all",
	"find":       "search",
	"exit":       "quit",
	"shift-tab":  "backtab",
}

// ParseCommand turns a line of input into a Command.
func ParseCommand(line string) (Command, error) {
	name, rest := cut(strings.TrimSpace(line))
	if name == "" {
		return Command{}, ErrEmptyCommand
	}
	name = strings.ToLower(name)
	if alias, ok := commandAliases[name]; ok {
		name = alias
	}

	event := func(ev domain.Event) (Command, error) {
		return Command{Kind: CommandEvent, Event: ev}, nil
	}

	switch name {
	case "view":
		return Command{Kind: CommandView}, nil
	case "outputs":
		return Command{Kind: CommandOutputs}, nil
	case "help", "?":
		return Command{Kind: CommandHelp}, nil
	case "quit":
		return Command{Kind: CommandQuit}, nil

	case "toggle":
		id, _ := cut(rest)
		if id == "" {
			return Command{}, usage("toggle <record>")
		}
		return event(domain.Event{Type: domain.EventToggleSelection, RecordID: id})
	case "all":
		return event(domain.Event{Type: domain.EventSelectAll})
	case "clear":
		return event(domain.Event{Type: domain.EventClearSelection})

	case "edit":
		id, rest := cut(rest)
		field, raw := cut(rest)
		if id == "" || field == "" {
			return Command{}, usage("edit <record> <field> <value>")
		}
		return Command{
			Kind:     CommandEvent,
			Event:    domain.Event{Type: domain.EventSetEdit, RecordID: id, Field: field, Value: ParseValue(raw)},
			HasValue: true,
		}, nil
	case "discard":
		id, _ := cut(rest)
		return event(domain.Event{Type: domain.EventDiscardEdits, RecordID: id})

	case "search":
		return event(domain.Event{Type: domain.EventSetSearch, Term: rest})
	case "sort":
		field, rest := cut(rest)
		if field == "" {
			return Command{}, usage("sort <field> [asc|desc]")
		}
		dir, _ := cut(rest)
		switch strings.ToLower(dir) {
		case "":
			return event(domain.Event{Type: domain.EventSortBy, Field: field})
		case "asc", "desc":
			return event(domain.Event{Type: domain.EventSetSort, Field: field, Direction: domain.SortDirection(strings.ToLower(dir))})
		}
		return Command{}, usage("sort <field> [asc|desc]")
	case "unsort":
		return event(domain.Event{Type: domain.EventClearSort})

	case "start":
		id, rest := cut(rest)
		field, _ := cut(rest)
		if id == "" || field == "" {
			return Command{}, usage("start <record> <field>")
		}
		return event(domain.Event{Type: domain.EventStartEdit, RecordID: id, Field: field})
	case "blur":
		return event(domain.Event{Type: domain.EventBlur})
	case "commit":
		return event(domain.Event{Type: domain.EventCommit})
	case "cancel":
		return event(domain.Event{Type: domain.EventCancel})
	case "tab", "backtab":
		cmd := Command{Kind: CommandEvent, Event: domain.Event{Type: domain.EventTab, Backward: name == "backtab"}}
		if rest != "" {
			cmd.Event.Value = ParseValue(rest)
			cmd.HasValue = true
		}
		return cmd, nil
	case "focused":
		return event(domain.Event{Type: domain.EventFocusSettled})

	case "open":
		id, rest := cut(rest)
		field, _ := cut(rest)
		if id == "" || field == "" {
			return Command{}, usage("open <record> <field>")
		}
		return event(domain.Event{Type: domain.EventActivateLink, RecordID: id, Field: field})

	case "replace":
		var records []domain.Record
		if err := yaml.Unmarshal([]byte(rest), &records); err != nil {
			return Command{}, fmt.Errorf("%w: replace <yaml list>: %v", ErrUsage, err)
		}
		return event(domain.Event{Type: domain.EventReplaceRecords, Records: records})
	case "reset":
		return event(domain.Event{Type: domain.EventReset})
	}

	return Command{}, fmt.Errorf("unknown command %q (try \"help\")", name)
}

// ParseValue decodes a typed scalar (number, boolean, null) from raw text and
// falls back to the text itself. Structured YAML is kept as text.
func ParseValue(raw string) any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch v.(type) {
	case nil:
		if raw == "null" || raw == "~" {
			return nil
		}
		return raw
	case bool, int, float64, string:
		return v
	}
	return raw
}

// cut splits off the first whitespace-delimited word and returns the trimmed remainder.
func cut(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func usage(form string) error {
	return fmt.Errorf("%w: %s", ErrUsage, form)
}
