package domain

import (
	"fmt"
	"strings"
)

// SelectionMode governs how many rows may be selected at once.
type SelectionMode string

const (
	SelectionViewOnly SelectionMode = "view-only"
	SelectionSingle   SelectionMode = "single"
	SelectionMulti    SelectionMode = "multi"
)

// ParseSelectionMode accepts the canonical names plus a few builder spellings.
// An empty string means view-only.
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "view-only", "view_only", "viewonly", "none":
		return SelectionViewOnly, nil
	case "single", "single-select":
		return SelectionSingle, nil
	case "multi", "multiple", "multi-select":
		return SelectionMulti, nil
	}
	return "", fmt.Errorf("%w: unknown selection mode %q", ErrInvalidConfig, s)
}

// StalePolicy decides what happens to selection and edit entries whose record
// disappears from a replaced record collection.
type StalePolicy string

const (
	// StaleRetain keeps the entries in state and filters them at output time,
	// so a transient empty collection does not lose the user's work.
	StaleRetain StalePolicy = "retain"
	// StalePrune drops the entries as soon as the collection is replaced.
	StalePrune StalePolicy = "prune"
)

// ColumnLabel overrides the metadata label of a single field.
type ColumnLabel struct {
	Field string `json:"field" yaml:"field" mapstructure:"field"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`
}

// Config is the configuration produced by the visual builder.
type Config struct {
	ObjectName     string        `json:"object_name" yaml:"object_name" mapstructure:"object_name"`
	Fields         []string      `json:"fields" yaml:"fields" mapstructure:"fields"`
	SelectionMode  SelectionMode `json:"selection_mode" yaml:"selection_mode" mapstructure:"selection_mode"`
	InlineEdit     bool          `json:"inline_edit" yaml:"inline_edit" mapstructure:"inline_edit"`
	CustomLabels   []ColumnLabel `json:"custom_labels,omitempty" yaml:"custom_labels,omitempty" mapstructure:"custom_labels"`
	EditableFields []string      `json:"editable_fields,omitempty" yaml:"editable_fields,omitempty" mapstructure:"editable_fields"`
	SearchEnabled  bool          `json:"search_enabled" yaml:"search_enabled" mapstructure:"search_enabled"`
	StalePolicy    StalePolicy   `json:"stale_policy,omitempty" yaml:"stale_policy,omitempty" mapstructure:"stale_policy"`
}

// Normalize returns a copy with defaults applied and enum spellings canonicalised.
func (c Config) Normalize() (Config, error) {
	mode, err := ParseSelectionMode(string(c.SelectionMode))
	if err != nil {
		return c, err
	}
	c.SelectionMode = mode

	switch StalePolicy(strings.ToLower(string(c.StalePolicy))) {
	case "", StaleRetain:
		c.StalePolicy = StaleRetain
	case StalePrune:
		c.StalePolicy = StalePrune
	default:
		return c, fmt.Errorf("%w: unknown stale policy %q", ErrInvalidConfig, c.StalePolicy)
	}

	fields := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	c.Fields = fields
	return c, nil
}

// Validate checks the configuration for structural errors.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ObjectName) == "" {
		return fmt.Errorf("%w: object_name is required", ErrInvalidConfig)
	}
	_, err := c.Normalize()
	return err
}

// CustomLabel returns the builder-supplied label for a field, if any.
func (c Config) CustomLabel(field string) (string, bool) {
	for _, l := range c.CustomLabels {
		if l.Field == field && strings.TrimSpace(l.Label) != "" {
			return l.Label, true
		}
	}
	return "", false
}

// AllowsEdit reports whether the editable-field allow-list admits a field.
// An empty allow-list admits every field.
func (c Config) AllowsEdit(field string) bool {
	if len(c.EditableFields) == 0 {
		return true
	}
	for _, f := range c.EditableFields {
		if f == field {
			return true
		}
	}
	return false
}
