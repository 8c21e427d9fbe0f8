package validator

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/flowgrid/internal/compiler"
	"github.com/aretw0/flowgrid/internal/runtime"
	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/ports"
	"github.com/aretw0/flowgrid/pkg/schema"
)

// ValidateDefinition checks a grid definition against its metadata: the
// configuration must be well formed, every configured field must be known,
// edit and label overrides must refer to configured fields and records must
// carry unique identifiers whose values match the declared field types.
// All problems are reported at once.
func ValidateDefinition(ctx context.Context, def *compiler.Definition, provider ports.MetadataProvider) error {
	var errors []string
	report := func(format string, args ...any) {
		errors = append(errors, fmt.Sprintf(format, args...))
	}

	cfg := def.Grid
	if err := cfg.Validate(); err != nil {
		report("%v", err)
	}
	if len(cfg.Fields) == 0 {
		report("No fields configured")
	}

	configured := make(map[string]bool, len(cfg.Fields))
	for _, f := range cfg.Fields {
		if configured[f] {
			report("Duplicate field: '%s'", f)
		}
		configured[f] = true
	}

	for _, f := range cfg.EditableFields {
		if !configured[f] {
			report("Editable field '%s' is not a configured field", f)
		}
	}
	for _, l := range cfg.CustomLabels {
		if !configured[l.Field] {
			report("Custom label for unknown field: '%s'", l.Field)
		}
	}

	var meta []domain.FieldMetadata
	if provider != nil && cfg.ObjectName != "" && len(cfg.Fields) > 0 {
		meta = checkMetadata(ctx, cfg, provider, report)
	}
	types := schema.FromMetadata(meta)

	seen := make(map[string]int, len(def.Records))
	for i, rec := range def.Records {
		id := rec.ID()
		if id == "" {
			report("Record #%d has no Id", i+1)
			continue
		}
		if first, dup := seen[id]; dup {
			report("Record #%d reuses Id '%s' of record #%d", i+1, id, first)
			continue
		}
		seen[id] = i + 1
	}

	for i, rec := range def.Records {
		cells := make(map[string]any, len(types))
		for field := range types {
			cells[field] = runtime.Resolve(rec, field)
		}
		for _, err := range schema.ValidationErrors(schema.Validate(types, cells)) {
			report("Record #%d %v", i+1, err)
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}

// checkMetadata returns the metadata of the configured fields it found.
func checkMetadata(ctx context.Context, cfg domain.Config, provider ports.MetadataProvider, report func(string, ...any)) []domain.FieldMetadata {
	meta, err := provider.DescribeFields(ctx, cfg.ObjectName, cfg.Fields)
	if err != nil {
		report("Metadata for '%s' unavailable: %v", cfg.ObjectName, err)
		return nil
	}

	known := make(map[string]domain.FieldMetadata, len(meta))
	for _, m := range meta {
		known[m.FieldAPIName] = m
	}
	for _, f := range cfg.Fields {
		m, ok := known[f]
		if !ok {
			report("Field '%s' not found on object '%s'", f, cfg.ObjectName)
			continue
		}
		if m.IsRelationship && m.RelationshipIDField == "" {
			report("Relationship field '%s' declares no relationship_id_field", f)
		}
	}
	return meta
}
