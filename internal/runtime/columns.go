package runtime

import (
	"github.com/aretw0/flowgrid/pkg/domain"
)

// BuildColumns turns provider metadata into display columns, in the order the
// builder configured the fields. Fields the provider did not describe are
// returned separately so callers can report them.
func BuildColumns(cfg domain.Config, meta []domain.FieldMetadata) (columns []domain.ColumnDescriptor, missing []string) {
	byName := make(map[string]domain.FieldMetadata, len(meta))
	for _, m := range meta {
		if _, dup := byName[m.FieldAPIName]; !dup {
			byName[m.FieldAPIName] = m
		}
	}

	columns = make([]domain.ColumnDescriptor, 0, len(cfg.Fields))
	seen := make(map[string]bool, len(cfg.Fields))
	for _, field := range cfg.Fields {
		if seen[field] {
			continue
		}
		seen[field] = true

		m, ok := byName[field]
		if !ok {
			missing = append(missing, field)
			continue
		}

		label := m.Label
		if custom, ok := cfg.CustomLabel(field); ok {
			label = custom
		}
		if label == "" {
			label = field
		}

		columns = append(columns, domain.ColumnDescriptor{
			FieldAPIName:        field,
			Label:               label,
			DataType:            domain.ParseDataType(string(m.DataType)),
			IsEditable:          cfg.InlineEdit && m.IsEditable && !m.IsRelationship && cfg.AllowsEdit(field),
			IsRelationship:      m.IsRelationship,
			RelationshipIDField: m.RelationshipIDField,
			ChoiceValues:        m.ChoiceValues,
		})
	}
	return columns, missing
}
