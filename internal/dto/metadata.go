package dto

import (
	"github.com/aretw0/flowgrid/pkg/domain"
)

// ObjectMetadata is the document header describing one record object.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type ObjectMetadata struct {
	// Object overrides the object name derived from the document ID.
	Object string      `json:"object" mapstructure:"object"`
	Label  string      `json:"label" mapstructure:"label"`
	Fields []FieldSpec `json:"fields" mapstructure:"fields"`
}

// FieldSpec is one field entry, in a metadata document or an inline grid
// definition. Short keys (name, type, editable, choices) are accepted next to
// the canonical ones.
type FieldSpec struct {
	Name                string               `json:"name,omitempty" mapstructure:"name"`
	FieldAPIName        string               `json:"field_api_name,omitempty" mapstructure:"field_api_name"`
	Label               string               `json:"label,omitempty" mapstructure:"label"`
	Type                string               `json:"type,omitempty" mapstructure:"type"`
	DataType            string               `json:"data_type,omitempty" mapstructure:"data_type"`
	Editable            bool                 `json:"editable,omitempty" mapstructure:"editable"`
	IsEditable          bool                 `json:"is_editable,omitempty" mapstructure:"is_editable"`
	IsRelationship      bool                 `json:"is_relationship,omitempty" mapstructure:"is_relationship"`
	RelationshipIDField string               `json:"relationship_id_field,omitempty" mapstructure:"relationship_id_field"`
	Choices             []domain.ChoiceValue `json:"choices,omitempty" mapstructure:"choices"`
	ChoiceValues        []domain.ChoiceValue `json:"choice_values,omitempty" mapstructure:"choice_values"`
}

// ToDomain resolves the short and canonical spellings into domain metadata.
func (f FieldSpec) ToDomain() domain.FieldMetadata {
	name := f.FieldAPIName
	if name == "" {
		name = f.Name
	}
	dataType := f.DataType
	if dataType == "" {
		dataType = f.Type
	}
	choices := f.ChoiceValues
	if len(choices) == 0 {
		choices = f.Choices
	}
	return domain.FieldMetadata{
		FieldAPIName:        name,
		Label:               f.Label,
		DataType:            domain.ParseDataType(dataType),
		IsEditable:          f.IsEditable || f.Editable,
		IsRelationship:      f.IsRelationship,
		RelationshipIDField: f.RelationshipIDField,
		ChoiceValues:        choices,
	}
}

// FieldsToDomain converts a field list, dropping entries without a name.
func FieldsToDomain(specs []FieldSpec) []domain.FieldMetadata {
	out := make([]domain.FieldMetadata, 0, len(specs))
	for _, s := range specs {
		m := s.ToDomain()
		if m.FieldAPIName == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}
