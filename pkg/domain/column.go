package domain

import "strings"

// DataType is the scalar type declared for a field by the metadata provider.
type DataType string

const (
	DataTypeString        DataType = "string"
	DataTypeTextArea      DataType = "textarea"
	DataTypeEmail         DataType = "email"
	DataTypePhone         DataType = "phone"
	DataTypeURL           DataType = "url"
	DataTypeID            DataType = "id"
	DataTypeBoolean       DataType = "boolean"
	DataTypeCurrency      DataType = "currency"
	DataTypePercent       DataType = "percent"
	DataTypeDouble        DataType = "double"
	DataTypeInteger       DataType = "int"
	DataTypeLong          DataType = "long"
	DataTypeDate          DataType = "date"
	DataTypeDateTime      DataType = "datetime"
	DataTypePicklist      DataType = "picklist"
	DataTypeMultiPicklist DataType = "multipicklist"
	DataTypeReference     DataType = "reference"
)

var dataTypeAliases = map[string]DataType{
	"text":        DataTypeString,
	"checkbox":    DataTypeBoolean,
	"bool":        DataTypeBoolean,
	"integer":     DataTypeInteger,
	"number":      DataTypeDouble,
	"decimal":     DataTypeDouble,
	"date-time":   DataTypeDateTime,
	"date_time":   DataTypeDateTime,
	"timestamp":   DataTypeDateTime,
	"choice":      DataTypePicklist,
	"multichoice": DataTypeMultiPicklist,
	"lookup":      DataTypeReference,
}

// ParseDataType normalizes a declared type name. Matching is case-insensitive
// and a few common aliases are accepted; unknown names are kept as-is (lower-cased)
// and treated as plain strings by the formatter.
func ParseDataType(s string) DataType {
	clean := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := dataTypeAliases[clean]; ok {
		return alias
	}
	return DataType(clean)
}

// IsNumeric reports whether values of this type are edited as numbers.
func (d DataType) IsNumeric() bool {
	switch d {
	case DataTypeCurrency, DataTypePercent, DataTypeDouble, DataTypeInteger, DataTypeLong:
		return true
	}
	return false
}

// InputKind is the input affordance a host should render for an editable cell.
type InputKind string

const (
	InputNumber   InputKind = "number"
	InputDate     InputKind = "date"
	InputDateTime InputKind = "datetime"
	InputToggle   InputKind = "toggle"
	InputChoice   InputKind = "choice"
	InputText     InputKind = "text"
)

// InputKind derives the input affordance purely from the declared type.
func (d DataType) InputKind() InputKind {
	switch {
	case d.IsNumeric():
		return InputNumber
	case d == DataTypeDate:
		return InputDate
	case d == DataTypeDateTime:
		return InputDateTime
	case d == DataTypeBoolean:
		return InputToggle
	case d == DataTypePicklist, d == DataTypeMultiPicklist:
		return InputChoice
	}
	return InputText
}

// ChoiceValue maps a stored choice code to its human label.
type ChoiceValue struct {
	Value string `json:"value" yaml:"value" mapstructure:"value"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`
}

// FieldMetadata is what the metadata provider knows about a single field path.
type FieldMetadata struct {
	FieldAPIName        string        `json:"field_api_name" yaml:"field_api_name" mapstructure:"field_api_name"`
	Label               string        `json:"label" yaml:"label" mapstructure:"label"`
	DataType            DataType      `json:"data_type" yaml:"data_type" mapstructure:"data_type"`
	IsEditable          bool          `json:"is_editable" yaml:"is_editable" mapstructure:"is_editable"`
	IsRelationship      bool          `json:"is_relationship" yaml:"is_relationship" mapstructure:"is_relationship"`
	RelationshipIDField string        `json:"relationship_id_field,omitempty" yaml:"relationship_id_field,omitempty" mapstructure:"relationship_id_field"`
	ChoiceValues        []ChoiceValue `json:"choice_values,omitempty" yaml:"choice_values,omitempty" mapstructure:"choice_values"`
}

// ColumnDescriptor is a displayable column: field metadata enriched with the
// builder's custom label and the effective editability.
// It is immutable for the duration of a render cycle.
type ColumnDescriptor struct {
	FieldAPIName        string        `json:"field_api_name"`
	Label               string        `json:"label"`
	DataType            DataType      `json:"data_type"`
	IsEditable          bool          `json:"is_editable"`
	IsRelationship      bool          `json:"is_relationship"`
	RelationshipIDField string        `json:"relationship_id_field,omitempty"`
	ChoiceValues        []ChoiceValue `json:"choice_values,omitempty"`
}

// ChoiceLabel returns the label for an exact choice value match.
func (c ColumnDescriptor) ChoiceLabel(value string) (string, bool) {
	for _, cv := range c.ChoiceValues {
		if cv.Value == value {
			return cv.Label, true
		}
	}
	return "", false
}

// FindColumn returns the column for a field, if present.
func FindColumn(columns []ColumnDescriptor, field string) (ColumnDescriptor, bool) {
	for _, c := range columns {
		if c.FieldAPIName == field {
			return c, true
		}
	}
	return ColumnDescriptor{}, false
}
