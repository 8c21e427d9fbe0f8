package dsl

import "github.com/aretw0/flowgrid/pkg/domain"

// FieldBuilder provides a fluent API for configuring a column.
type FieldBuilder struct {
	meta     domain.FieldMetadata
	label    string
	editable bool
	builder  *Builder
}

// Describe sets the label reported by the object metadata.
func (f *FieldBuilder) Describe(label string) *FieldBuilder {
	f.meta.Label = label
	return f
}

// Label overrides the column header in the builder configuration.
func (f *FieldBuilder) Label(label string) *FieldBuilder {
	f.label = label
	return f
}

// Type sets the declared data type.
func (f *FieldBuilder) Type(t domain.DataType) *FieldBuilder {
	f.meta.DataType = domain.ParseDataType(string(t))
	return f
}

// Editable marks the field editable in metadata and lists it as an editable
// column of the grid.
func (f *FieldBuilder) Editable() *FieldBuilder {
	f.meta.IsEditable = true
	f.editable = true
	return f
}

// Updateable marks the field editable in metadata only. The column stays
// read-only unless no field is listed with Editable.
func (f *FieldBuilder) Updateable() *FieldBuilder {
	f.meta.IsEditable = true
	return f
}

// Relationship marks a field that reads through a lookup, with idField the
// record field holding the related identifier.
func (f *FieldBuilder) Relationship(idField string) *FieldBuilder {
	f.meta.IsRelationship = true
	f.meta.RelationshipIDField = idField
	return f
}

// Choice adds a picklist value. The type becomes a picklist unless it is
// already a multi-select one.
func (f *FieldBuilder) Choice(value, label string) *FieldBuilder {
	if f.meta.DataType != domain.DataTypeMultiPicklist {
		f.meta.DataType = domain.DataTypePicklist
	}
	f.meta.ChoiceValues = append(f.meta.ChoiceValues, domain.ChoiceValue{Value: value, Label: label})
	return f
}

// Add starts the next column on the same grid.
func (f *FieldBuilder) Add(field string) *FieldBuilder {
	return f.builder.Add(field)
}

// Build returns the field metadata.
func (f *FieldBuilder) Build() domain.FieldMetadata {
	meta := f.meta
	meta.ChoiceValues = append([]domain.ChoiceValue(nil), f.meta.ChoiceValues...)
	return meta
}
