package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/flowgrid/pkg/adapters/memory"
	"github.com/aretw0/flowgrid/pkg/domain"
)

// Grid is a compiled definition.
type Grid struct {
	Config   domain.Config
	Records  []domain.Record
	Metadata *memory.Provider
}

// Builder manages the grid construction.
type Builder struct {
	config  domain.Config
	order   []string
	fields  map[string]*FieldBuilder
	records []domain.Record
}

// New creates a builder for a grid over the given object.
func New(objectName string) *Builder {
	return &Builder{
		config: domain.Config{ObjectName: objectName},
		fields: make(map[string]*FieldBuilder),
	}
}

// Add appends a column to the grid.
// If the field already exists, it returns the existing builder.
func (b *Builder) Add(field string) *FieldBuilder {
	if fb, ok := b.fields[field]; ok {
		return fb
	}
	fb := &FieldBuilder{
		meta: domain.FieldMetadata{
			FieldAPIName: field,
			Label:        field,
			DataType:     domain.DataTypeString,
		},
		builder: b,
	}
	b.fields[field] = fb
	b.order = append(b.order, field)
	return fb
}

// Selection sets the selection mode.
func (b *Builder) Selection(mode domain.SelectionMode) *Builder {
	b.config.SelectionMode = mode
	return b
}

// InlineEdit enables cell editing for editable columns.
func (b *Builder) InlineEdit() *Builder {
	b.config.InlineEdit = true
	return b
}

// Search enables the search box.
func (b *Builder) Search() *Builder {
	b.config.SearchEnabled = true
	return b
}

// StalePolicy sets what happens to entries of records that disappear.
func (b *Builder) StalePolicy(p domain.StalePolicy) *Builder {
	b.config.StalePolicy = p
	return b
}

// Records appends records to the grid.
func (b *Builder) Records(records ...domain.Record) *Builder {
	b.records = append(b.records, records...)
	return b
}

// Build compiles the grid. The configuration is normalized and every field
// gets a metadata entry on the object.
func (b *Builder) Build() (*Grid, error) {
	if b.config.ObjectName == "" {
		return nil, fmt.Errorf("%w: object name is required", domain.ErrInvalidConfig)
	}
	if len(b.order) == 0 {
		return nil, errors.New("grid has no fields")
	}

	cfg := b.config
	cfg.Fields = append([]string(nil), b.order...)
	cfg.EditableFields = nil
	cfg.CustomLabels = nil

	meta := make([]domain.FieldMetadata, 0, len(b.order))
	for _, name := range b.order {
		fb := b.fields[name]
		meta = append(meta, fb.Build())
		if fb.editable {
			cfg.EditableFields = append(cfg.EditableFields, name)
		}
		if fb.label != "" {
			cfg.CustomLabels = append(cfg.CustomLabels, domain.ColumnLabel{Field: name, Label: fb.label})
		}
	}

	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}

	return &Grid{
		Config:   cfg,
		Records:  append([]domain.Record(nil), b.records...),
		Metadata: memory.NewProvider(map[string][]domain.FieldMetadata{cfg.ObjectName: meta}),
	}, nil
}
