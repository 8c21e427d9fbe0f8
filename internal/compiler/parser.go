package compiler

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"sort"

	"github.com/aretw0/flowgrid/internal/dto"
	"github.com/aretw0/flowgrid/pkg/adapters/memory"
	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Definition is a grid definition file: the builder configuration, the
// records to show and, optionally, inline field metadata per object.
type Definition struct {
	Grid    domain.Config              `mapstructure:"grid"`
	Records []domain.Record            `mapstructure:"records"`
	Objects map[string][]dto.FieldSpec `mapstructure:"objects"`
}

// HasInlineMetadata reports whether the file carries its own field metadata.
func (d *Definition) HasInlineMetadata() bool {
	return len(d.Objects) > 0
}

// Metadata builds an in-memory provider from the inline objects.
func (d *Definition) Metadata() *memory.Provider {
	objects := make(map[string][]domain.FieldMetadata, len(d.Objects))
	for name, fields := range d.Objects {
		objects[name] = dto.FieldsToDomain(fields)
	}
	return memory.NewProvider(objects)
}

// ObjectNames returns the inline object names, sorted.
func (d *Definition) ObjectNames() []string {
	names := make([]string, 0, len(d.Objects))
	for name := range d.Objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parser is responsible for converting raw bytes into a Definition.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses a definition file.
func (p *Parser) ParseFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	def, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes a YAML or JSON definition. Scalars are weakly typed
// ("true", "1" and 1 all enable a flag) and custom_labels may be written as
// a field-to-label map.
func (p *Parser) Parse(data []byte) (*Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty definition")
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}

	var def Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &def,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       labelMapHook,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}

	cfg, err := def.Grid.Normalize()
	if err != nil {
		return nil, err
	}
	def.Grid = cfg

	for i, rec := range def.Records {
		if rec == nil {
			def.Records[i] = domain.Record{}
		}
	}
	return &def, nil
}

var columnLabelsType = reflect.TypeOf([]domain.ColumnLabel{})

// labelMapHook accepts custom_labels as {Field: Label} in addition to a list.
func labelMapHook(from, to reflect.Type, data any) (any, error) {
	if to != columnLabelsType || from.Kind() != reflect.Map {
		return data, nil
	}
	m, ok := data.(map[string]any)
	if !ok {
		return data, nil
	}
	fields := make([]string, 0, len(m))
	for f := range m {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	labels := make([]domain.ColumnLabel, 0, len(m))
	for _, f := range fields {
		labels = append(labels, domain.ColumnLabel{Field: f, Label: fmt.Sprint(m[f])})
	}
	return labels, nil
}
