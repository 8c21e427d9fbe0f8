package schema

import (
	"sort"

	"github.com/aretw0/flowgrid/pkg/domain"
)

// Schema is a map of field paths to their expected types.
type Schema map[string]Type

// FromMetadata builds a schema from field metadata.
func FromMetadata(fields []domain.FieldMetadata) Schema {
	s := make(Schema, len(fields))
	for _, f := range fields {
		s[f.FieldAPIName] = ForField(f)
	}
	return s
}

// Validate checks data against the schema. Absent, nil and empty string
// values are empty cells and pass.
// Failures are returned together, ordered by field.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		return nil
	}

	keys := make([]string, 0, len(schema))
	for k := range schema {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, fieldName := range keys {
		value, exists := data[fieldName]
		if !exists || value == nil || value == "" {
			continue
		}
		if err := schema[fieldName].Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
