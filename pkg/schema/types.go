package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/spf13/cast"
)

// Type defines the contract for value validation.
type Type interface {
	// Name returns the data type name (e.g. "string", "currency").
	Name() string
	// Validate checks if a non-nil value conforms to this type.
	Validate(value any) error
}

// TextType accepts strings.
type TextType struct{ name domain.DataType }

func (t *TextType) Name() string { return string(t.name) }

func (t *TextType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected text, got %T", value)
	}
	return nil
}

// NumberType accepts numbers and numeric strings. Whole restricts it to
// integral values.
type NumberType struct {
	name  domain.DataType
	Whole bool
}

func (t *NumberType) Name() string { return string(t.name) }

func (t *NumberType) Validate(value any) error {
	var f float64
	switch v := value.(type) {
	case bool:
		return fmt.Errorf("expected number, got bool")
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return fmt.Errorf("expected number, got %q", v.String())
		}
		f = parsed
	case string:
		parsed, err := cast.ToFloat64E(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("expected number, got %q", v)
		}
		f = parsed
	default:
		parsed, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("expected number, got %T", value)
		}
		f = parsed
	}
	if t.Whole && f != math.Trunc(f) {
		return fmt.Errorf("expected whole number, got %v", f)
	}
	return nil
}

// BoolType accepts booleans and the strings "true" and "false".
type BoolType struct{}

func (t *BoolType) Name() string { return string(domain.DataTypeBoolean) }

func (t *BoolType) Validate(value any) error {
	switch v := value.(type) {
	case bool:
		return nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "false":
			return nil
		}
		return fmt.Errorf("expected boolean, got %q", v)
	}
	return fmt.Errorf("expected boolean, got %T", value)
}

// TimeType accepts time.Time and strings in one of its layouts.
type TimeType struct {
	name    domain.DataType
	layouts []string
}

func (t *TimeType) Name() string { return string(t.name) }

func (t *TimeType) Validate(value any) error {
	switch v := value.(type) {
	case time.Time:
		return nil
	case string:
		for _, layout := range t.layouts {
			if _, err := time.Parse(layout, v); err == nil {
				return nil
			}
		}
		return fmt.Errorf("expected %s, got %q", t.name, v)
	}
	return fmt.Errorf("expected %s, got %T", t.name, value)
}

// ChoiceType accepts strings among the declared choice values. Multi-select
// values are ';' separated. Without declared values any string passes.
type ChoiceType struct {
	Multi   bool
	allowed map[string]bool
}

func (t *ChoiceType) Name() string {
	if t.Multi {
		return string(domain.DataTypeMultiPicklist)
	}
	return string(domain.DataTypePicklist)
}

func (t *ChoiceType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected choice, got %T", value)
	}
	if len(t.allowed) == 0 || s == "" {
		return nil
	}
	parts := []string{s}
	if t.Multi {
		parts = strings.Split(s, ";")
	}
	for _, p := range parts {
		if !t.allowed[strings.TrimSpace(p)] {
			return fmt.Errorf("%q is not a declared choice", strings.TrimSpace(p))
		}
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// AnyType accepts everything. Unknown data types map to it.
type AnyType struct{ name string }

func (t *AnyType) Name() string { return t.name }

func (t *AnyType) Validate(any) error { return nil }

var (
	dateLayouts     = []string{time.DateOnly, time.RFC3339}
	dateTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.000Z0700", time.DateTime, time.DateOnly}
)

// Text creates a text validator.
func Text() Type { return &TextType{name: domain.DataTypeString} }

// Number creates a numeric validator.
func Number() Type { return &NumberType{name: domain.DataTypeDouble} }

// Integer creates a whole number validator.
func Integer() Type { return &NumberType{name: domain.DataTypeInteger, Whole: true} }

// Bool creates a boolean validator.
func Bool() Type { return &BoolType{} }

// Date creates a calendar date validator.
func Date() Type { return &TimeType{name: domain.DataTypeDate, layouts: dateLayouts} }

// DateTime creates a timestamp validator.
func DateTime() Type { return &TimeType{name: domain.DataTypeDateTime, layouts: dateTimeLayouts} }

// Choice creates a picklist validator over the given values.
func Choice(multi bool, values ...string) Type {
	t := &ChoiceType{Multi: multi}
	if len(values) > 0 {
		t.allowed = make(map[string]bool, len(values))
		for _, v := range values {
			t.allowed[v] = true
		}
	}
	return t
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// ForField derives the validator for a field from its metadata.
func ForField(meta domain.FieldMetadata) Type {
	switch meta.DataType {
	case domain.DataTypePicklist, domain.DataTypeMultiPicklist:
		values := make([]string, 0, len(meta.ChoiceValues))
		for _, cv := range meta.ChoiceValues {
			values = append(values, cv.Value)
		}
		return Choice(meta.DataType == domain.DataTypeMultiPicklist, values...)
	}
	t, err := ParseType(string(meta.DataType))
	if err != nil {
		return &AnyType{name: string(meta.DataType)}
	}
	return t
}

// ParseType converts a data type name to a Type. Names go through
// domain.ParseDataType, so its aliases are accepted.
func ParseType(typeStr string) (Type, error) {
	dt := domain.ParseDataType(typeStr)
	switch dt {
	case domain.DataTypeString, domain.DataTypeTextArea, domain.DataTypeEmail,
		domain.DataTypePhone, domain.DataTypeURL, domain.DataTypeID, domain.DataTypeReference:
		return &TextType{name: dt}, nil
	case domain.DataTypeCurrency, domain.DataTypePercent, domain.DataTypeDouble:
		return &NumberType{name: dt}, nil
	case domain.DataTypeInteger, domain.DataTypeLong:
		return &NumberType{name: dt, Whole: true}, nil
	case domain.DataTypeBoolean:
		return Bool(), nil
	case domain.DataTypeDate:
		return Date(), nil
	case domain.DataTypeDateTime:
		return DateTime(), nil
	case domain.DataTypePicklist:
		return Choice(false), nil
	case domain.DataTypeMultiPicklist:
		return Choice(true), nil
	}
	return nil, fmt.Errorf("unsupported type: %s", typeStr)
}

// ParseTypeMap converts a map of field paths to type names into a Schema.
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema)
	for key, typeStr := range typeMap {
		t, err := ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		result[key] = t
	}
	return result, nil
}
