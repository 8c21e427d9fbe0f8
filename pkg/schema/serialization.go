package schema

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON serializes the schema as a map of field paths to type names.
// Declared choice values are not part of the encoding.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}

	names := make(map[string]string, len(s))
	for field, typ := range s {
		if typ == nil {
			return nil, fmt.Errorf("field %s: type is nil", field)
		}
		names[field] = typ.Name()
	}
	return json.Marshal(names)
}

// UnmarshalJSON reads a map of field paths to type names.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if s == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}

	var names map[string]string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("schema: expected a map of type names: %w", err)
	}
	if names == nil {
		*s = nil
		return nil
	}

	parsed, err := ParseTypeMap(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
