// Package schema checks record values against the data types declared by
// field metadata.
//
// A Schema maps field paths to types. It is usually derived from metadata:
//
//	s := schema.FromMetadata(fields)
//	err := schema.Validate(s, map[string]any{
//	    "Amount":    1200,
//	    "CloseDate": "2024-03-01",
//	})
//
// Absent and nil values are empty cells and always pass. Every failure is
// reported in one *AggregateError. Schemas serialize as a map of field paths
// to data type names, so they can travel with a definition:
//
//	{"Amount": "currency", "CloseDate": "date", "Tags": "multipicklist"}
//
// Custom validators can be registered for values the metadata cannot express:
//
//	positive := schema.Custom("positive", func(v any) error {
//	    f, err := cast.ToFloat64E(v)
//	    if err != nil || f <= 0 {
//	        return fmt.Errorf("must be a positive number")
//	    }
//	    return nil
//	})
package schema
