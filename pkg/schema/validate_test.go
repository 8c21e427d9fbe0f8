package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/flowgrid/pkg/domain"
)

var opportunityFields = []domain.FieldMetadata{
	{FieldAPIName: "Name", DataType: domain.DataTypeString},
	{FieldAPIName: "Amount", DataType: domain.DataTypeCurrency},
	{FieldAPIName: "CloseDate", DataType: domain.DataTypeDate},
	{FieldAPIName: "IsWon", DataType: domain.DataTypeBoolean},
}

func TestValidate_Success(t *testing.T) {
	s := FromMetadata(opportunityFields)

	err := Validate(s, map[string]any{
		"Name":      "Renewal",
		"Amount":    1200,
		"CloseDate": "2024-03-01",
		"IsWon":     true,
		"Extra":     struct{}{},
	})
	if err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_EmptyCellsPass(t *testing.T) {
	s := FromMetadata(opportunityFields)

	if err := Validate(s, map[string]any{"Amount": nil, "CloseDate": ""}); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
	if err := Validate(nil, map[string]any{"Amount": "x"}); err != nil {
		t.Errorf("empty schema must accept anything, got %v", err)
	}
}

func TestValidate_AggregatesInFieldOrder(t *testing.T) {
	s := FromMetadata(opportunityFields)

	err := Validate(s, map[string]any{
		"Name":      "Renewal",
		"Amount":    "lots",
		"CloseDate": "soon",
	})
	if err == nil {
		t.Fatal("Validate() should fail")
	}

	errs := ValidationErrors(err)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), err)
	}

	first := errs[0].(*ValidationError)
	if first.Key != "Amount" || first.Value != "lots" {
		t.Errorf("first error = %+v, want Amount", first)
	}
	if !strings.Contains(errs[1].Error(), "field 'CloseDate'") {
		t.Errorf("second error = %q", errs[1].Error())
	}
	if !strings.HasPrefix(err.Error(), "2 validation errors") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestValidationErrors_NonAggregate(t *testing.T) {
	if ValidationErrors(nil) != nil {
		t.Error("nil error must yield no validation errors")
	}
}

func TestSchema_JSON(t *testing.T) {
	data, err := json.Marshal(FromMetadata(opportunityFields))
	if err != nil {
		t.Fatal(err)
	}

	var decoded Schema
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["Amount"].Name() != "currency" || decoded["IsWon"].Name() != "boolean" {
		t.Errorf("decoded schema = %s", data)
	}

	if err := json.Unmarshal([]byte(`{"Amount": "geolocation"}`), &decoded); err == nil {
		t.Error("unknown type names must fail")
	}
	if err := json.Unmarshal([]byte(`{"Amount": 1}`), &decoded); err == nil {
		t.Error("non-string type names must fail")
	}
}
