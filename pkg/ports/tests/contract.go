package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/ports"
)

// MetadataProviderContractTest is a reusable test suite that verifies if an adapter complies with ports.MetadataProvider.
// The provider must know objectName and describe every field in fields.
func MetadataProviderContractTest(t *testing.T, provider ports.MetadataProvider, objectName string, fields []string) {
	t.Helper()
	ctx := context.Background()

	t.Run("DescribeFields_Success", func(t *testing.T) {
		meta, err := provider.DescribeFields(ctx, objectName, fields)
		if err != nil {
			t.Fatalf("unexpected error describing %s: %v", objectName, err)
		}
		found := make(map[string]bool, len(meta))
		for _, m := range meta {
			if m.FieldAPIName == "" {
				t.Errorf("metadata entry without field name: %+v", m)
			}
			found[m.FieldAPIName] = true
		}
		for _, f := range fields {
			if !found[f] {
				t.Errorf("expected metadata for field %q", f)
			}
		}
	})

	t.Run("DescribeFields_UnknownFieldOmitted", func(t *testing.T) {
		meta, err := provider.DescribeFields(ctx, objectName, []string{"Definitely_Missing__c"})
		if err != nil {
			t.Fatalf("unexpected error for unknown field: %v", err)
		}
		if len(meta) != 0 {
			t.Errorf("expected no metadata for unknown field, got %+v", meta)
		}
	})

	t.Run("DescribeFields_UnknownObject", func(t *testing.T) {
		_, err := provider.DescribeFields(ctx, "NonExistentObject", fields)
		if !errors.Is(err, domain.ErrObjectNotFound) {
			t.Errorf("expected ErrObjectNotFound, got %v", err)
		}
	})
}
