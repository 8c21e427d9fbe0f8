package ports

import (
	"context"

	"github.com/aretw0/flowgrid/pkg/domain"
)

// MetadataProvider describes the fields of a record object.
// This allows the metadata source (Loam, config files, Memory) to be decoupled.
type MetadataProvider interface {
	// DescribeFields returns metadata for the requested fields of an object.
	// Unknown fields are omitted; an unknown object returns domain.ErrObjectNotFound.
	DescribeFields(ctx context.Context, objectName string, fields []string) ([]domain.FieldMetadata, error)
}

// ObjectLister is implemented by providers that can enumerate their objects.
// It is used by introspection surfaces such as 'flowgrid validate'.
type ObjectLister interface {
	ListObjects(ctx context.Context) ([]string, error)
}
