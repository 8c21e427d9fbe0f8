package loam

import (
	"github.com/aretw0/flowgrid/internal/dto"
)

// ObjectMetadata is the frontmatter of one object document.
type ObjectMetadata = dto.ObjectMetadata

// FieldSpec is one entry of ObjectMetadata.Fields.
type FieldSpec = dto.FieldSpec
