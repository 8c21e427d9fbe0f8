package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/loam"
)

// Provider adapts a Loam document repository to the ports.MetadataProvider
// interface. Each document describes one object: its frontmatter lists the
// fields, and the body is free-form documentation.
type Provider struct {
	Repo *loam.TypedRepository[ObjectMetadata]
}

// New creates a new Loam metadata provider.
func New(repo *loam.TypedRepository[ObjectMetadata]) *Provider {
	return &Provider{
		Repo: repo,
	}
}

// DescribeFields returns the metadata of the requested fields, in request order.
// Fields the object does not declare are omitted.
func (p *Provider) DescribeFields(ctx context.Context, objectName string, fields []string) ([]domain.FieldMetadata, error) {
	objects, err := p.index(ctx)
	if err != nil {
		return nil, err
	}
	meta, ok := objects[objectName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrObjectNotFound, objectName)
	}

	declared := make(map[string]domain.FieldMetadata, len(meta.Fields))
	for _, f := range meta.Fields {
		fm := f.ToDomain()
		if fm.FieldAPIName == "" {
			continue
		}
		declared[fm.FieldAPIName] = fm
	}

	out := make([]domain.FieldMetadata, 0, len(fields))
	for _, name := range fields {
		if fm, ok := declared[name]; ok {
			out = append(out, fm)
		}
	}
	return out, nil
}

// ListObjects lists the object names described in the repository.
func (p *Provider) ListObjects(ctx context.Context) ([]string, error) {
	objects, err := p.index(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(objects))
	for name := range objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// index maps object names to their metadata. Two documents describing the
// same object are rejected.
func (p *Provider) index(ctx context.Context) (map[string]ObjectMetadata, error) {
	docs, err := p.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	objects := make(map[string]ObjectMetadata, len(docs))
	for _, doc := range docs {
		name := doc.Data.Object
		if name == "" {
			name = trimExtension(doc.ID)
		}

		if existingPath, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: object '%s' is described in both '%s' and '%s'", name, existingPath, doc.ID)
		}
		seen[name] = doc.ID
		objects[name] = doc.Data
	}
	return objects, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
