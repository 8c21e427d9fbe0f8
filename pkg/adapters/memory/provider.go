package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/flowgrid/pkg/domain"
)

// Provider implements ports.MetadataProvider using an in-memory map of
// object name to field metadata.
type Provider struct {
	mu      sync.RWMutex
	objects map[string][]domain.FieldMetadata
}

// NewProvider creates a provider with the given objects.
func NewProvider(objects map[string][]domain.FieldMetadata) *Provider {
	p := &Provider{objects: make(map[string][]domain.FieldMetadata, len(objects))}
	for name, fields := range objects {
		p.objects[name] = append([]domain.FieldMetadata(nil), fields...)
	}
	return p
}

// Add registers (or replaces) an object definition.
func (p *Provider) Add(objectName string, fields ...domain.FieldMetadata) error {
	for _, f := range fields {
		if f.FieldAPIName == "" {
			return fmt.Errorf("object %s: field missing field_api_name", objectName)
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.objects[objectName] = append([]domain.FieldMetadata(nil), fields...)
	return nil
}

// DescribeFields returns the requested fields in request order.
func (p *Provider) DescribeFields(ctx context.Context, objectName string, fields []string) ([]domain.FieldMetadata, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	declared, ok := p.objects[objectName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrObjectNotFound, objectName)
	}

	out := make([]domain.FieldMetadata, 0, len(fields))
	for _, name := range fields {
		for _, f := range declared {
			if f.FieldAPIName == name {
				out = append(out, f)
				break
			}
		}
	}
	return out, nil
}

// ListObjects returns the registered object names, sorted.
func (p *Provider) ListObjects(ctx context.Context) ([]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.objects))
	for name := range p.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
