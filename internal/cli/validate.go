package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/flowgrid/internal/logging"
	"github.com/aretw0/flowgrid/internal/validator"
)

// Validate checks a definition against its metadata source.
func Validate(ctx context.Context, opts RunOptions) error {
	def, err := loadDefinition(opts)
	if err != nil {
		return err
	}
	engine, err := createEngine(opts, def, logging.NewNop())
	if err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}
	return validator.ValidateDefinition(ctx, def, engine.Metadata())
}
