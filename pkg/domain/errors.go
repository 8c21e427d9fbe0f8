package domain

import (
	"errors"
	"fmt"
)

// ErrGridNotFound is returned when a grid session cannot be found in the store.
var ErrGridNotFound = errors.New("grid not found")

// ErrUnknownEvent is returned when an event type is not recognised.
var ErrUnknownEvent = errors.New("unknown event type")

// ErrInvalidConfig is returned when a grid configuration is structurally invalid.
var ErrInvalidConfig = errors.New("invalid grid config")

// ErrObjectNotFound is returned by metadata providers for unknown object names.
var ErrObjectNotFound = errors.New("object not found")

// MetadataError wraps a metadata provider failure for a given object.
type MetadataError struct {
	ObjectName string
	Err        error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("could not load field metadata for '%s': %v", e.ObjectName, e.Err)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}
