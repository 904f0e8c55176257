package profilefield

import (
	"context"

	"github.com/Abraxas-365/hirely/pkg/kernel"
)

type Repository interface {
	// List returns every configured field, in storage order
	List(ctx context.Context) ([]FieldConfig, error)

	// Upsert creates or replaces a field definition
	Upsert(ctx context.Context, field FieldConfig) error

	// Delete removes a field definition
	Delete(ctx context.Context, id kernel.FieldID) error
}

// Cache holds the last loaded configuration
type Cache interface {
	Get(ctx context.Context) ([]FieldConfig, bool, error)
	Set(ctx context.Context, fields []FieldConfig) error
	Invalidate(ctx context.Context) error
}
