// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"recycle/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product is missing or logically deleted.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines catalog persistence for products and their parts.
// List and lookup paths always exclude logically deleted rows; Delete marks the
// row deleted instead of removing it. Only the storage engine's FK cascade ever
// hard-removes part rows, and only when a product row itself is destroyed.
type ProductRepository interface {
	// Create persists a new product together with its parts.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a non-deleted product with its parts preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List returns all non-deleted products.
	List(ctx context.Context) ([]*entity.Product, error)

	// Update persists changes to an existing product.
	Update(ctx context.Context, product *entity.Product) error
}
