package usecase

import (
	"context"

	"recycle/internal/domain/entity"
	"recycle/internal/domain/service"

	"github.com/google/uuid"
)

// PartInput describes a single part of a product being created.
type PartInput struct {
	Name string
}

// CreateProductInput defines the data required to register a product in the catalog.
type CreateProductInput struct {
	Name        string
	EAN         string
	Description string
	PicturePath string
	Parts       []PartInput
}

// ProductOutput wraps a single catalog product.
type ProductOutput struct {
	Product *entity.Product
}

// ListProductsOutput wraps the catalog listing.
type ListProductsOutput struct {
	Products []*entity.Product
}

// ProductUsecase defines the interface for catalog operations.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, principal service.Principal, input *CreateProductInput) (*ProductOutput, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductOutput, error)
	ListProducts(ctx context.Context) (*ListProductsOutput, error)
	DeleteProduct(ctx context.Context, principal service.Principal, id uuid.UUID) error
}
