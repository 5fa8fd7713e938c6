// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"recycle/internal/domain/entity"
	domainerrors "recycle/internal/domain/errors"
	"recycle/internal/domain/repository"
	"recycle/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the repository.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// Create persists a new product together with its parts.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductNotFound.WrapMessage("invalid product reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	for i, partM := range productM.Parts {
		product.Parts[i].ID = partM.ID
		product.Parts[i].ProductID = partM.ProductID
	}

	return nil
}

// FindByID retrieves a non-deleted product with its non-deleted parts preloaded.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	err := repo.db.WithContext(ctx).
		Scopes(excludeDeleted).
		Preload("Parts", excludeDeleted).
		Where("id = ?", id).
		First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// List returns all non-deleted products.
func (repo *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	err := repo.db.WithContext(ctx).
		Scopes(excludeDeleted).
		Preload("Parts", excludeDeleted).
		Order("created_at DESC").
		Find(&productModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// Update persists changes to an existing product, parts included.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(productM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update product")
	}

	return nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	parts := make([]*entity.Part, 0, len(data.Parts))
	for _, partM := range data.Parts {
		parts = append(parts, &entity.Part{
			ID:        partM.ID,
			ProductID: partM.ProductID,
			Name:      partM.Name,
			Trackable: toTrackableDomain(partM.TrackableColumns),
		})
	}

	return &entity.Product{
		ID:          data.ID,
		Name:        data.Name,
		EAN:         data.EAN,
		Description: data.Description,
		IsVerified:  data.IsVerified,
		PicturePath: data.PicturePath,
		Parts:       parts,
		Trackable:   toTrackableDomain(data.TrackableColumns),
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel for persistence.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	parts := make([]model.PartModel, 0, len(data.Parts))
	for _, part := range data.Parts {
		parts = append(parts, model.PartModel{
			ID:               part.ID,
			ProductID:        part.ProductID,
			Name:             part.Name,
			TrackableColumns: fromTrackableDomain(part.Trackable),
		})
	}

	return &model.ProductModel{
		ID:               data.ID,
		Name:             data.Name,
		EAN:              data.EAN,
		Description:      data.Description,
		IsVerified:       data.IsVerified,
		PicturePath:      data.PicturePath,
		Parts:            parts,
		TrackableColumns: fromTrackableDomain(data.Trackable),
	}
}
