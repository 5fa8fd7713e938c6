package impl

import (
	"context"
	"log/slog"

	deliverycontext "recycle/internal/delivery/context"
	"recycle/internal/domain/entity"
	domainerrors "recycle/internal/domain/errors"
	"recycle/internal/domain/repository"
	"recycle/internal/domain/service"
	"recycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	clock       service.Clock
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	Clock       service.Clock
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		clock:       params.Clock,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProduct registers a product and its parts, stamped with the acting
// principal's username.
func (srv *productService) CreateProduct(ctx context.Context, principal service.Principal, input *usecase.CreateProductInput) (*usecase.ProductOutput, error) {
	srv.log(ctx).Info("Creating product", slog.String("name", input.Name), slog.Any("accountID", principal.AccountID))

	now := srv.clock.Now()

	product := &entity.Product{
		Name:        input.Name,
		EAN:         input.EAN,
		Description: input.Description,
		PicturePath: input.PicturePath,
	}
	if err := product.StampCreate(principal.Username, now); err != nil {
		return nil, errors.Wrap(err, "failed to stamp new product")
	}

	parts := make([]*entity.Part, 0, len(input.Parts))
	for _, partInput := range input.Parts {
		part := &entity.Part{Name: partInput.Name}
		if err := part.StampCreate(principal.Username, now); err != nil {
			return nil, errors.Wrap(err, "failed to stamp new part")
		}
		parts = append(parts, part)
	}
	product.Parts = parts

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.ProductRepo().Create(ctx, product)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute product creation transaction", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute product creation transaction")
	}

	srv.log(ctx).Debug("Product created", slog.Any("productID", product.ID))

	return &usecase.ProductOutput{Product: product}, nil
}

// GetProduct returns a single non-deleted product with its parts.
func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*usecase.ProductOutput, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}
		srv.log(ctx).Error("Failed to load product", slog.Any("productID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load product")
	}

	return &usecase.ProductOutput{Product: product}, nil
}

// ListProducts returns all non-deleted products.
func (srv *productService) ListProducts(ctx context.Context) (*usecase.ListProductsOutput, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list products", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list products")
	}

	return &usecase.ListProductsOutput{Products: products}, nil
}

// DeleteProduct logically deletes a product and all of its parts. The rows
// stay in storage with the deleting principal recorded; subsequent reads no
// longer see them.
func (srv *productService) DeleteProduct(ctx context.Context, principal service.Principal, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting product", slog.Any("productID", id), slog.Any("accountID", principal.AccountID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to load product for deletion")
		}

		now := srv.clock.Now()
		product.MarkDeleted(principal.Username, now)
		for _, part := range product.Parts {
			part.MarkDeleted(principal.Username, now)
		}

		if err := productRepo.Update(ctx, product); err != nil {
			return errors.Wrap(err, "failed to persist product deletion")
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}
		srv.log(ctx).Error("Failed to execute product deletion transaction", slog.Any("error", err))

		return errors.Wrap(err, "failed to execute product deletion transaction")
	}

	srv.log(ctx).Debug("Product deleted", slog.Any("productID", id))

	return nil
}
