package impl

import (
	"context"
	"log/slog"

	"clearpass/internal/domain/entity"
	domainerrors "clearpass/internal/domain/errors"
	"clearpass/internal/domain/repository"
	"clearpass/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultProductPageLimit = 10

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

// ListProducts returns one page of catalog results with pagination metadata.
func (srv *productService) ListProducts(ctx context.Context, input usecase.ListProductsInput) (*usecase.ProductPageOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultProductPageLimit
	}

	srv.logger.Debug("Listing products",
		slog.String("query", input.Query), slog.String("category", input.Category),
		slog.Int("page", page), slog.Int("limit", limit))

	products, total, err := srv.productRepo.GetProducts(ctx, input.Query, input.Category, page, limit)
	if err != nil {
		if errors.Is(err, repository.ErrCatalogUnavailable) {
			return nil, domainerrors.ErrCatalogUnavailable.WrapMessage("failed to list products")
		}

		return nil, errors.Wrap(err, "failed to list products")
	}

	totalPages := (total + limit - 1) / limit
	if total > 0 && totalPages == 0 {
		totalPages = 1
	}

	return &usecase.ProductPageOutput{
		Products:       products,
		TotalProducts:  total,
		TotalPages:     totalPages,
		CurrentPage:    page,
		ProductsOnPage: len(products),
	}, nil
}

// GetProduct returns a single product by id.
func (srv *productService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := srv.productRepo.GetProductByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return nil, domainerrors.ErrProductNotFound.WrapMessage("product not found")
		case errors.Is(err, repository.ErrCatalogUnavailable):
			return nil, domainerrors.ErrCatalogUnavailable.WrapMessage("failed to load product")
		default:
			return nil, errors.Wrap(err, "failed to load product")
		}
	}

	return product, nil
}

// ListCategories returns the known product categories.
func (srv *productService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := srv.productRepo.GetCategories(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrCatalogUnavailable) {
			return nil, domainerrors.ErrCatalogUnavailable.WrapMessage("failed to list categories")
		}

		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}
