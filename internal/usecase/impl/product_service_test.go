package impl

import (
	"context"
	"testing"

	"clearpass/internal/domain/entity"
	domainerrors "clearpass/internal/domain/errors"
	"clearpass/internal/domain/repository"
	"clearpass/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(repo *fakeProductRepo) usecase.ProductUsecase {
	return NewProductService(ProductServiceParams{
		ProductRepo: repo,
		Logger:      newDiscardLogger(),
	})
}

func TestProductService_ListProducts(t *testing.T) {
	repo := &fakeProductRepo{
		products: []entity.Product{{ID: "1"}, {ID: "2"}},
		total:    25,
	}
	svc := newProductService(repo)

	out, err := svc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, out.TotalProducts)
	assert.Equal(t, 3, out.TotalPages)
	assert.Equal(t, 2, out.CurrentPage)
	assert.Equal(t, 2, out.ProductsOnPage)
}

func TestProductService_ListProductsDefaults(t *testing.T) {
	repo := &fakeProductRepo{products: []entity.Product{{ID: "1"}}, total: 1}
	svc := newProductService(repo)

	out, err := svc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 0, Limit: -5})
	require.NoError(t, err)
	assert.Equal(t, 1, out.CurrentPage)
	assert.Equal(t, 1, out.TotalPages)
}

func TestProductService_ListProductsPageMath(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		limit     int
		wantPages int
	}{
		{"exact multiple", 20, 10, 2},
		{"with remainder", 21, 10, 3},
		{"fewer than one page", 3, 10, 1},
		{"no results", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeProductRepo{total: tt.total}
			svc := newProductService(repo)

			out, err := svc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: tt.limit})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPages, out.TotalPages)
		})
	}
}

func TestProductService_ListProductsUnavailable(t *testing.T) {
	repo := &fakeProductRepo{err: repository.ErrCatalogUnavailable}
	svc := newProductService(repo)

	_, err := svc.ListProducts(context.Background(), usecase.ListProductsInput{})
	assert.ErrorIs(t, err, domainerrors.ErrCatalogUnavailable)
}

func TestProductService_GetProduct(t *testing.T) {
	repo := &fakeProductRepo{products: []entity.Product{{ID: "7", Name: "Widget"}}}
	svc := newProductService(repo)
	ctx := context.Background()

	product, err := svc.GetProduct(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "Widget", product.Name)

	_, err = svc.GetProduct(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_GetProductUnavailable(t *testing.T) {
	repo := &fakeProductRepo{byIDErr: repository.ErrCatalogUnavailable}
	svc := newProductService(repo)

	_, err := svc.GetProduct(context.Background(), "1")
	assert.ErrorIs(t, err, domainerrors.ErrCatalogUnavailable)
}

func TestProductService_ListCategories(t *testing.T) {
	repo := &fakeProductRepo{categories: []string{"beauty", "electronics"}}
	svc := newProductService(repo)

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"beauty", "electronics"}, categories)
}
