package usecase

import (
	"context"

	"clearpass/internal/domain/entity"
)

// ListProductsInput carries the catalog query parameters.
type ListProductsInput struct {
	Query    string
	Category string
	Page     int
	Limit    int
}

// ProductPageOutput is one page of catalog results with pagination metadata.
type ProductPageOutput struct {
	Products       []entity.Product
	TotalProducts  int
	TotalPages     int
	CurrentPage    int
	ProductsOnPage int
}

// ProductUsecase defines the interface for catalog operations.
type ProductUsecase interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductPageOutput, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}
