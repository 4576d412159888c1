package repository

import (
	"context"
	"errors"

	"clearpass/internal/domain/entity"
)

// ErrProductNotFound is returned when a product cannot be resolved locally or
// at the origin.
var ErrProductNotFound = errors.New("product not found")

// ErrCatalogUnavailable is returned when the origin catalog cannot be reached
// or answers with something unusable. Callers treat it uniformly regardless of
// the underlying cause (timeout, connection failure, bad status, bad JSON).
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// ProductRepository shields the application from origin-API latency,
// pagination limits and failures behind a read-through cache.
type ProductRepository interface {
	// GetProducts returns one page of products matching the optional free-text
	// query and category filter, plus the total number of matching records.
	// Results are served from cache when a live entry exists for the same
	// (query, category, page, limit) key.
	GetProducts(ctx context.Context, query, category string, page, limit int) ([]entity.Product, int, error)

	// GetProductByID resolves a single product, preferring cached data.
	GetProductByID(ctx context.Context, id string) (*entity.Product, error)

	// GetCategories enumerates the origin's category names, cached like pages.
	GetCategories(ctx context.Context) ([]string, error)

	// ClearCache drops every cached entry, forcing the next call to refetch.
	ClearCache()
}
