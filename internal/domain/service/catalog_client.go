package service

import (
	"context"

	"clearpass/internal/domain/entity"
)

// CatalogPage is one page of normalized products plus the origin-reported
// total for the whole result set.
type CatalogPage struct {
	Products []entity.Product
	Total    int
}

// CatalogClient is the sole component performing outbound HTTP calls to the
// product origin. Network timeouts, connection failures, bad statuses and
// malformed JSON are all collapsed into errors at this boundary; a 404 on a
// per-category listing counts as zero results, not an error.
type CatalogClient interface {
	// FetchPage retrieves one origin page. When query is set the origin's
	// search endpoint is used; when category is set, the category endpoint;
	// otherwise the base listing. limit and skip follow origin semantics.
	FetchPage(ctx context.Context, query, category string, limit, skip int) (*CatalogPage, error)

	// FetchByID retrieves a single product.
	FetchByID(ctx context.Context, id string) (*entity.Product, error)

	// FetchCategories lists the origin's category names.
	FetchCategories(ctx context.Context) ([]string, error)
}
