package catalog

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"clearpass/config"
	"clearpass/internal/domain/entity"
	"clearpass/internal/domain/repository"
	"clearpass/internal/domain/service"
)

const defaultPageLimit = 10

type listKey struct {
	query    string
	category string
	page     int
	limit    int
}

type listEntry struct {
	products  []entity.Product
	total     int
	expiresAt time.Time
}

type materialized struct {
	products  []entity.Product
	expiresAt time.Time
}

type categoriesEntry struct {
	categories []string
	expiresAt  time.Time
}

type idEntry struct {
	product   entity.Product
	expiresAt time.Time
}

// CachedProductRepository serves product queries from an in-memory cache in
// front of the upstream client. The full upstream list is materialized once
// per TTL window; search, category filtering, and pagination run locally so
// a burst of differing queries costs one upstream round of page fetches.
type CachedProductRepository struct {
	client   service.CatalogClient
	pageSize int
	ttl      time.Duration
	logger   *slog.Logger

	// now is swapped out in tests to step the clock
	now func() time.Time

	mu         sync.Mutex
	all        *materialized
	lists      map[listKey]listEntry
	byID       map[string]idEntry
	categories *categoriesEntry
}

// NewCachedProductRepository creates the caching repository configured by
// catalog.pageSize and catalog.cacheTtl.
func NewCachedProductRepository(
	cfg *config.Config,
	client service.CatalogClient,
	logger *slog.Logger,
) repository.ProductRepository {
	pageSize := 100
	ttl := 5 * time.Minute
	if cfg.Catalog != nil {
		if cfg.Catalog.PageSize > 0 {
			pageSize = cfg.Catalog.PageSize
		}
		if cfg.Catalog.CacheTTL > 0 {
			ttl = cfg.Catalog.CacheTTL
		}
	}

	return &CachedProductRepository{
		client:   client,
		pageSize: pageSize,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		lists:    make(map[listKey]listEntry),
		byID:     make(map[string]idEntry),
	}
}

// GetProducts implements repository.ProductRepository interface. It returns
// the requested page of matching products and the total match count.
func (r *CachedProductRepository) GetProducts(ctx context.Context, query, category string, page, limit int) ([]entity.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}

	key := listKey{
		query:    strings.ToLower(strings.TrimSpace(query)),
		category: strings.ToLower(strings.TrimSpace(category)),
		page:     page,
		limit:    limit,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.lists[key]; ok && r.now().Before(entry.expiresAt) {
		r.logger.Debug("Product list served from cache",
			slog.String("query", key.query), slog.String("category", key.category),
			slog.Int("page", page), slog.Int("limit", limit))

		return append([]entity.Product(nil), entry.products...), entry.total, nil
	}

	all, err := r.materializeLocked(ctx)
	if err != nil {
		return nil, 0, err
	}

	filtered := r.filter(all, key.query, key.category)
	total := len(filtered)

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	pageSlice := append([]entity.Product(nil), filtered[start:end]...)

	r.lists[key] = listEntry{
		products:  pageSlice,
		total:     total,
		expiresAt: r.now().Add(r.ttl),
	}

	return append([]entity.Product(nil), pageSlice...), total, nil
}

// GetProductByID implements repository.ProductRepository interface
func (r *CachedProductRepository) GetProductByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	if entry, ok := r.byID[id]; ok && r.now().Before(entry.expiresAt) {
		product := entry.product
		r.mu.Unlock()

		return &product, nil
	}

	// Serve from the materialized list when it is fresh
	if r.all != nil && r.now().Before(r.all.expiresAt) {
		for _, product := range r.all.products {
			if product.ID == id {
				r.byID[id] = idEntry{product: product, expiresAt: r.now().Add(r.ttl)}
				r.mu.Unlock()

				return &product, nil
			}
		}
	}
	r.mu.Unlock()

	product, err := r.client.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.byID[id] = idEntry{product: *product, expiresAt: r.now().Add(r.ttl)}
	r.mu.Unlock()

	return product, nil
}

// GetCategories implements repository.ProductRepository interface
func (r *CachedProductRepository) GetCategories(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	if r.categories != nil && r.now().Before(r.categories.expiresAt) {
		cached := append([]string(nil), r.categories.categories...)
		r.mu.Unlock()

		return cached, nil
	}
	r.mu.Unlock()

	categories, err := r.client.FetchCategories(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.categories = &categoriesEntry{
		categories: categories,
		expiresAt:  r.now().Add(r.ttl),
	}
	r.mu.Unlock()

	return append([]string(nil), categories...), nil
}

// ClearCache implements repository.ProductRepository interface
func (r *CachedProductRepository) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.all = nil
	r.categories = nil
	r.lists = make(map[listKey]listEntry)
	r.byID = make(map[string]idEntry)
	r.logger.Info("Product cache cleared")
}

// materializeLocked returns the full upstream product list, refreshing it
// when stale. A failure mid-fetch leaves the previous state untouched so
// nothing partial is ever cached. Callers must hold the lock.
func (r *CachedProductRepository) materializeLocked(ctx context.Context) ([]entity.Product, error) {
	if r.all != nil && r.now().Before(r.all.expiresAt) {
		return r.all.products, nil
	}

	var products []entity.Product
	skip := 0
	for {
		page, err := r.client.FetchPage(ctx, "", "", r.pageSize, skip)
		if err != nil {
			return nil, err
		}

		products = append(products, page.Products...)
		skip += r.pageSize
		if skip >= page.Total || len(page.Products) == 0 {
			break
		}
	}

	r.all = &materialized{
		products:  products,
		expiresAt: r.now().Add(r.ttl),
	}
	r.logger.Info("Product list materialized", slog.Int("count", len(products)))

	return products, nil
}

// filter applies the search query and category filter. A category that does
// not exist in the data is ignored with a warning instead of matching
// nothing.
func (r *CachedProductRepository) filter(products []entity.Product, query, category string) []entity.Product {
	if category != "" && !r.categoryExists(products, category) {
		r.logger.Warn("Unknown category requested, ignoring filter",
			slog.String("category", category))
		category = ""
	}

	if query == "" && category == "" {
		return products
	}

	filtered := make([]entity.Product, 0, len(products))
	for _, product := range products {
		if category != "" && !strings.EqualFold(product.Category, category) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(product.Name), query) &&
			!strings.Contains(strings.ToLower(product.Description), query) {
			continue
		}
		filtered = append(filtered, product)
	}

	return filtered
}

func (r *CachedProductRepository) categoryExists(products []entity.Product, category string) bool {
	for _, product := range products {
		if strings.EqualFold(product.Category, category) {
			return true
		}
	}

	return false
}
