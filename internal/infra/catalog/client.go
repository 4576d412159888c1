// Package catalog integrates the upstream product API and caches its data.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"clearpass/config"
	"clearpass/internal/domain/entity"
	"clearpass/internal/domain/repository"
	"clearpass/internal/domain/service"

	"github.com/pkg/errors"
)

const sourceAPIName = "dummyjson"

// ClientImpl talks to the upstream product API over HTTP.
type ClientImpl struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an upstream catalog client from catalog.baseUrl and
// catalog.requestTimeout.
func NewClient(cfg *config.Config, logger *slog.Logger) (service.CatalogClient, error) {
	if cfg.Catalog == nil || cfg.Catalog.BaseURL == "" {
		return nil, errors.New("catalog.baseUrl is not configured")
	}

	return &ClientImpl{
		baseURL:    strings.TrimRight(cfg.Catalog.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Catalog.RequestTimeout},
		logger:     logger,
	}, nil
}

// FetchPage implements service.CatalogClient interface. A search query uses
// the upstream search endpoint, a category the category endpoint, otherwise
// the plain listing. An unknown category upstream answers 404, which maps to
// an empty page rather than an error.
func (c *ClientImpl) FetchPage(ctx context.Context, query, category string, limit, skip int) (*service.CatalogPage, error) {
	var endpoint string
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("skip", strconv.Itoa(skip))

	switch {
	case query != "":
		endpoint = c.baseURL + "/products/search"
		params.Set("q", query)
	case category != "":
		endpoint = c.baseURL + "/products/category/" + url.PathEscape(category)
	default:
		endpoint = c.baseURL + "/products"
	}

	var page originPage
	status, err := c.getJSON(ctx, endpoint+"?"+params.Encode(), &page)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		c.logger.Warn("Upstream returned 404 for category listing",
			slog.String("category", category))

		return &service.CatalogPage{Products: []entity.Product{}}, nil
	}

	products := make([]entity.Product, 0, len(page.Products))
	for _, raw := range page.Products {
		product, err := raw.toEntity(sourceAPIName)
		if err != nil {
			c.logger.Warn("Skipping malformed product record",
				slog.String("id", raw.ID.String()), slog.Any("error", err))
			continue
		}
		products = append(products, product)
	}

	return &service.CatalogPage{Products: products, Total: page.Total}, nil
}

// FetchByID implements service.CatalogClient interface
func (c *ClientImpl) FetchByID(ctx context.Context, id string) (*entity.Product, error) {
	var raw originProduct
	status, err := c.getJSON(ctx, c.baseURL+"/products/"+url.PathEscape(id), &raw)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, repository.ErrProductNotFound
	}

	product, err := raw.toEntity(sourceAPIName)
	if err != nil {
		return nil, errors.Wrapf(err, "product %s is malformed", id)
	}

	return &product, nil
}

// FetchCategories implements service.CatalogClient interface. Upstream
// deployments answer either a list of slugs or a list of category objects.
func (c *ClientImpl) FetchCategories(ctx context.Context) ([]string, error) {
	var raw json.RawMessage
	status, err := c.getJSON(ctx, c.baseURL+"/products/categories", &raw)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return []string{}, nil
	}

	var slugs []string
	if err := json.Unmarshal(raw, &slugs); err == nil {
		return slugs, nil
	}

	var objects []struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(raw, &objects); err == nil {
		slugs = make([]string, 0, len(objects))
		for _, obj := range objects {
			slugs = append(slugs, obj.Slug)
		}

		return slugs, nil
	}

	return nil, errors.Wrap(repository.ErrCatalogUnavailable, "unexpected categories payload")
}

// getJSON performs a GET and decodes the body. 404 is reported through the
// returned status so callers decide what absence means; other non-2xx
// statuses and transport failures map to ErrCatalogUnavailable.
func (c *ClientImpl) getJSON(ctx context.Context, endpoint string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to build upstream request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Upstream request failed",
			slog.String("endpoint", endpoint), slog.Any("error", err))

		return 0, errors.Wrap(repository.ErrCatalogUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return http.StatusNotFound, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Upstream returned unexpected status",
			slog.String("endpoint", endpoint), slog.Int("status", resp.StatusCode))

		return resp.StatusCode, errors.Wrap(repository.ErrCatalogUnavailable,
			fmt.Sprintf("upstream status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, errors.Wrap(repository.ErrCatalogUnavailable, "failed to decode upstream response")
	}

	return resp.StatusCode, nil
}
