package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"clearpass/internal/delivery/http/response"
	"clearpass/internal/domain/entity"
	"clearpass/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for catalog handlers.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: logger,
	}
}

type productPageResponse struct {
	Products       []entity.Product `json:"products"`
	TotalProducts  int              `json:"total_products"`
	TotalPages     int              `json:"total_pages"`
	CurrentPage    int              `json:"current_page"`
	ProductsOnPage int              `json:"products_on_page"`
}

// ListProducts serves one page of the catalog. Supported query parameters:
// q (free-text search), category, page and limit.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	input := usecase.ListProductsInput{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Page:     intQueryParam(c, "page", 1),
		Limit:    intQueryParam(c, "limit", 0),
	}

	output, err := h.uc.ListProducts(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, productPageResponse{
		Products:       output.Products,
		TotalProducts:  output.TotalProducts,
		TotalPages:     output.TotalPages,
		CurrentPage:    output.CurrentPage,
		ProductsOnPage: output.ProductsOnPage,
	}, "Products retrieved successfully")
}

// GetProduct resolves a single product by its local identifier.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Product ID is required")
	}

	product, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

// ListCategories enumerates the catalog's category names.
func (h *ProductHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string][]string{"categories": categories}, "Categories retrieved successfully")
}

// intQueryParam parses an integer query parameter, falling back to def when
// the parameter is absent or malformed.
func intQueryParam(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}

	return value
}
