package handler

import (
	"log/slog"
	"net/http"

	"clearpass/internal/delivery/http/response"
	"clearpass/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ImporterHandler holds dependencies for importer directory and ranking
// handlers.
type ImporterHandler struct {
	uc      usecase.ImporterUsecase
	ranking usecase.RankingUsecase
	logger  *slog.Logger
}

// NewImporterHandler is the constructor for ImporterHandler, injected by Fx.
func NewImporterHandler(uc usecase.ImporterUsecase, ranking usecase.RankingUsecase, logger *slog.Logger) *ImporterHandler {
	return &ImporterHandler{
		uc:      uc,
		ranking: ranking,
		logger:  logger,
	}
}

type importerRequest struct {
	CompanyName        string   `json:"company_name" validate:"required"`
	RUC                string   `json:"ruc"`
	CountryOfOrigin    string   `json:"country_of_origin"`
	ContactEmail       string   `json:"contact_email" validate:"omitempty,email"`
	ContactPhone       string   `json:"contact_phone"`
	FiscalAddress      string   `json:"fiscal_address"`
	SpecialtyProducts  []string `json:"specialty_products"`
	RegistrationDate   string   `json:"registration_date"`
	ImportVolumeUSD    float64  `json:"import_volume_usd" validate:"gte=0"`
	YearsInBusiness    int      `json:"years_in_business" validate:"gte=0"`
	SuccessfulImports  int      `json:"successful_imports" validate:"gte=0"`
	ClientSatisfaction float64  `json:"client_satisfaction_rating" validate:"gte=0,lte=5"`
}

func (r importerRequest) toInput(id string) usecase.SaveImporterInput {
	return usecase.SaveImporterInput{
		ID:                 id,
		CompanyName:        r.CompanyName,
		RUC:                r.RUC,
		CountryOfOrigin:    r.CountryOfOrigin,
		ContactEmail:       r.ContactEmail,
		ContactPhone:       r.ContactPhone,
		FiscalAddress:      r.FiscalAddress,
		SpecialtyProducts:  r.SpecialtyProducts,
		RegistrationDate:   r.RegistrationDate,
		ImportVolumeUSD:    r.ImportVolumeUSD,
		YearsInBusiness:    r.YearsInBusiness,
		SuccessfulImports:  r.SuccessfulImports,
		ClientSatisfaction: r.ClientSatisfaction,
	}
}

// ListImporters returns every importer in the directory.
func (h *ImporterHandler) ListImporters(c echo.Context) error {
	importers, err := h.uc.ListImporters(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, importers, "Importers retrieved successfully")
}

// GetImporter resolves a single importer by id.
func (h *ImporterHandler) GetImporter(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Importer ID is required")
	}

	importer, err := h.uc.GetImporter(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, importer, "Importer retrieved successfully")
}

// CreateImporter registers a new importer.
func (h *ImporterHandler) CreateImporter(c echo.Context) error {
	var req importerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid importer input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid importer field values")
	}

	importer, err := h.uc.SaveImporter(c.Request().Context(), req.toInput(""))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, importer, "Importer created successfully")
}

// UpdateImporter replaces an existing importer's data.
func (h *ImporterHandler) UpdateImporter(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Importer ID is required")
	}

	var req importerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid importer input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid importer field values")
	}

	importer, err := h.uc.SaveImporter(c.Request().Context(), req.toInput(id))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, importer, "Importer updated successfully")
}

// DeleteImporter removes an importer from the directory.
func (h *ImporterHandler) DeleteImporter(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Importer ID is required")
	}

	if err := h.uc.DeleteImporter(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Importer deleted successfully")
}

// RankImporters returns the directory ordered by the requested criteria.
// Supported query parameters: criteria and country.
func (h *ImporterHandler) RankImporters(c echo.Context) error {
	importers, err := h.ranking.RankImporters(c.Request().Context(), usecase.RankingInput{
		Criteria: c.QueryParam("criteria"),
		Country:  c.QueryParam("country"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, importers, "Ranking retrieved successfully")
}

// TopImporters returns the n best importers by the requested criteria.
// Premium only.
func (h *ImporterHandler) TopImporters(c echo.Context) error {
	n := intQueryParam(c, "n", 10)

	importers, err := h.ranking.TopImporters(c.Request().Context(), n, usecase.RankingInput{
		Criteria: c.QueryParam("criteria"),
		Country:  c.QueryParam("country"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, importers, "Top importers retrieved successfully")
}

// TopChineseImporters returns the curated top-10 Chinese importers ranked by
// the requested criteria. Premium only.
func (h *ImporterHandler) TopChineseImporters(c echo.Context) error {
	importers, err := h.ranking.TopChineseImporters(c.Request().Context(), c.QueryParam("criteria"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, importers, "Top Chinese importers retrieved successfully")
}
