package handler

import (
	"log/slog"
	"net/http"

	"shopkart/internal/delivery/api/response"
	"shopkart/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BrandHandlerParams holds dependencies for BrandHandler, injected by Fx.
type BrandHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// BrandHandler holds dependencies for brand-related handlers
type BrandHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewBrandHandler is the constructor for BrandHandler
func NewBrandHandler(params BrandHandlerParams) *BrandHandler {
	return &BrandHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// CreateBrand handles brand creation
func (h *BrandHandler) CreateBrand(c echo.Context) error {
	var input usecase.CreateBrandInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid brand input")
	}

	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	brand, err := h.catalogUC.CreateBrand(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, brand)
}

// ListBrands handles retrieving all brands
func (h *BrandHandler) ListBrands(c echo.Context) error {
	brands, err := h.catalogUC.ListBrands(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, brands)
}

// GetBrand handles retrieving a single brand
func (h *BrandHandler) GetBrand(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid brand ID")
	}

	brand, err := h.catalogUC.GetBrand(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, brand)
}
