package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"shopkart/internal/delivery/api/middleware"
	"shopkart/internal/delivery/api/response"
	"shopkart/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	defaultProductPageSize = 20
	maxProductPageSize     = 100
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// ProductHandler holds dependencies for product-related handlers
type ProductHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// CreateProduct handles product creation by sellers and admins
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	role, ok := middleware.GetUserRole(c)
	if !ok {
		return response.Forbidden(c, "FORBIDDEN", "Role information missing")
	}

	var input usecase.CreateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input.OwnerID = userID
	input.OwnerRole = string(role)

	product, err := h.catalogUC.CreateProduct(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, product)
}

// ListProducts handles the paginated product listing
func (h *ProductHandler) ListProducts(c echo.Context) error {
	limit := queryInt(c, "limit", defaultProductPageSize)
	if limit <= 0 || limit > maxProductPageSize {
		limit = defaultProductPageSize
	}

	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	products, err := h.catalogUC.ListProducts(c.Request().Context(), limit, offset)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products)
}

// GetProduct handles retrieving a single product
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	product, err := h.catalogUC.GetProduct(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// ProductQRCode renders the product share code as a PNG image
func (h *ProductHandler) ProductQRCode(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	png, err := h.catalogUC.ProductQRCode(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
