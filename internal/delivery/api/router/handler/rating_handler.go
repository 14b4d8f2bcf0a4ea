package handler

import (
	"log/slog"
	"net/http"

	"shopkart/internal/delivery/api/middleware"
	"shopkart/internal/delivery/api/response"
	"shopkart/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RatingHandlerParams holds dependencies for RatingHandler, injected by Fx.
type RatingHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// RatingHandler holds dependencies for rating-related handlers
type RatingHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewRatingHandler is the constructor for RatingHandler
func NewRatingHandler(params RatingHandlerParams) *RatingHandler {
	return &RatingHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// RateProduct handles a rating submission for a product
func (h *RatingHandler) RateProduct(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	var input usecase.RateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}

	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input.UserID = userID
	input.ProductID = productID

	rating, err := h.catalogUC.RateProduct(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, rating)
}

// ListProductRatings handles retrieving all ratings for a product
func (h *RatingHandler) ListProductRatings(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	ratings, err := h.catalogUC.ListProductRatings(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, ratings)
}
