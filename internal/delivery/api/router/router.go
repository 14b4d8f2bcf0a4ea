// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"shopkart/config"
	"shopkart/internal/delivery/api/middleware"
	"shopkart/internal/delivery/api/router/handler"
	"shopkart/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	BrandHandler   *handler.BrandHandler
	ProductHandler *handler.ProductHandler
	RatingHandler  *handler.RatingHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	brandHandler   *handler.BrandHandler
	productHandler *handler.ProductHandler
	ratingHandler  *handler.RatingHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		brandHandler:   params.BrandHandler,
		productHandler: params.ProductHandler,
		ratingHandler:  params.RatingHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")

	// Account routes; token issuance and rotation stay public, the rest
	// require a valid access token.
	usersGroup := apiV1.Group("/users")
	{
		usersGroup.POST("/register", r.authHandler.Register)
		usersGroup.POST("/login", r.authHandler.Login)
		usersGroup.POST("/refresh-token", r.authHandler.Refresh)

		authedUsers := usersGroup.Group("")
		authedUsers.Use(r.authMiddleware.Authenticate)
		{
			authedUsers.POST("/logout", r.authHandler.Logout)
			authedUsers.POST("/change-password", r.authHandler.ChangePassword)
			authedUsers.GET("/me", r.authHandler.Me)
		}
	}

	// Brand routes; reads are public, creation is restricted to admins.
	brandsGroup := apiV1.Group("/brands")
	{
		brandsGroup.GET("", r.brandHandler.ListBrands)
		brandsGroup.GET("/:id", r.brandHandler.GetBrand)

		adminBrands := brandsGroup.Group("")
		adminBrands.Use(r.authMiddleware.Authenticate)
		adminBrands.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
		{
			adminBrands.POST("", r.brandHandler.CreateBrand)
		}
	}

	// Product routes; reads are public, listing products requires a seller
	// or admin account.
	productsGroup := apiV1.Group("/products")
	{
		productsGroup.GET("", r.productHandler.ListProducts)
		productsGroup.GET("/:id", r.productHandler.GetProduct)
		productsGroup.GET("/:id/qrcode", r.productHandler.ProductQRCode)
		productsGroup.GET("/:id/ratings", r.ratingHandler.ListProductRatings)

		sellerProducts := productsGroup.Group("")
		sellerProducts.Use(r.authMiddleware.Authenticate)
		sellerProducts.Use(r.authMiddleware.RequireRole(entity.RoleSeller, entity.RoleAdmin))
		{
			sellerProducts.POST("", r.productHandler.CreateProduct)
		}

		ratedProducts := productsGroup.Group("")
		ratedProducts.Use(r.authMiddleware.Authenticate)
		{
			ratedProducts.POST("/:id/ratings", r.ratingHandler.RateProduct)
		}
	}
}
