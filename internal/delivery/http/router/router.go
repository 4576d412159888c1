// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"clearpass/internal/delivery/http/middleware"
	"clearpass/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	ProductHandler  *handler.ProductHandler
	ImporterHandler *handler.ImporterHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	productHandler  *handler.ProductHandler
	importerHandler *handler.ImporterHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		productHandler:  params.ProductHandler,
		importerHandler: params.ImporterHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/google/callback", r.authHandler.GoogleCallback)
	}

	// Account routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.authHandler.GetProfile)
		userGroup.PUT("/profile", r.authHandler.UpdateProfile)
		userGroup.DELETE("/profile", r.authHandler.DeleteAccount)
	}

	// Catalog routes, open to anonymous callers
	apiGroup := e.Group("/api")
	{
		apiGroup.GET("/products", r.productHandler.ListProducts)
		apiGroup.GET("/products/:id", r.productHandler.GetProduct)
		apiGroup.GET("/categories", r.productHandler.ListCategories)
	}

	// Importer directory routes
	importerGroup := apiGroup.Group("/importers")
	{
		importerGroup.GET("", r.importerHandler.ListImporters)
		importerGroup.POST("", r.importerHandler.CreateImporter)
		importerGroup.GET("/ranking", r.importerHandler.RankImporters)
		importerGroup.GET("/:id", r.importerHandler.GetImporter)
		importerGroup.PUT("/:id", r.importerHandler.UpdateImporter)
		importerGroup.DELETE("/:id", r.importerHandler.DeleteImporter)
	}

	// Premium-only ranking routes require a valid token and a premium account
	premiumGroup := apiGroup.Group("/importers/top")
	premiumGroup.Use(r.authMiddleware.Authenticate)
	premiumGroup.Use(r.authMiddleware.RequirePremium)
	{
		premiumGroup.GET("", r.importerHandler.TopImporters)
		premiumGroup.GET("/chinese", r.importerHandler.TopChineseImporters)
	}
}
