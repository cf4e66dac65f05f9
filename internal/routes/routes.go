package routes

import (
	"github.com/gin-gonic/gin"

	"orchard_back_end/internal/config"
	"orchard_back_end/internal/database"
	"orchard_back_end/internal/handlers"
	"orchard_back_end/internal/i18n"
	"orchard_back_end/internal/middleware"
	"orchard_back_end/internal/repository"
	"orchard_back_end/internal/services"
)

// RegisterRoutes wires repositories, services and handlers onto the engine.
// Called once the database clients are connected.
func RegisterRoutes(r *gin.Engine, bundle *i18n.Bundle) {
	userRepo := repository.NewUserRepository(database.MongoDB)
	categoryRepo := repository.NewCategoryRepository(database.MongoDB)
	productRepo := repository.NewProductRepository(database.MongoDB)
	orderRepo := repository.NewOrderRepository(database.MongoDB)

	searchService := services.NewSearchService()
	authService := services.NewAuthService(userRepo)
	categoryService := services.NewCategoryService(categoryRepo, productRepo)
	productService := services.NewProductService(productRepo, categoryRepo, searchService)
	orderService := services.NewOrderService(orderRepo, productRepo, userRepo,
		services.NewRedisNotifier(), services.NewMailService())

	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService, searchService)
	orderHandler := handlers.NewOrderHandler(orderService)

	api := r.Group(config.Get("API_PREFIX", "/api/v1"))
	api.Use(i18n.Middleware(bundle))

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/profile", middleware.AuthRequired(), authHandler.Profile)
		auth.PUT("/profile", middleware.AuthRequired(), authHandler.UpdateProfile)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.POST("", middleware.AuthRequired(), middleware.RequireAdmin, categoryHandler.Create)
		categories.PUT("/:id", middleware.AuthRequired(), middleware.RequireAdmin, categoryHandler.Update)
		categories.DELETE("/:id", middleware.AuthRequired(), middleware.RequireAdmin, categoryHandler.Delete)
	}

	products := api.Group("/products", middleware.AuthRequired())
	{
		products.GET("", productHandler.List)
		products.GET("/search", productHandler.Search)
		products.GET("/:id", productHandler.Get)
		products.POST("", middleware.RequireAdmin, productHandler.Create)
		products.PUT("/:id", middleware.RequireAdmin, productHandler.Update)
		products.DELETE("/:id", middleware.RequireAdmin, productHandler.Delete)
	}

	orders := api.Group("/orders", middleware.AuthRequired())
	{
		orders.POST("", orderHandler.Create)
		orders.GET("", orderHandler.List)
		orders.GET("/events", handlers.OrderEvents)
		orders.GET("/:id", orderHandler.Get)
		orders.POST("/:id/cancel", orderHandler.Cancel)
		orders.PATCH("/:id/change-status", middleware.RequireAdmin, orderHandler.ChangeStatus)
		orders.DELETE("/:id", middleware.RequireAdmin, orderHandler.Delete)
	}
}
