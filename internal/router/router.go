package router

import (
	"net/http"

	"github.com/rajeshboldtribe/boldserve/config"
	"github.com/rajeshboldtribe/boldserve/internal/dto"
	"github.com/rajeshboldtribe/boldserve/internal/handlers"
	"github.com/rajeshboldtribe/boldserve/internal/middleware"
	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// multipartSlack: запас под поля формы поверх лимита на файл.
const multipartSlack = 1 << 20

type Services struct {
	Taxonomy service.TaxonomyService
	Catalog  service.CatalogService
	Orders   service.OrderService
	Payments service.PaymentService
	Users    service.UserService
}

func Router(cfg *config.Config, svc Services, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	origins := cfg.CORS.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.APIKeyHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(middleware.SecurityHeaders())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.Static("/uploads", cfg.Upload.Dir)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("route not found"))
	})

	admin := middleware.APIKeyRequired(cfg.Admin.APIKey, log)
	bearer := middleware.AuthRequired(svc.Users, log)
	uploadLimit := middleware.BodyLimit(cfg.Upload.MaxBytes + multipartSlack)

	api := r.Group("/api")

	taxonomy := handlers.NewTaxonomyHandler(svc.Taxonomy, log)
	categories := api.Group("/categories")
	{
		categories.GET("", taxonomy.ListCategories)
		categories.GET("/:categoryId/sub-categories", taxonomy.ListSubCategories)
		categories.POST("", admin, taxonomy.CreateCategory)
		categories.POST("/sub-category", admin, taxonomy.CreateSubCategory)
	}
	subcategories := api.Group("/subcategories")
	{
		subcategories.GET("", taxonomy.ListAllSubCategories)
		subcategories.GET("/category/:categoryId", taxonomy.ListSubCategories)
		subcategories.GET("/slug/:slug", taxonomy.ListSubCategoriesBySlug)
	}

	catalog := handlers.NewCatalogHandler(svc.Catalog, log)
	services := api.Group("/services")
	{
		services.GET("", catalog.ListServices)
		services.GET("/category", catalog.FilterServices)
		services.GET("/:id", catalog.GetService)
		services.POST("", admin, uploadLimit, catalog.CreateService)
		services.PATCH("/:id", admin, uploadLimit, catalog.UpdateService)
		services.DELETE("/:id", admin, catalog.DeleteService)
	}

	orderHandler := handlers.NewOrderHandler(svc.Orders, log)
	orders := api.Group("/orders")
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", admin, orderHandler.ListOrders)
		orders.GET("/status/:status", admin, orderHandler.ListOrdersByStatus)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PATCH("/:id/status", admin, orderHandler.UpdateOrderStatus)
	}

	userHandler := handlers.NewUserHandler(svc.Users, log)
	users := api.Group("/users")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.GET("/verify", userHandler.VerifyEmail)
		users.GET("/check-user", userHandler.CheckUser)
		users.GET("/check-user/:id", userHandler.CheckUser)
		users.GET("", admin, userHandler.ListUsers)

		users.GET("/verify-token", bearer, userHandler.VerifyToken)
		users.GET("/profile", bearer, userHandler.GetProfile)
		users.PUT("/profile", bearer, userHandler.UpdateProfile)
		users.PUT("/profile/image", bearer, uploadLimit, userHandler.UpdateProfileImage)
		users.POST("/logout", bearer, userHandler.Logout)
	}

	paymentHandler := handlers.NewPaymentHandler(svc.Payments, cfg.Payment.FrontendURL, log)
	payments := api.Group("/payments")
	{
		payments.POST("/create", paymentHandler.CreatePayment)
		payments.POST("/:orderId/initiate", paymentHandler.InitiatePayment)
		payments.POST("/callback", paymentHandler.Callback)
		payments.POST("/cancel", paymentHandler.Cancel)
		payments.GET("/status/:orderId", paymentHandler.GetStatus)
		payments.GET("", admin, paymentHandler.ListPayments)
	}

	return r
}
