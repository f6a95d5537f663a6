package router

import (
	"github.com/amorpet/amorpet-backend/config"
	"github.com/amorpet/amorpet-backend/internal/app/controller"
	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	catalogController      *controller.CatalogController
	productController      *controller.ProductController
	variantController      *controller.VariantController
	categoryController     *controller.CategoryController
	colorController        *controller.ColorController
	sizeController         *controller.SizeController
	contactController      *controller.ContactController
	authController         *controller.AuthController
	notificationController *controller.NotificationController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	catalogController *controller.CatalogController,
	productController *controller.ProductController,
	variantController *controller.VariantController,
	categoryController *controller.CategoryController,
	colorController *controller.ColorController,
	sizeController *controller.SizeController,
	contactController *controller.ContactController,
	authController *controller.AuthController,
	notificationController *controller.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		catalogController:      catalogController,
		productController:      productController,
		variantController:      variantController,
		categoryController:     categoryController,
		colorController:        colorController,
		sizeController:         sizeController,
		contactController:      contactController,
		authController:         authController,
		notificationController: notificationController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "AmorPet API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Public storefront
		catalog := v1.Group("/catalog")
		{
			catalog.GET("", r.catalogController.ListCatalog)
			catalog.GET("/:id", r.catalogController.GetCatalogEntry)
		}

		v1.GET("/categories", r.categoryController.ListCategories)
		v1.GET("/colors", r.colorController.ListColors)

		contact := v1.Group("/contact")
		{
			contact.GET("/captcha", r.contactController.GetCaptcha)
			contact.POST("", r.contactController.SubmitContact)
		}

		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		// Back-office
		admin := v1.Group("/admin")
		admin.Use(
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(string(model.RoleAdmin), string(model.RoleSuperAdmin)),
		)
		{
			products := admin.Group("/products")
			{
				products.GET("", r.productController.ListProducts)
				products.GET("/export", r.productController.ExportCatalog)
				products.GET("/:id", r.productController.GetProduct)
				products.POST("", r.productController.CreateProduct)
				products.PUT("/:id", r.productController.UpdateProduct)
				products.DELETE("/:id", r.productController.DeleteProduct)
				products.PUT("/:id/prices", r.productController.UpdatePrices)
				products.POST("/:id/images", r.productController.UploadImages)
				products.GET("/:id/sizes", r.sizeController.ListSizes)
				products.POST("/:id/sizes", r.sizeController.CreateSize)
			}

			sizes := admin.Group("/sizes")
			{
				sizes.PUT("/:id", r.sizeController.UpdateSize)
				sizes.DELETE("/:id", r.sizeController.DeleteSize)
			}

			variants := admin.Group("/variants")
			{
				variants.GET("", r.variantController.ListVariants)
				variants.GET("/:id", r.variantController.GetVariant)
				variants.POST("", r.variantController.CreateVariant)
				variants.PUT("/:id", r.variantController.UpdateVariant)
				variants.DELETE("/:id", r.variantController.DeleteVariant)
			}

			categories := admin.Group("/categories")
			{
				categories.POST("", r.categoryController.CreateCategory)
				categories.PUT("/:id", r.categoryController.UpdateCategory)
				categories.DELETE("/:id", r.categoryController.DeleteCategory)
			}

			colors := admin.Group("/colors")
			{
				colors.POST("", r.colorController.CreateColor)
				colors.PUT("/:id", r.colorController.UpdateColor)
				colors.DELETE("/:id", r.colorController.DeleteColor)
			}

			contacts := admin.Group("/contacts")
			{
				contacts.GET("", r.contactController.ListContacts)
				contacts.GET("/:id", r.contactController.GetContact)
				contacts.PATCH("/:id/status", r.contactController.UpdateContactStatus)
			}

			admin.GET("/notifications/ws", r.notificationController.Stream)

			users := admin.Group("/users")
			users.Use(r.authMiddleware.RequireRole(string(model.RoleSuperAdmin)))
			{
				users.GET("", r.authController.ListAdmins)
				users.POST("", r.authController.CreateAdmin)
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
