package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jshin/cookshare-backend/config"
	"github.com/jshin/cookshare-backend/internal/app/controller"
	"github.com/jshin/cookshare-backend/internal/middleware"
	"github.com/jshin/cookshare-backend/pkg/redis"
)

type Router struct {
	authController       *controller.AuthController
	userController       *controller.UserController
	tagController        *controller.TagController
	ingredientController *controller.IngredientController
	recipeController     *controller.RecipeController
	favoriteController   *controller.FavoriteController
	cartController       *controller.CartController
	uploadController     *controller.UploadController
	adminController      *controller.AdminController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	tagController *controller.TagController,
	ingredientController *controller.IngredientController,
	recipeController *controller.RecipeController,
	favoriteController *controller.FavoriteController,
	cartController *controller.CartController,
	uploadController *controller.UploadController,
	adminController *controller.AdminController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		userController:       userController,
		tagController:        tagController,
		ingredientController: ingredientController,
		recipeController:     recipeController,
		favoriteController:   favoriteController,
		cartController:       cartController,
		uploadController:     uploadController,
		adminController:      adminController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		redisStatus := "disabled"
		if client := redis.GetClient(); client != nil {
			redisStatus = "ok"
			if err := client.Ping(c.Request.Context()).Err(); err != nil {
				redisStatus = "down"
			}
		}
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "COOKSHARE API is running",
			"redis":   redisStatus,
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateMe)
			auth.POST("/password", r.authMiddleware.Authenticate(), r.authController.ChangePassword)
		}

		users := v1.Group("/users")
		{
			users.GET("", r.authMiddleware.OptionalAuthenticate(), r.userController.ListUsers)
			users.GET("/subscriptions",
				r.authMiddleware.Authenticate(),
				r.userController.Subscriptions,
			)
			users.GET("/:id", r.authMiddleware.OptionalAuthenticate(), r.userController.GetUser)
			users.POST("/:id/subscribe",
				r.authMiddleware.Authenticate(),
				r.userController.Subscribe,
			)
			users.DELETE("/:id/subscribe",
				r.authMiddleware.Authenticate(),
				r.userController.Unsubscribe,
			)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", r.tagController.ListTags)
			tags.GET("/:id", r.tagController.GetTag)
		}

		ingredients := v1.Group("/ingredients")
		{
			ingredients.GET("", r.ingredientController.ListIngredients)
			ingredients.GET("/:id", r.ingredientController.GetIngredient)
		}

		recipes := v1.Group("/recipes")
		{
			// Reads are public; the per-user flags render false for guests
			recipes.GET("", r.authMiddleware.OptionalAuthenticate(), r.recipeController.ListRecipes)
			recipes.GET("/shopping_cart",
				r.authMiddleware.Authenticate(),
				r.cartController.GetShoppingList,
			)
			recipes.GET("/download_shopping_cart",
				r.authMiddleware.Authenticate(),
				r.cartController.DownloadShoppingList,
			)
			recipes.GET("/:id", r.authMiddleware.OptionalAuthenticate(), r.recipeController.GetRecipe)

			recipes.POST("", r.authMiddleware.Authenticate(), r.recipeController.CreateRecipe)
			recipes.PATCH("/:id", r.authMiddleware.Authenticate(), r.recipeController.UpdateRecipe)
			recipes.DELETE("/:id", r.authMiddleware.Authenticate(), r.recipeController.DeleteRecipe)

			recipes.POST("/:id/favorite",
				r.authMiddleware.Authenticate(),
				r.favoriteController.AddFavorite,
			)
			recipes.DELETE("/:id/favorite",
				r.authMiddleware.Authenticate(),
				r.favoriteController.RemoveFavorite,
			)

			recipes.POST("/:id/shopping_cart",
				r.authMiddleware.Authenticate(),
				r.cartController.AddToCart,
			)
			recipes.DELETE("/:id/shopping_cart",
				r.authMiddleware.Authenticate(),
				r.cartController.RemoveFromCart,
			)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			admin.POST("/purge_deleted_recipes", r.adminController.PurgeDeletedRecipes)
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
