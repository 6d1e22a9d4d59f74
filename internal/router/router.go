package router

import (
	"net/http"

	"github.com/foodgram/foodgram-backend/config"
	"github.com/foodgram/foodgram-backend/internal/app/controller"
	"github.com/foodgram/foodgram-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	recipeController     *controller.RecipeController
	userController       *controller.UserController
	tagController        *controller.TagController
	ingredientController *controller.IngredientController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	recipeController *controller.RecipeController,
	userController *controller.UserController,
	tagController *controller.TagController,
	ingredientController *controller.IngredientController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		recipeController:     recipeController,
		userController:       userController,
		tagController:        tagController,
		ingredientController: ingredientController,
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
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Foodgram API is running",
		})
	})

	if r.config.Storage.Type != "s3" {
		router.Static("/media", r.config.Storage.LocalDir)
	}

	authenticated := r.authMiddleware.Authenticate()
	optional := r.authMiddleware.OptionalAuthenticate()

	api := router.Group("/api")
	{
		recipes := api.Group("/recipes")
		{
			recipes.GET("", optional, r.recipeController.ListRecipes)
			recipes.POST("", authenticated, r.recipeController.CreateRecipe)
			recipes.GET("/download_shopping_cart", authenticated, r.recipeController.DownloadShoppingCart)
			recipes.GET("/:id", optional, r.recipeController.GetRecipe)
			recipes.PATCH("/:id", authenticated, r.recipeController.UpdateRecipe)
			recipes.DELETE("/:id", authenticated, r.recipeController.DeleteRecipe)

			recipes.GET("/:id/favorite", authenticated, r.recipeController.AddFavorite)
			recipes.POST("/:id/favorite", authenticated, r.recipeController.AddFavorite)
			recipes.DELETE("/:id/favorite", authenticated, r.recipeController.RemoveFavorite)

			recipes.GET("/:id/shopping_cart", authenticated, r.recipeController.AddToShoppingCart)
			recipes.POST("/:id/shopping_cart", authenticated, r.recipeController.AddToShoppingCart)
			recipes.DELETE("/:id/shopping_cart", authenticated, r.recipeController.RemoveFromShoppingCart)
		}

		users := api.Group("/users")
		{
			users.GET("", optional, r.userController.ListUsers)
			users.POST("", r.userController.Register)
			users.GET("/me", authenticated, r.userController.Me)
			users.GET("/subscriptions", authenticated, r.userController.Subscriptions)
			users.GET("/:id", optional, r.userController.GetUser)
			users.DELETE("/:id", r.userController.DeleteUser)

			users.GET("/:id/subscribe", authenticated, r.userController.Subscribe)
			users.POST("/:id/subscribe", authenticated, r.userController.Subscribe)
			users.DELETE("/:id/subscribe", authenticated, r.userController.Unsubscribe)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", r.tagController.ListTags)
			tags.GET("/:id", r.tagController.GetTag)
		}

		ingredients := api.Group("/ingredients")
		{
			ingredients.GET("", r.ingredientController.ListIngredients)
			ingredients.GET("/:id", r.ingredientController.GetIngredient)
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
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
