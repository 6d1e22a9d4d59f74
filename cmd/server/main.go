package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foodgram/foodgram-backend/config"
	"github.com/foodgram/foodgram-backend/internal/app/controller"
	"github.com/foodgram/foodgram-backend/internal/app/presenter"
	"github.com/foodgram/foodgram-backend/internal/app/repository"
	"github.com/foodgram/foodgram-backend/internal/app/service"
	"github.com/foodgram/foodgram-backend/internal/app/shoppinglist"
	"github.com/foodgram/foodgram-backend/internal/db"
	"github.com/foodgram/foodgram-backend/internal/middleware"
	"github.com/foodgram/foodgram-backend/internal/router"
	"github.com/foodgram/foodgram-backend/internal/scheduler"
	"github.com/foodgram/foodgram-backend/internal/storage"
	"github.com/foodgram/foodgram-backend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.ForEnvironment(cfg.Server.Environment))
	logger.Info("Starting Foodgram Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"storage":     cfg.Storage.Type,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations and seed default tags
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	imageStore, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize image storage", err)
	}

	// Initialize services
	uow := repository.NewUnitOfWork(db.GetDB())
	repos := uow.Repositories()

	imageService := service.NewImageService(imageStore, repos.Recipes)
	relationService := service.NewRelationService(uow)
	recipeService := service.NewRecipeService(uow, imageService)
	userService := service.NewUserService(uow)
	tagService := service.NewTagService(repos.Tags)
	ingredientService := service.NewIngredientService(uow)
	shoppingListService := service.NewShoppingListService(
		repos.Recipes,
		shoppinglist.NewRenderer(cfg.ShoppingList.Title, cfg.ShoppingList.FontPath),
	)

	// Initialize controllers
	p := presenter.New(imageService.URL)
	recipeController := controller.NewRecipeController(recipeService, relationService, shoppingListService, p, cfg.Pagination)
	userController := controller.NewUserController(userService, relationService, p, cfg.Pagination)
	tagController := controller.NewTagController(tagService)
	ingredientController := controller.NewIngredientController(ingredientService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		recipeController,
		userController,
		tagController,
		ingredientController,
		authMiddleware,
		cfg,
	)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweeper := scheduler.NewImageSweepScheduler(imageService, cfg.Scheduler.ImageSweepSchedule, cfg.Scheduler.ImageSweepGrace)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("Failed to start image sweep scheduler", err)
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	sweeper.Stop()

	logger.Info("Server stopped successfully")
}
