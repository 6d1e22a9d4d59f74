package db

import (
	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table in dependency order
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Tag{},
		&model.Ingredient{},
		&model.Recipe{},
		&model.IngredientRecipe{},
		&model.Favorite{},
		&model.ShoppingCartItem{},
		&model.Subscription{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := BackfillIngredientSearchNames(DB); err != nil {
		logger.Error("Failed to backfill ingredient search names", err)
		return err
	}

	if err := SeedTags(DB); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// DefaultTags are created on an empty tags table
var DefaultTags = []model.Tag{
	{Name: "Breakfast", Slug: "breakfast", Color: "#E26C2D"},
	{Name: "Lunch", Slug: "lunch", Color: "#49B64E"},
	{Name: "Dinner", Slug: "dinner", Color: "#8775D2"},
	{Name: "Dessert", Slug: "dessert", Color: "#F2C14E"},
	{Name: "Vegetarian", Slug: "vegetarian", Color: "#2A9D8F"},
}

// SeedTags inserts DefaultTags unless tags already exist
func SeedTags(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Tag{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Tags already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	tags := make([]model.Tag, len(DefaultTags))
	copy(tags, DefaultTags)
	if err := db.Create(&tags).Error; err != nil {
		return err
	}

	logger.Info("Tags seeded", map[string]interface{}{
		"count": len(tags),
	})
	return nil
}

// BackfillIngredientSearchNames fills search_name for rows created before the column existed
func BackfillIngredientSearchNames(db *gorm.DB) error {
	var ingredients []model.Ingredient
	if err := db.Where("search_name = ? AND name <> ?", "", "").Find(&ingredients).Error; err != nil {
		return err
	}
	for _, ingredient := range ingredients {
		err := db.Model(&model.Ingredient{}).
			Where("id = ?", ingredient.ID).
			Update("search_name", model.SearchKey(ingredient.Name)).Error
		if err != nil {
			return err
		}
	}

	if len(ingredients) > 0 {
		logger.Info("Ingredient search names backfilled", map[string]interface{}{
			"count": len(ingredients),
		})
	}
	return nil
}
