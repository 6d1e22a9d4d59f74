package repository

import (
	"strings"

	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeFilter narrows a recipe listing. Nil pointers and empty slices mean "no filter".
type RecipeFilter struct {
	AuthorID    *uint
	TagSlugs    []string // any match
	FavoritedBy *uint
	InCartOf    *uint
	Page        Page
}

// IngredientAmount is one ingredient line of a recipe in someone's cart
type IngredientAmount struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

type RecipeRepository interface {
	Create(recipe *model.Recipe) error
	Update(recipe *model.Recipe) error
	Delete(id uint) error
	FindByID(id uint) (*model.Recipe, error)
	List(filter RecipeFilter) ([]model.Recipe, int64, error)
	// ListByAuthor returns the author's recipes; limit < 0 means all
	ListByAuthor(authorID uint, limit int) ([]model.Recipe, error)
	CountByAuthors(authorIDs []uint) (map[uint]int64, error)
	ExistsWithNameAndText(name, text string, excludeID uint) (bool, error)
	ReplaceTags(recipeID uint, tagIDs []uint) error
	ReplaceIngredients(recipeID uint, lines []model.IngredientRecipe) error
	CartIngredients(userID uint) ([]IngredientAmount, error)
	ImageKeys() ([]string, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(recipe *model.Recipe) error {
	logger.Debug("Creating recipe in database", map[string]interface{}{
		"author_id": recipe.AuthorID,
		"name":      recipe.Name,
	})

	if err := r.db.Omit(clause.Associations).Create(recipe).Error; err != nil {
		logger.Error("Failed to create recipe in database", err, map[string]interface{}{
			"author_id": recipe.AuthorID,
			"name":      recipe.Name,
		})
		return err
	}

	logger.Debug("Recipe created in database", map[string]interface{}{
		"recipe_id": recipe.ID,
	})
	return nil
}

func (r *recipeRepository) Update(recipe *model.Recipe) error {
	logger.Debug("Updating recipe in database", map[string]interface{}{
		"recipe_id": recipe.ID,
	})

	recipe.TextHash = model.HashText(recipe.Text)
	result := r.db.Model(recipe).
		Select("Name", "Text", "TextHash", "CookingTime", "Image").
		Updates(recipe)
	if result.Error != nil {
		logger.Error("Failed to update recipe in database", result.Error, map[string]interface{}{
			"recipe_id": recipe.ID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the recipe and every row that references it. Callers run it in a transaction.
func (r *recipeRepository) Delete(id uint) error {
	logger.Debug("Deleting recipe from database", map[string]interface{}{
		"recipe_id": id,
	})

	dependents := []interface{}{
		&model.IngredientRecipe{},
		&model.Favorite{},
		&model.ShoppingCartItem{},
	}
	for _, dep := range dependents {
		if err := r.db.Where("recipe_id = ?", id).Delete(dep).Error; err != nil {
			logger.Error("Failed to delete recipe dependents", err, map[string]interface{}{
				"recipe_id": id,
			})
			return err
		}
	}
	if err := r.db.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
		logger.Error("Failed to delete recipe tags", err, map[string]interface{}{
			"recipe_id": id,
		})
		return err
	}

	result := r.db.Delete(&model.Recipe{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete recipe from database", result.Error, map[string]interface{}{
			"recipe_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Recipe deleted from database", map[string]interface{}{
		"recipe_id": id,
	})
	return nil
}

func (r *recipeRepository) withDetails(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name ASC")
		}).
		Preload("IngredientLines", func(db *gorm.DB) *gorm.DB {
			return db.Order("ingredient_recipes.id ASC")
		}).
		Preload("IngredientLines.Ingredient")
}

func (r *recipeRepository) FindByID(id uint) (*model.Recipe, error) {
	logger.Debug("Finding recipe by ID in database", map[string]interface{}{
		"recipe_id": id,
	})

	var recipe model.Recipe
	if err := r.withDetails(r.db).First(&recipe, id).Error; err != nil {
		logger.Debug("Recipe lookup failed", map[string]interface{}{
			"recipe_id": id,
			"error":     err.Error(),
		})
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) List(filter RecipeFilter) ([]model.Recipe, int64, error) {
	logger.Debug("Finding recipes with filter", map[string]interface{}{
		"author_id":    filter.AuthorID,
		"tags":         filter.TagSlugs,
		"favorited_by": filter.FavoritedBy,
		"in_cart_of":   filter.InCartOf,
		"page":         filter.Page.Number,
		"size":         filter.Page.Size,
	})

	query := r.db.Model(&model.Recipe{})

	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		tagged := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}
	if filter.FavoritedBy != nil {
		favorited := r.db.Model(&model.Favorite{}).Select("recipe_id").Where("user_id = ?", *filter.FavoritedBy)
		query = query.Where("recipes.id IN (?)", favorited)
	}
	if filter.InCartOf != nil {
		inCart := r.db.Model(&model.ShoppingCartItem{}).Select("recipe_id").Where("user_id = ?", *filter.InCartOf)
		query = query.Where("recipes.id IN (?)", inCart)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		logger.Error("Failed to count recipes", err)
		return nil, 0, err
	}

	var recipes []model.Recipe
	err := r.withDetails(query.Session(&gorm.Session{})).
		Order("recipes.name ASC").
		Order("recipes.id ASC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit()).
		Find(&recipes).Error
	if err != nil {
		logger.Error("Failed to find recipes with filter", err)
		return nil, 0, err
	}

	logger.Debug("Recipes found with filter", map[string]interface{}{
		"count": len(recipes),
		"total": total,
	})
	return recipes, total, nil
}

func (r *recipeRepository) ListByAuthor(authorID uint, limit int) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.Where("author_id = ?", authorID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		logger.Error("Failed to list recipes by author", err, map[string]interface{}{
			"author_id": authorID,
		})
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) CountByAuthors(authorIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		AuthorID uint
		Count    int64
	}
	err := r.db.Model(&model.Recipe{}).
		Select("author_id, COUNT(*) AS count").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to count recipes by authors", err, map[string]interface{}{
			"author_ids": authorIDs,
		})
		return nil, err
	}
	for _, row := range rows {
		counts[row.AuthorID] = row.Count
	}
	return counts, nil
}

// IsDuplicateRecipe reports whether err is a violation of the recipe (name, text) unique index
func IsDuplicateRecipe(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "idx_recipe_name_text") || strings.Contains(msg, "recipes.text_hash")
}

func (r *recipeRepository) ExistsWithNameAndText(name, text string, excludeID uint) (bool, error) {
	query := r.db.Model(&model.Recipe{}).Where("name = ? AND text = ?", name, text)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		logger.Error("Failed to check recipe uniqueness", err, map[string]interface{}{
			"name": name,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) ReplaceTags(recipeID uint, tagIDs []uint) error {
	if err := r.db.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", recipeID).Error; err != nil {
		logger.Error("Failed to clear recipe tags", err, map[string]interface{}{
			"recipe_id": recipeID,
		})
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	rows := make([]map[string]interface{}, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, map[string]interface{}{"recipe_id": recipeID, "tag_id": tagID})
	}
	if err := r.db.Table("recipe_tags").Create(rows).Error; err != nil {
		logger.Error("Failed to link recipe tags", err, map[string]interface{}{
			"recipe_id": recipeID,
			"tag_ids":   tagIDs,
		})
		return err
	}
	return nil
}

func (r *recipeRepository) ReplaceIngredients(recipeID uint, lines []model.IngredientRecipe) error {
	if err := r.db.Where("recipe_id = ?", recipeID).Delete(&model.IngredientRecipe{}).Error; err != nil {
		logger.Error("Failed to clear recipe ingredients", err, map[string]interface{}{
			"recipe_id": recipeID,
		})
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	for i := range lines {
		lines[i].ID = 0
		lines[i].RecipeID = recipeID
	}
	if err := r.db.Omit(clause.Associations).Create(&lines).Error; err != nil {
		logger.Error("Failed to create recipe ingredients", err, map[string]interface{}{
			"recipe_id": recipeID,
			"count":     len(lines),
		})
		return err
	}
	return nil
}

// CartIngredients returns every ingredient line of every recipe in the user's cart, unaggregated
func (r *recipeRepository) CartIngredients(userID uint) ([]IngredientAmount, error) {
	logger.Debug("Loading shopping cart ingredients", map[string]interface{}{
		"user_id": userID,
	})

	var lines []IngredientAmount
	err := r.db.Table("ingredient_recipes").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, ingredient_recipes.amount AS amount").
		Joins("JOIN ingredients ON ingredients.id = ingredient_recipes.ingredient_id").
		Joins("JOIN shopping_cart_items ON shopping_cart_items.recipe_id = ingredient_recipes.recipe_id").
		Where("shopping_cart_items.user_id = ?", userID).
		Order("ingredient_recipes.id ASC").
		Scan(&lines).Error
	if err != nil {
		logger.Error("Failed to load shopping cart ingredients", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return lines, nil
}

func (r *recipeRepository) ImageKeys() ([]string, error) {
	var keys []string
	if err := r.db.Model(&model.Recipe{}).Where("image <> ''").Pluck("image", &keys).Error; err != nil {
		logger.Error("Failed to list recipe image keys", err)
		return nil, err
	}
	return keys, nil
}
