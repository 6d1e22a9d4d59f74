package repository

import (
	"errors"
	"strings"

	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

type IngredientRepository interface {
	// Search returns ingredients whose name starts with prefix, case-insensitively.
	// An empty prefix returns everything.
	Search(prefix string) ([]model.Ingredient, error)
	FindByID(id uint) (*model.Ingredient, error)
	FindByIDs(ids []uint) ([]model.Ingredient, error)
	// GetOrCreate reports whether a new row was inserted
	GetOrCreate(name, unit string) (*model.Ingredient, bool, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *ingredientRepository) Search(prefix string) ([]model.Ingredient, error) {
	logger.Debug("Searching ingredients in database", map[string]interface{}{
		"prefix": prefix,
	})

	query := r.db.Model(&model.Ingredient{})
	if prefix != "" {
		pattern := likeEscaper.Replace(model.SearchKey(prefix)) + "%"
		query = query.Where(`search_name LIKE ? ESCAPE '\'`, pattern)
	}

	var ingredients []model.Ingredient
	if err := query.Order("name ASC").Order("measurement_unit ASC").Find(&ingredients).Error; err != nil {
		logger.Error("Failed to search ingredients", err, map[string]interface{}{
			"prefix": prefix,
		})
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) FindByID(id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) FindByIDs(ids []uint) ([]model.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var ingredients []model.Ingredient
	if err := r.db.Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		logger.Error("Failed to find ingredients by IDs", err, map[string]interface{}{
			"ingredient_ids": ids,
		})
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetOrCreate(name, unit string) (*model.Ingredient, bool, error) {
	var ingredient model.Ingredient
	err := r.db.Where("name = ? AND measurement_unit = ?", name, unit).First(&ingredient).Error
	if err == nil {
		return &ingredient, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to find ingredient", err, map[string]interface{}{
			"name": name,
			"unit": unit,
		})
		return nil, false, err
	}

	ingredient = model.Ingredient{Name: name, MeasurementUnit: unit}
	if err := r.db.Create(&ingredient).Error; err != nil {
		logger.Error("Failed to create ingredient", err, map[string]interface{}{
			"name": name,
			"unit": unit,
		})
		return nil, false, err
	}
	return &ingredient, true, nil
}
