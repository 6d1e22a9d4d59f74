package service

import (
	"errors"
	"strings"

	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/internal/app/repository"
	"github.com/foodgram/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

// IngredientRow is one record of an ingredient import file
type IngredientRow struct {
	Name string
	Unit string
}

// ImportResult counts what an import did
type ImportResult struct {
	Created  int
	Existing int
	Skipped  int
}

type IngredientService interface {
	// Search returns ingredients whose name starts with prefix, ignoring case
	Search(prefix string) ([]model.Ingredient, error)
	Get(id uint) (*model.Ingredient, error)
	Import(rows []IngredientRow) (ImportResult, error)
}

type ingredientService struct {
	uow repository.UnitOfWork
}

func NewIngredientService(uow repository.UnitOfWork) IngredientService {
	return &ingredientService{uow: uow}
}

func (s *ingredientService) Search(prefix string) ([]model.Ingredient, error) {
	return s.uow.Repositories().Ingredients.Search(strings.TrimSpace(prefix))
}

func (s *ingredientService) Get(id uint) (*model.Ingredient, error) {
	ingredient, err := s.uow.Repositories().Ingredients.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return ingredient, nil
}

// Import get-or-creates every row in one transaction. Rows with a blank name
// or unit are skipped.
func (s *ingredientService) Import(rows []IngredientRow) (ImportResult, error) {
	var result ImportResult

	err := s.uow.Transaction(func(tx *repository.Repositories) error {
		for _, row := range rows {
			name := strings.TrimSpace(row.Name)
			unit := strings.TrimSpace(row.Unit)
			if name == "" || unit == "" {
				result.Skipped++
				continue
			}

			_, created, err := tx.Ingredients.GetOrCreate(name, unit)
			if err != nil {
				return err
			}
			if created {
				result.Created++
			} else {
				result.Existing++
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Ingredient import failed", err, map[string]interface{}{
			"rows": len(rows),
		})
		return ImportResult{}, err
	}

	logger.Info("Ingredients imported", map[string]interface{}{
		"created":  result.Created,
		"existing": result.Existing,
		"skipped":  result.Skipped,
	})
	return result, nil
}
