package service

import (
	"io"

	"github.com/foodgram/foodgram-backend/internal/app/repository"
	"github.com/foodgram/foodgram-backend/internal/app/shoppinglist"
	"github.com/foodgram/foodgram-backend/pkg/logger"
)

type ShoppingListService interface {
	// Items returns the summed ingredient lines of every recipe in the user's cart
	Items(userID uint) ([]shoppinglist.Line, error)
	// Render writes the user's shopping list as a PDF
	Render(w io.Writer, userID uint) error
}

type shoppingListService struct {
	recipes  repository.RecipeRepository
	renderer *shoppinglist.Renderer
}

func NewShoppingListService(recipes repository.RecipeRepository, renderer *shoppinglist.Renderer) ShoppingListService {
	return &shoppingListService{recipes: recipes, renderer: renderer}
}

func (s *shoppingListService) Items(userID uint) ([]shoppinglist.Line, error) {
	amounts, err := s.recipes.CartIngredients(userID)
	if err != nil {
		return nil, err
	}

	lines := make([]shoppinglist.Line, len(amounts))
	for i, a := range amounts {
		lines[i] = shoppinglist.Line{Name: a.Name, Unit: a.MeasurementUnit, Amount: a.Amount}
	}
	return shoppinglist.Aggregate(lines), nil
}

func (s *shoppingListService) Render(w io.Writer, userID uint) error {
	items, err := s.Items(userID)
	if err != nil {
		return err
	}

	logger.Info("Rendering shopping list", map[string]interface{}{
		"user_id": userID,
		"items":   len(items),
	})
	if err := s.renderer.Render(w, items); err != nil {
		logger.Error("Failed to render shopping list", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}
