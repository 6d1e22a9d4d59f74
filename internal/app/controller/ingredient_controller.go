package controller

import (
	"net/http"

	"github.com/foodgram/foodgram-backend/internal/app/presenter"
	"github.com/foodgram/foodgram-backend/internal/app/service"
	"github.com/foodgram/foodgram-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type IngredientController struct {
	ingredientService service.IngredientService
}

func NewIngredientController(ingredientService service.IngredientService) *IngredientController {
	return &IngredientController{ingredientService: ingredientService}
}

// ListIngredients returns ingredients, optionally filtered by a case-insensitive name prefix
// GET /api/ingredients?name=
// Query params:
//   - name: name prefix (search is accepted as an alias)
func (ctrl *IngredientController) ListIngredients(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	prefix := c.Query("name")
	if prefix == "" {
		prefix = c.Query("search")
	}

	ingredients, err := ctrl.ingredientService.Search(prefix)
	if err != nil {
		respondServiceError(c, err, "list ingredients")
		return
	}

	log.Debug("Ingredients listed", map[string]interface{}{
		"prefix": prefix,
		"count":  len(ingredients),
	})
	c.JSON(http.StatusOK, presenter.Ingredients(ingredients))
}

// GetIngredient GET /api/ingredients/:id
func (ctrl *IngredientController) GetIngredient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ingredient, err := ctrl.ingredientService.Get(id)
	if err != nil {
		respondServiceError(c, err, "get ingredient")
		return
	}
	c.JSON(http.StatusOK, presenter.IngredientView(*ingredient))
}
