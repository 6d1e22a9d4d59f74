package controller

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/foodgram/foodgram-backend/config"
	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/internal/app/presenter"
	"github.com/foodgram/foodgram-backend/internal/app/repository"
	"github.com/foodgram/foodgram-backend/internal/app/service"
	"github.com/foodgram/foodgram-backend/internal/app/shoppinglist"
	"github.com/foodgram/foodgram-backend/internal/app/validator"
	apperrors "github.com/foodgram/foodgram-backend/internal/errors"
	"github.com/foodgram/foodgram-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type RecipeController struct {
	recipeService       service.RecipeService
	relationService     service.RelationService
	shoppingListService service.ShoppingListService
	presenter           *presenter.Presenter
	pagination          config.PaginationConfig
}

func NewRecipeController(
	recipeService service.RecipeService,
	relationService service.RelationService,
	shoppingListService service.ShoppingListService,
	p *presenter.Presenter,
	pagination config.PaginationConfig,
) *RecipeController {
	return &RecipeController{
		recipeService:       recipeService,
		relationService:     relationService,
		shoppingListService: shoppingListService,
		presenter:           p,
		pagination:          pagination,
	}
}

type RecipeIngredientRequest struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount"`
}

type RecipeRequest struct {
	Ingredients []RecipeIngredientRequest `json:"ingredients"`
	Tags        []uint                    `json:"tags"`
	Image       string                    `json:"image"`
	Name        string                    `json:"name"`
	Text        string                    `json:"text"`
	CookingTime int                       `json:"cooking_time"`
}

func (r RecipeRequest) input() service.RecipeInput {
	lines := make([]validator.IngredientLine, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		lines[i] = validator.IngredientLine{IngredientID: ing.ID, Amount: ing.Amount}
	}
	return service.RecipeInput{
		RecipeInput: validator.RecipeInput{
			Name:        r.Name,
			Text:        r.Text,
			CookingTime: r.CookingTime,
			TagIDs:      r.Tags,
			Ingredients: lines,
		},
		Image: r.Image,
	}
}

// ListRecipes returns a page of recipes
// GET /api/recipes?page=&limit=&author=&tags=&is_favorited=&is_in_shopping_cart=
func (ctrl *RecipeController) ListRecipes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID := viewerID(c)

	page := pageFromQuery(c, ctrl.pagination)
	query := service.RecipeListQuery{
		TagSlugs:         c.QueryArray("tags"),
		IsFavorited:      queryFlag(c, "is_favorited"),
		IsInShoppingCart: queryFlag(c, "is_in_shopping_cart"),
		Page:             page,
	}
	if raw := c.Query("author"); raw != "" {
		authorID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "author must be a user id")
			return
		}
		id := uint(authorID)
		query.AuthorID = &id
	}

	recipes, total, err := ctrl.recipeService.List(userID, query)
	if err != nil {
		respondServiceError(c, err, "list recipes")
		return
	}
	viewer, err := ctrl.recipeService.Viewer(userID, recipes)
	if err != nil {
		respondServiceError(c, err, "list recipes")
		return
	}

	log.Debug("Recipes listed", map[string]interface{}{
		"count": len(recipes),
		"total": total,
	})

	c.JSON(http.StatusOK, presenter.NewPage(ctrl.presenter.Recipes(recipes, viewer), total, page.Number, page.Size, absoluteURL(c)))
}

// GetRecipe returns a recipe
// GET /api/recipes/:id
func (ctrl *RecipeController) GetRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	recipe, err := ctrl.recipeService.Get(id)
	if err != nil {
		respondServiceError(c, err, "get recipe")
		return
	}
	viewer, err := ctrl.recipeService.Viewer(viewerID(c), []model.Recipe{*recipe})
	if err != nil {
		respondServiceError(c, err, "get recipe")
		return
	}
	c.JSON(http.StatusOK, ctrl.presenter.Recipe(recipe, presenter.ReadShape, viewer))
}

// CreateRecipe creates a recipe authored by the caller
// POST /api/recipes
func (ctrl *RecipeController) CreateRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid recipe request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	recipe, err := ctrl.recipeService.Create(c.Request.Context(), viewerID(c), req.input())
	if err != nil {
		respondServiceError(c, err, "create recipe")
		return
	}

	log.Info("Recipe created", map[string]interface{}{
		"recipe_id": recipe.ID,
	})
	c.JSON(http.StatusCreated, ctrl.presenter.Recipe(recipe, presenter.WriteShape, presenter.Viewer{}))
}

// UpdateRecipe replaces a recipe's fields, tags and ingredients (author or admin)
// PATCH /api/recipes/:id
func (ctrl *RecipeController) UpdateRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid recipe request", map[string]interface{}{
			"recipe_id": id,
			"error":     err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	recipe, err := ctrl.recipeService.Update(c.Request.Context(), actorFromContext(c), id, req.input())
	if err != nil {
		respondServiceError(c, err, "update recipe")
		return
	}

	c.JSON(http.StatusOK, ctrl.presenter.Recipe(recipe, presenter.WriteShape, presenter.Viewer{}))
}

// DeleteRecipe removes a recipe (author or admin)
// DELETE /api/recipes/:id
func (ctrl *RecipeController) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.recipeService.Delete(c.Request.Context(), actorFromContext(c), id); err != nil {
		respondServiceError(c, err, "delete recipe")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddFavorite marks a recipe as the caller's favorite
// GET|POST /api/recipes/:id/favorite
func (ctrl *RecipeController) AddFavorite(c *gin.Context) {
	ctrl.toggle(c, repository.FavoriteRelation, service.Add)
}

// RemoveFavorite DELETE /api/recipes/:id/favorite
func (ctrl *RecipeController) RemoveFavorite(c *gin.Context) {
	ctrl.toggle(c, repository.FavoriteRelation, service.Remove)
}

// AddToShoppingCart GET|POST /api/recipes/:id/shopping_cart
func (ctrl *RecipeController) AddToShoppingCart(c *gin.Context) {
	ctrl.toggle(c, repository.ShoppingCartRelation, service.Add)
}

// RemoveFromShoppingCart DELETE /api/recipes/:id/shopping_cart
func (ctrl *RecipeController) RemoveFromShoppingCart(c *gin.Context) {
	ctrl.toggle(c, repository.ShoppingCartRelation, service.Remove)
}

// DownloadShoppingCart renders the caller's aggregated shopping list as a PDF
// GET /api/recipes/download_shopping_cart
func (ctrl *RecipeController) DownloadShoppingCart(c *gin.Context) {
	var buf bytes.Buffer
	if err := ctrl.shoppingListService.Render(&buf, viewerID(c)); err != nil {
		respondServiceError(c, err, "shopping list")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+shoppinglist.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (ctrl *RecipeController) toggle(c *gin.Context, rel repository.Relation, op service.ToggleOp) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.relationService.Toggle(rel, viewerID(c), id, op); err != nil {
		respondServiceError(c, err, rel.Name)
		return
	}
	if op == service.Remove {
		c.Status(http.StatusNoContent)
		return
	}

	recipe, err := ctrl.recipeService.Get(id)
	if err != nil {
		respondServiceError(c, err, rel.Name)
		return
	}

	log.Info("Recipe added to "+rel.Name, map[string]interface{}{
		"recipe_id": id,
	})
	c.JSON(http.StatusCreated, ctrl.presenter.Reduced(recipe))
}

// queryFlag treats 1 and true as set
func queryFlag(c *gin.Context, name string) bool {
	switch c.Query(name) {
	case "1", "true", "True":
		return true
	}
	return false
}
