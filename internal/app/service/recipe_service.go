package service

import (
	"context"
	"errors"

	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/internal/app/presenter"
	"github.com/foodgram/foodgram-backend/internal/app/repository"
	"github.com/foodgram/foodgram-backend/internal/app/validator"
	"github.com/foodgram/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

// Actor is the authenticated caller of a write operation
type Actor struct {
	ID   uint
	Role model.UserRole
}

func (a Actor) canEdit(r *model.Recipe) bool {
	return a.ID == r.AuthorID || a.Role == model.RoleAdmin
}

// RecipeListQuery is a recipe listing request. The membership flags are
// scoped to the viewer and match nothing for anonymous callers.
type RecipeListQuery struct {
	AuthorID         *uint
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
	Page             repository.Page
}

// RecipeInput is a create or update payload. Image is a base64 data URL;
// empty means "keep the current image" on update.
type RecipeInput struct {
	validator.RecipeInput
	Image string
}

type RecipeService interface {
	List(viewerID uint, query RecipeListQuery) ([]model.Recipe, int64, error)
	Get(id uint) (*model.Recipe, error)
	Create(ctx context.Context, authorID uint, input RecipeInput) (*model.Recipe, error)
	Update(ctx context.Context, actor Actor, id uint, input RecipeInput) (*model.Recipe, error)
	Delete(ctx context.Context, actor Actor, id uint) error
	// Viewer loads the viewer's favorites, cart and follows for the given recipes
	Viewer(viewerID uint, recipes []model.Recipe) (presenter.Viewer, error)
}

type recipeService struct {
	uow    repository.UnitOfWork
	images ImageService
}

func NewRecipeService(uow repository.UnitOfWork, images ImageService) RecipeService {
	return &recipeService{uow: uow, images: images}
}

func (s *recipeService) List(viewerID uint, query RecipeListQuery) ([]model.Recipe, int64, error) {
	if viewerID == 0 && (query.IsFavorited || query.IsInShoppingCart) {
		return []model.Recipe{}, 0, nil
	}

	filter := repository.RecipeFilter{
		AuthorID: query.AuthorID,
		TagSlugs: query.TagSlugs,
		Page:     query.Page,
	}
	if query.IsFavorited {
		filter.FavoritedBy = &viewerID
	}
	if query.IsInShoppingCart {
		filter.InCartOf = &viewerID
	}

	return s.uow.Repositories().Recipes.List(filter)
}

func (s *recipeService) Get(id uint) (*model.Recipe, error) {
	recipe, err := s.uow.Repositories().Recipes.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) Create(ctx context.Context, authorID uint, input RecipeInput) (*model.Recipe, error) {
	if err := validator.ValidateRecipe(input.RecipeInput, 0, s.lookup()); err != nil {
		logger.Warn("Recipe validation failed", map[string]interface{}{
			"author_id": authorID,
			"error":     err.Error(),
		})
		return nil, err
	}
	if input.Image == "" {
		return nil, ErrImageRequired
	}

	key, err := s.images.Store(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        input.Name,
		Text:        input.Text,
		CookingTime: input.CookingTime,
		Image:       key,
	}
	err = s.uow.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Recipes.Create(recipe); err != nil {
			return err
		}
		return writeComponents(tx, recipe.ID, input.RecipeInput)
	})
	if err != nil {
		s.images.Discard(ctx, key)
		if repository.IsDuplicateRecipe(err) {
			return nil, duplicateRecipe()
		}
		logger.Error("Failed to create recipe", err, map[string]interface{}{
			"author_id": authorID,
		})
		return nil, err
	}

	logger.Info("Recipe created", map[string]interface{}{
		"recipe_id": recipe.ID,
		"author_id": authorID,
	})
	return s.Get(recipe.ID)
}

func (s *recipeService) Update(ctx context.Context, actor Actor, id uint, input RecipeInput) (*model.Recipe, error) {
	recipe, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !actor.canEdit(recipe) {
		logger.Warn("Recipe update forbidden", map[string]interface{}{
			"recipe_id": id,
			"user_id":   actor.ID,
		})
		return nil, ErrForbidden
	}

	if err := validator.ValidateRecipe(input.RecipeInput, id, s.lookup()); err != nil {
		return nil, err
	}

	oldKey := recipe.Image
	newKey := ""
	if input.Image != "" {
		newKey, err = s.images.Store(ctx, input.Image)
		if err != nil {
			return nil, err
		}
	}

	recipe.Name = input.Name
	recipe.Text = input.Text
	recipe.CookingTime = input.CookingTime
	if newKey != "" {
		recipe.Image = newKey
	}

	err = s.uow.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Recipes.Update(recipe); err != nil {
			return err
		}
		return writeComponents(tx, recipe.ID, input.RecipeInput)
	})
	if err != nil {
		s.images.Discard(ctx, newKey)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		if repository.IsDuplicateRecipe(err) {
			return nil, duplicateRecipe()
		}
		logger.Error("Failed to update recipe", err, map[string]interface{}{
			"recipe_id": id,
		})
		return nil, err
	}
	if newKey != "" {
		s.images.Discard(ctx, oldKey)
	}

	logger.Info("Recipe updated", map[string]interface{}{
		"recipe_id": id,
		"user_id":   actor.ID,
	})
	return s.Get(id)
}

// duplicateRecipe reports a (name, text) collision the validator pre-check missed
func duplicateRecipe() error {
	return validator.Errors{{Field: "name", Err: validator.ErrDuplicateRecipe}}
}

func (s *recipeService) Delete(ctx context.Context, actor Actor, id uint) error {
	recipe, err := s.Get(id)
	if err != nil {
		return err
	}
	if !actor.canEdit(recipe) {
		logger.Warn("Recipe delete forbidden", map[string]interface{}{
			"recipe_id": id,
			"user_id":   actor.ID,
		})
		return ErrForbidden
	}

	err = s.uow.Transaction(func(tx *repository.Repositories) error {
		return tx.Recipes.Delete(id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	s.images.Discard(ctx, recipe.Image)

	logger.Info("Recipe deleted", map[string]interface{}{
		"recipe_id": id,
		"user_id":   actor.ID,
	})
	return nil
}

func (s *recipeService) Viewer(viewerID uint, recipes []model.Recipe) (presenter.Viewer, error) {
	viewer := presenter.Viewer{UserID: viewerID}
	if viewerID == 0 {
		return viewer, nil
	}

	recipeIDs := make([]uint, len(recipes))
	authorIDs := make([]uint, len(recipes))
	for i, r := range recipes {
		recipeIDs[i] = r.ID
		authorIDs[i] = r.AuthorID
	}

	relations := s.uow.Repositories().Relations
	var err error
	if viewer.Favorited, err = relations.TargetsAmong(repository.FavoriteRelation, viewerID, recipeIDs); err != nil {
		return viewer, err
	}
	if viewer.InCart, err = relations.TargetsAmong(repository.ShoppingCartRelation, viewerID, recipeIDs); err != nil {
		return viewer, err
	}
	if viewer.Following, err = relations.TargetsAmong(repository.SubscriptionRelation, viewerID, authorIDs); err != nil {
		return viewer, err
	}
	return viewer, nil
}

func (s *recipeService) lookup() validator.Lookup {
	return recipeLookup{repos: s.uow.Repositories()}
}

// writeComponents replaces the recipe's tags and ingredient lines
func writeComponents(tx *repository.Repositories, recipeID uint, input validator.RecipeInput) error {
	if err := tx.Recipes.ReplaceTags(recipeID, input.TagIDs); err != nil {
		return err
	}
	lines := make([]model.IngredientRecipe, len(input.Ingredients))
	for i, line := range input.Ingredients {
		lines[i] = model.IngredientRecipe{
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		}
	}
	return tx.Recipes.ReplaceIngredients(recipeID, lines)
}

type recipeLookup struct {
	repos *repository.Repositories
}

func (l recipeLookup) RecipeExists(name, text string, excludeID uint) (bool, error) {
	return l.repos.Recipes.ExistsWithNameAndText(name, text, excludeID)
}

func (l recipeLookup) ExistingTagIDs(ids []uint) (map[uint]bool, error) {
	tags, err := l.repos.Tags.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	found := make(map[uint]bool, len(tags))
	for _, t := range tags {
		found[t.ID] = true
	}
	return found, nil
}

func (l recipeLookup) ExistingIngredientIDs(ids []uint) (map[uint]bool, error) {
	ingredients, err := l.repos.Ingredients.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	found := make(map[uint]bool, len(ingredients))
	for _, i := range ingredients {
		found[i.ID] = true
	}
	return found, nil
}
