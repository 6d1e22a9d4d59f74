package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/foodgram/foodgram-backend/internal/app/repository"
	"github.com/foodgram/foodgram-backend/internal/app/shoppinglist"
	"github.com/foodgram/foodgram-backend/internal/app/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingListService_SumsAcrossRecipes(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()
	relations := NewRelationService(f.uow)
	list := NewShoppingListService(f.uow.Repositories().Recipes, shoppinglist.NewRenderer("Shopping list", ""))

	pancakes, err := f.recipes.Create(ctx, f.alice.ID, f.input("Pancakes"))
	require.NoError(t, err)

	cake := f.input("Cake")
	cake.Ingredients = []validator.IngredientLine{{IngredientID: f.flour.ID, Amount: 300}}
	cakeRecipe, err := f.recipes.Create(ctx, f.alice.ID, cake)
	require.NoError(t, err)

	items, err := list.Items(f.bob.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, relations.Toggle(repository.ShoppingCartRelation, f.bob.ID, pancakes.ID, Add))
	require.NoError(t, relations.Toggle(repository.ShoppingCartRelation, f.bob.ID, cakeRecipe.ID, Add))

	items, err = list.Items(f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []shoppinglist.Line{
		{Name: "flour", Unit: "g", Amount: 500},
		{Name: "sugar", Unit: "g", Amount: 50},
	}, items)

	var buf bytes.Buffer
	require.NoError(t, list.Render(&buf, f.bob.ID))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
