package repository

import (
	"errors"
	"testing"

	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	f := setupRepositoryTest(t)
	uow := NewUnitOfWork(f.db)
	boom := errors.New("boom")

	err := uow.Transaction(func(tx *Repositories) error {
		recipe := &model.Recipe{AuthorID: f.alice.ID, Name: "Ghost", Text: "t", CookingTime: 5}
		require.NoError(t, tx.Recipes.Create(recipe))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, total, err := uow.Repositories().Recipes.List(RecipeFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUnitOfWork_Commits(t *testing.T) {
	f := setupRepositoryTest(t)
	uow := NewUnitOfWork(f.db)

	err := uow.Transaction(func(tx *Repositories) error {
		recipe := &model.Recipe{AuthorID: f.alice.ID, Name: "Real", Text: "t", CookingTime: 5}
		if err := tx.Recipes.Create(recipe); err != nil {
			return err
		}
		return tx.Recipes.ReplaceTags(recipe.ID, []uint{f.dinner.ID})
	})
	require.NoError(t, err)

	recipes, total, err := uow.Repositories().Recipes.List(RecipeFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, recipes, 1)
	assert.Len(t, recipes[0].Tags, 1)
}
