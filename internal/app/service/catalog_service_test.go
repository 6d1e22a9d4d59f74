package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagService(t *testing.T) {
	f := setupServiceTest(t)
	tags := NewTagService(f.uow.Repositories().Tags)

	list, err := tags.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Dinner", list[0].Name)

	tag, err := tags.Get(f.lunch.ID)
	require.NoError(t, err)
	assert.Equal(t, "lunch", tag.Slug)

	_, err = tags.Get(999)
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestIngredientService_SearchAndGet(t *testing.T) {
	f := setupServiceTest(t)
	ingredients := NewIngredientService(f.uow)

	found, err := ingredients.Search(" FL ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, f.flour.ID, found[0].ID)

	all, err := ingredients.Search("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = ingredients.Get(999)
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}

func TestIngredientService_Import(t *testing.T) {
	f := setupServiceTest(t)
	ingredients := NewIngredientService(f.uow)

	result, err := ingredients.Import([]IngredientRow{
		{Name: "flour", Unit: "g"},
		{Name: "flour", Unit: "kg"},
		{Name: " milk ", Unit: "ml"},
		{Name: "milk", Unit: "ml"},
		{Name: "", Unit: "g"},
	})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Created: 2, Existing: 2, Skipped: 1}, result)

	found, err := ingredients.Search("milk")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "ml", found[0].MeasurementUnit)
}
