package controller

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	apperrors "github.com/foodgram/foodgram-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeController_CreateReturnsWriteShape(t *testing.T) {
	f := setupControllerTest(t)

	w := f.do(t, f.alice, http.MethodPost, "/api/recipes", f.recipeBody("Pancakes"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "Pancakes", body["name"])
	assert.EqualValues(t, f.alice.ID, body["author"])
	assert.Equal(t, []interface{}{float64(f.lunch.ID)}, body["tags"])
	assert.True(t, strings.HasPrefix(body["image"].(string), "/media/recipes/"))

	ingredients := body["ingredients"].([]interface{})
	require.Len(t, ingredients, 2)
	first := ingredients[0].(map[string]interface{})
	assert.Equal(t, "flour", first["name"])
	assert.EqualValues(t, 200, first["amount"])
}

func TestRecipeController_CreateRequiresAuth(t *testing.T) {
	f := setupControllerTest(t)

	w := f.do(t, nil, http.MethodPost, "/api/recipes", f.recipeBody("Pancakes"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecipeController_CreateValidation(t *testing.T) {
	f := setupControllerTest(t)
	f.createRecipe(t, f.alice, "Pancakes")

	tests := []struct {
		name      string
		mutate    func(body map[string]interface{})
		wantCode  string
		wantField string
	}{
		{
			name:      "Duplicate recipe",
			mutate:    func(body map[string]interface{}) {},
			wantCode:  apperrors.RecipeDuplicate,
			wantField: "name",
		},
		{
			name: "Repeated ingredient",
			mutate: func(body map[string]interface{}) {
				body["name"] = "Other"
				body["ingredients"] = []map[string]interface{}{
					{"id": f.flour.ID, "amount": 1},
					{"id": f.flour.ID, "amount": 2},
				}
			},
			wantCode:  apperrors.RecipeDuplicateIngredient,
			wantField: "ingredients",
		},
		{
			name: "Zero cooking time",
			mutate: func(body map[string]interface{}) {
				body["name"] = "Other"
				body["cooking_time"] = 0
			},
			wantCode:  apperrors.ValidationInvalidQuantity,
			wantField: "cooking_time",
		},
		{
			name: "No tags",
			mutate: func(body map[string]interface{}) {
				body["name"] = "Other"
				body["tags"] = []uint{}
			},
			wantCode:  apperrors.ValidationRequired,
			wantField: "tags",
		},
		{
			name: "Unknown ingredient",
			mutate: func(body map[string]interface{}) {
				body["name"] = "Other"
				body["ingredients"] = []map[string]interface{}{{"id": 999, "amount": 1}}
			},
			wantCode:  apperrors.RecipeUnknownIngredient,
			wantField: "ingredients",
		},
		{
			name: "Not an image",
			mutate: func(body map[string]interface{}) {
				body["name"] = "Other"
				body["image"] = "data:image/png;base64,aGVsbG8="
			},
			wantCode:  apperrors.ValidationInvalidImage,
			wantField: "image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := f.recipeBody("Pancakes")
			tt.mutate(body)

			w := f.do(t, f.alice, http.MethodPost, "/api/recipes", body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			resp := decode(t, w)
			assert.Equal(t, tt.wantCode, resp["error"])
			assert.Contains(t, resp["fields"], tt.wantField)
		})
	}
}

func TestRecipeController_GetAndList(t *testing.T) {
	f := setupControllerTest(t)
	id := f.createRecipe(t, f.alice, "Pancakes")
	f.createRecipe(t, f.bob, "Borscht")
	f.createRecipe(t, f.bob, "Syrniki")

	w := f.do(t, nil, http.MethodGet, fmt.Sprintf("/api/recipes/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	recipe := decode(t, w)
	assert.Equal(t, false, recipe["is_favorited"])
	author := recipe["author"].(map[string]interface{})
	assert.Equal(t, "alice", author["username"])
	tags := recipe["tags"].([]interface{})
	assert.Equal(t, "lunch", tags[0].(map[string]interface{})["slug"])

	w = f.do(t, nil, http.MethodGet, "/api/recipes/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.RecipeNotFound, decode(t, w)["error"])

	w = f.do(t, nil, http.MethodGet, "/api/recipes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)
	assert.EqualValues(t, 3, page["count"])
	assert.Len(t, page["results"], 2)
	assert.Nil(t, page["previous"])
	assert.Equal(t, "http://example.com/api/recipes?page=2", page["next"])

	w = f.do(t, nil, http.MethodGet, fmt.Sprintf("/api/recipes?author=%d", f.bob.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["count"])

	w = f.do(t, nil, http.MethodGet, "/api/recipes?tags=lunch&tags=dinner&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, decode(t, w)["count"])
}

func TestRecipeController_FavoriteAndCartFlags(t *testing.T) {
	f := setupControllerTest(t)
	id := f.createRecipe(t, f.alice, "Pancakes")
	path := fmt.Sprintf("/api/recipes/%d", id)

	w := f.do(t, f.bob, http.MethodPost, path+"/favorite", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	reduced := decode(t, w)
	assert.Equal(t, "Pancakes", reduced["name"])
	assert.NotContains(t, reduced, "tags")

	w = f.do(t, f.bob, http.MethodPost, path+"/favorite", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.RelationAlreadyExists, decode(t, w)["error"])

	w = f.do(t, f.bob, http.MethodPost, path+"/shopping_cart", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, f.bob, http.MethodGet, path, nil)
	recipe := decode(t, w)
	assert.Equal(t, true, recipe["is_favorited"])
	assert.Equal(t, true, recipe["is_in_shopping_cart"])

	// flags are per viewer
	w = f.do(t, f.alice, http.MethodGet, path, nil)
	assert.Equal(t, false, decode(t, w)["is_favorited"])

	w = f.do(t, f.bob, http.MethodGet, "/api/recipes?is_favorited=1", nil)
	assert.EqualValues(t, 1, decode(t, w)["count"])
	w = f.do(t, nil, http.MethodGet, "/api/recipes?is_favorited=1", nil)
	assert.EqualValues(t, 0, decode(t, w)["count"])

	w = f.do(t, f.bob, http.MethodDelete, path+"/favorite", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = f.do(t, f.bob, http.MethodDelete, path+"/favorite", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.RelationNotAMember, decode(t, w)["error"])

	w = f.do(t, f.bob, http.MethodPost, "/api/recipes/999/shopping_cart", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeController_UpdateAndDeletePermissions(t *testing.T) {
	f := setupControllerTest(t)
	id := f.createRecipe(t, f.alice, "Pancakes")
	path := fmt.Sprintf("/api/recipes/%d", id)

	body := f.recipeBody("Crepes")
	delete(body, "image")

	w := f.do(t, f.bob, http.MethodPatch, path, body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperrors.AuthzForbidden, decode(t, w)["error"])

	w = f.do(t, f.alice, http.MethodPatch, path, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Crepes", decode(t, w)["name"])

	w = f.do(t, f.bob, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, f.alice, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, f.alice, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeController_DownloadShoppingCart(t *testing.T) {
	f := setupControllerTest(t)
	id := f.createRecipe(t, f.alice, "Pancakes")

	w := f.do(t, f.bob, http.MethodPost, fmt.Sprintf("/api/recipes/%d/shopping_cart", id), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, f.bob, http.MethodGet, "/api/recipes/download_shopping_cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "shopping_cart.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))

	w = f.do(t, nil, http.MethodGet, "/api/recipes/download_shopping_cart", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
