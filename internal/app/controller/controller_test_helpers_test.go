package controller

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foodgram/foodgram-backend/config"
	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/internal/app/presenter"
	"github.com/foodgram/foodgram-backend/internal/app/repository"
	"github.com/foodgram/foodgram-backend/internal/app/service"
	"github.com/foodgram/foodgram-backend/internal/app/shoppinglist"
	"github.com/foodgram/foodgram-backend/internal/db"
	"github.com/foodgram/foodgram-backend/internal/middleware"
	"github.com/foodgram/foodgram-backend/internal/storage"
	"github.com/foodgram/foodgram-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "controller-test-secret"

var testImage = "data:image/png;base64," +
	base64.StdEncoding.EncodeToString(append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...))

type apiFixture struct {
	router *gin.Engine
	db     *gorm.DB
	alice  *model.User
	bob    *model.User
	lunch  *model.Tag
	flour  *model.Ingredient
	sugar  *model.Ingredient
}

func setupControllerTest(t *testing.T) *apiFixture {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	store, err := storage.NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	uow := repository.NewUnitOfWork(testDB)
	repos := uow.Repositories()
	images := service.NewImageService(store, repos.Recipes)
	relations := service.NewRelationService(uow)
	p := presenter.New(images.URL)
	pagination := config.PaginationConfig{PageSize: 2, MaxPageSize: 100}

	recipes := NewRecipeController(
		service.NewRecipeService(uow, images),
		relations,
		service.NewShoppingListService(repos.Recipes, shoppinglist.NewRenderer("Shopping list", "")),
		p,
		pagination,
	)
	users := NewUserController(service.NewUserService(uow), relations, p, pagination)
	tags := NewTagController(service.NewTagService(repos.Tags))
	ingredients := NewIngredientController(service.NewIngredientService(uow))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	auth := middleware.NewAuthMiddleware(testJWTSecret)
	required, optional := auth.Authenticate(), auth.OptionalAuthenticate()

	api := router.Group("/api")
	api.GET("/recipes", optional, recipes.ListRecipes)
	api.POST("/recipes", required, recipes.CreateRecipe)
	api.GET("/recipes/download_shopping_cart", required, recipes.DownloadShoppingCart)
	api.GET("/recipes/:id", optional, recipes.GetRecipe)
	api.PATCH("/recipes/:id", required, recipes.UpdateRecipe)
	api.DELETE("/recipes/:id", required, recipes.DeleteRecipe)
	api.POST("/recipes/:id/favorite", required, recipes.AddFavorite)
	api.DELETE("/recipes/:id/favorite", required, recipes.RemoveFavorite)
	api.POST("/recipes/:id/shopping_cart", required, recipes.AddToShoppingCart)
	api.DELETE("/recipes/:id/shopping_cart", required, recipes.RemoveFromShoppingCart)
	api.GET("/users", optional, users.ListUsers)
	api.POST("/users", users.Register)
	api.GET("/users/me", required, users.Me)
	api.GET("/users/subscriptions", required, users.Subscriptions)
	api.GET("/users/:id", optional, users.GetUser)
	api.DELETE("/users/:id", users.DeleteUser)
	api.POST("/users/:id/subscribe", required, users.Subscribe)
	api.DELETE("/users/:id/subscribe", required, users.Unsubscribe)
	api.GET("/tags", tags.ListTags)
	api.GET("/tags/:id", tags.GetTag)
	api.GET("/ingredients", ingredients.ListIngredients)
	api.GET("/ingredients/:id", ingredients.GetIngredient)

	f := &apiFixture{router: router, db: testDB}
	f.alice = createTestUser(t, testDB, "alice")
	f.bob = createTestUser(t, testDB, "bob")

	f.lunch = &model.Tag{Name: "Lunch", Slug: "lunch", Color: "#49B64E"}
	require.NoError(t, testDB.Create(f.lunch).Error)
	f.flour = &model.Ingredient{Name: "flour", MeasurementUnit: "g"}
	f.sugar = &model.Ingredient{Name: "sugar", MeasurementUnit: "g"}
	require.NoError(t, testDB.Create(f.flour).Error)
	require.NoError(t, testDB.Create(f.sugar).Error)
	return f
}

func createTestUser(t *testing.T, testDB *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Email:        fmt.Sprintf("%s@example.com", username),
		Username:     username,
		FirstName:    username,
		LastName:     "Cook",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

// do sends a request as user (nil for anonymous) and returns the recorder
func (f *apiFixture) do(t *testing.T, user *model.User, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		token, err := util.GenerateAccessToken(user.ID, user.Email, string(user.Role), testJWTSecret, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Token "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *apiFixture) recipeBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"ingredients": []map[string]interface{}{
			{"id": f.flour.ID, "amount": 200},
			{"id": f.sugar.ID, "amount": 30},
		},
		"tags":         []uint{f.lunch.ID},
		"image":        testImage,
		"name":         name,
		"text":         name + " method",
		"cooking_time": 20,
	}
}

func (f *apiFixture) createRecipe(t *testing.T, author *model.User, name string) uint {
	t.Helper()
	w := f.do(t, author, http.MethodPost, "/api/recipes", f.recipeBody(name))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return uint(decode(t, w)["id"].(float64))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func decodeList(t *testing.T, raw []byte) []interface{} {
	t.Helper()
	var list []interface{}
	require.NoError(t, json.Unmarshal(raw, &list), string(raw))
	return list
}
