// Package presenter converts models into API response bodies.
package presenter

import (
	"github.com/foodgram/foodgram-backend/internal/app/model"
)

// RecipeShape selects the representation of a recipe
type RecipeShape int

const (
	// ReadShape nests full tags and the author and carries the viewer flags
	ReadShape RecipeShape = iota
	// WriteShape echoes what a create or update accepted: tag ids and ingredient lines
	WriteShape
)

// Viewer is the caller a response is rendered for, with the relation sets
// loaded for the records being rendered. The zero value is an anonymous caller.
type Viewer struct {
	UserID    uint
	Favorited map[uint]bool // recipe ids
	InCart    map[uint]bool // recipe ids
	Following map[uint]bool // author ids
}

func (v Viewer) Authenticated() bool {
	return v.UserID != 0
}

type User struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type Tag struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type Ingredient struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// RecipeIngredient is an ingredient with the amount a recipe uses; ID is the ingredient's
type RecipeIngredient struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeRead struct {
	ID               uint               `json:"id"`
	Tags             []Tag              `json:"tags"`
	Author           User               `json:"author"`
	Ingredients      []RecipeIngredient `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
}

type RecipeWrite struct {
	ID          uint               `json:"id"`
	Tags        []uint             `json:"tags"`
	Author      uint               `json:"author"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Name        string             `json:"name"`
	Image       string             `json:"image"`
	Text        string             `json:"text"`
	CookingTime int                `json:"cooking_time"`
}

// RecipeReduced is returned by favorite and cart toggles and nested in subscriptions
type RecipeReduced struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// Subscription is an author as seen by a follower
type Subscription struct {
	User
	Recipes      []RecipeReduced `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

// Presenter holds what rendering needs beyond the models themselves
type Presenter struct {
	imageURL func(key string) string
}

// New takes the function that turns stored image keys into public URLs
func New(imageURL func(key string) string) *Presenter {
	if imageURL == nil {
		imageURL = func(key string) string { return key }
	}
	return &Presenter{imageURL: imageURL}
}

func (p *Presenter) User(u *model.User, v Viewer) User {
	return User{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: v.Authenticated() && v.Following[u.ID],
	}
}

func (p *Presenter) Users(users []model.User, v Viewer) []User {
	out := make([]User, len(users))
	for i := range users {
		out[i] = p.User(&users[i], v)
	}
	return out
}

func TagView(t model.Tag) Tag {
	return Tag{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

func Tags(tags []model.Tag) []Tag {
	out := make([]Tag, len(tags))
	for i, t := range tags {
		out[i] = TagView(t)
	}
	return out
}

func IngredientView(i model.Ingredient) Ingredient {
	return Ingredient{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}

func Ingredients(ingredients []model.Ingredient) []Ingredient {
	out := make([]Ingredient, len(ingredients))
	for i, ing := range ingredients {
		out[i] = IngredientView(ing)
	}
	return out
}

// Recipe renders r in the requested shape
func (p *Presenter) Recipe(r *model.Recipe, shape RecipeShape, v Viewer) interface{} {
	if shape == WriteShape {
		return p.RecipeWrite(r)
	}
	return p.RecipeRead(r, v)
}

func (p *Presenter) RecipeRead(r *model.Recipe, v Viewer) RecipeRead {
	return RecipeRead{
		ID:               r.ID,
		Tags:             Tags(r.Tags),
		Author:           p.User(&r.Author, v),
		Ingredients:      recipeIngredients(r.IngredientLines),
		IsFavorited:      v.Authenticated() && v.Favorited[r.ID],
		IsInShoppingCart: v.Authenticated() && v.InCart[r.ID],
		Name:             r.Name,
		Image:            p.imageURL(r.Image),
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}

func (p *Presenter) RecipeWrite(r *model.Recipe) RecipeWrite {
	tagIDs := make([]uint, len(r.Tags))
	for i, t := range r.Tags {
		tagIDs[i] = t.ID
	}
	return RecipeWrite{
		ID:          r.ID,
		Tags:        tagIDs,
		Author:      r.AuthorID,
		Ingredients: recipeIngredients(r.IngredientLines),
		Name:        r.Name,
		Image:       p.imageURL(r.Image),
		Text:        r.Text,
		CookingTime: r.CookingTime,
	}
}

func (p *Presenter) Recipes(recipes []model.Recipe, v Viewer) []RecipeRead {
	out := make([]RecipeRead, len(recipes))
	for i := range recipes {
		out[i] = p.RecipeRead(&recipes[i], v)
	}
	return out
}

func (p *Presenter) Reduced(r *model.Recipe) RecipeReduced {
	return RecipeReduced{
		ID:          r.ID,
		Name:        r.Name,
		Image:       p.imageURL(r.Image),
		CookingTime: r.CookingTime,
	}
}

// Subscription renders a followed author; recipes are expected already capped
func (p *Presenter) Subscription(author *model.User, recipes []model.Recipe, recipesCount int64) Subscription {
	reduced := make([]RecipeReduced, len(recipes))
	for i := range recipes {
		reduced[i] = p.Reduced(&recipes[i])
	}
	view := p.User(author, Viewer{})
	view.IsSubscribed = true
	return Subscription{
		User:         view,
		Recipes:      reduced,
		RecipesCount: recipesCount,
	}
}

func recipeIngredients(lines []model.IngredientRecipe) []RecipeIngredient {
	out := make([]RecipeIngredient, len(lines))
	for i, line := range lines {
		out[i] = RecipeIngredient{
			ID:              line.IngredientID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		}
	}
	return out
}
