package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
)

// Recipe is hard-deleted so that lines, tag links and relation rows cascade with it.
type Recipe struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Name        string    `gorm:"type:varchar(200);not null;index;uniqueIndex:idx_recipe_name_text,priority:1" json:"name"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	TextHash    string    `gorm:"type:char(64);not null;default:'';uniqueIndex:idx_recipe_name_text,priority:2" json:"-"`
	CookingTime int       `gorm:"not null;check:chk_recipe_cooking_time,cooking_time >= 1" json:"cooking_time"`
	Image       string    `gorm:"type:varchar(255)" json:"image"` // storage key
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Author          User               `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"author"`
	Tags            []Tag              `gorm:"many2many:recipe_tags;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tags"`
	IngredientLines []IngredientRecipe `gorm:"foreignKey:RecipeID" json:"ingredients"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// HashText digests recipe text for the (name, text) unique index; text columns can't be indexed directly.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	r.TextHash = HashText(r.Text)
	return nil
}

// IngredientRecipe is one ingredient line of a recipe
type IngredientRecipe struct {
	ID           uint `gorm:"primarykey" json:"id"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_ingredient_recipe" json:"recipe_id"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_ingredient_recipe" json:"ingredient_id"`
	Amount       int  `gorm:"not null;check:chk_ingredient_recipe_amount,amount >= 1" json:"amount"`

	Recipe     Recipe     `gorm:"foreignKey:RecipeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"ingredient"`
}

func (IngredientRecipe) TableName() string {
	return "ingredient_recipes"
}
