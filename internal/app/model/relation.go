package model

import "time"

// Favorite marks a recipe as favorited by a user. The composite key is the uniqueness guarantee.
type Favorite struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	RecipeID  uint      `gorm:"primaryKey;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// ShoppingCartItem puts a recipe in a user's shopping cart
type ShoppingCartItem struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	RecipeID  uint      `gorm:"primaryKey;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (ShoppingCartItem) TableName() string {
	return "shopping_cart_items"
}

// Subscription: UserID follows AuthorID
type Subscription struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_subscription_user_author" json:"user_id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_subscription_user_author;index" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Author User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"author"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
