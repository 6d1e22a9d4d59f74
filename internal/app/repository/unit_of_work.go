package repository

import (
	"github.com/foodgram/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

// Repositories bundles every repository bound to the same connection or transaction
type Repositories struct {
	Users       UserRepository
	Recipes     RecipeRepository
	Ingredients IngredientRepository
	Tags        TagRepository
	Relations   RelationRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(db),
		Recipes:     NewRecipeRepository(db),
		Ingredients: NewIngredientRepository(db),
		Tags:        NewTagRepository(db),
		Relations:   NewRelationRepository(db),
	}
}

// UnitOfWork gives services explicit transaction boundaries. Inside Transaction
// only the repositories passed to fn may be used.
type UnitOfWork interface {
	Repositories() *Repositories
	Transaction(fn func(tx *Repositories) error) error
}

type gormUnitOfWork struct {
	db    *gorm.DB
	repos *Repositories
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db, repos: NewRepositories(db)}
}

func (u *gormUnitOfWork) Repositories() *Repositories {
	return u.repos
}

func (u *gormUnitOfWork) Transaction(fn func(tx *Repositories) error) error {
	err := u.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
	if err != nil {
		logger.Debug("Transaction rolled back", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return err
}
