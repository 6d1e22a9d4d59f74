package repository

import (
	"errors"

	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	List(page Page) ([]model.User, int64, error)
	ListSubscribedAuthors(userID uint, page Page) ([]model.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"email":    user.Email,
		"username": user.Username,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email":    user.Email,
			"username": user.Username,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id": user.ID,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	logger.Debug("Finding user by ID in database", map[string]interface{}{
		"user_id": id,
	})

	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		logger.Error("Failed to find user by ID in database", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	return r.findBy("email", email)
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	return r.findBy("username", username)
}

func (r *userRepository) findBy(column, value string) (*model.User, error) {
	logger.Debug("Finding user in database", map[string]interface{}{
		column: value,
	})

	var user model.User
	if err := r.db.Where(column+" = ?", value).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find user in database", err, map[string]interface{}{
				column: value,
			})
		}
		return nil, err
	}
	return &user, nil
}

// List returns users ordered by id
func (r *userRepository) List(page Page) ([]model.User, int64, error) {
	logger.Debug("Listing users in database", map[string]interface{}{
		"page": page.Number,
		"size": page.Size,
	})

	var total int64
	if err := r.db.Model(&model.User{}).Count(&total).Error; err != nil {
		logger.Error("Failed to count users", err)
		return nil, 0, err
	}

	var users []model.User
	err := r.db.Order("id ASC").Offset(page.Offset()).Limit(page.Limit()).Find(&users).Error
	if err != nil {
		logger.Error("Failed to list users", err)
		return nil, 0, err
	}
	return users, total, nil
}

// ListSubscribedAuthors returns the authors userID follows, most recent subscription first
func (r *userRepository) ListSubscribedAuthors(userID uint, page Page) ([]model.User, int64, error) {
	logger.Debug("Listing subscribed authors in database", map[string]interface{}{
		"user_id": userID,
		"page":    page.Number,
	})

	base := r.db.Model(&model.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		logger.Error("Failed to count subscriptions", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, 0, err
	}

	var authors []model.User
	err := base.Session(&gorm.Session{}).
		Order("subscriptions.id DESC").
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&authors).Error
	if err != nil {
		logger.Error("Failed to list subscribed authors", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, 0, err
	}
	return authors, total, nil
}
