package repository

import (
	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

type TagRepository interface {
	FindAll() ([]model.Tag, error)
	FindByID(id uint) (*model.Tag, error)
	FindByIDs(ids []uint) ([]model.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) FindAll() ([]model.Tag, error) {
	logger.Debug("Finding all tags in database")

	var tags []model.Tag
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		logger.Error("Failed to find tags in database", err)
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) FindByID(id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByIDs(ids []uint) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var tags []model.Tag
	if err := r.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		logger.Error("Failed to find tags by IDs", err, map[string]interface{}{
			"tag_ids": ids,
		})
		return nil, err
	}
	return tags, nil
}
