package service

import (
	"errors"

	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/internal/app/repository"
	"gorm.io/gorm"
)

type TagService interface {
	List() ([]model.Tag, error)
	Get(id uint) (*model.Tag, error)
}

type tagService struct {
	tags repository.TagRepository
}

func NewTagService(tags repository.TagRepository) TagService {
	return &tagService{tags: tags}
}

func (s *tagService) List() ([]model.Tag, error) {
	return s.tags.FindAll()
}

func (s *tagService) Get(id uint) (*model.Tag, error) {
	tag, err := s.tags.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}
