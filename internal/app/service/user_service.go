package service

import (
	"errors"
	"strings"

	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/internal/app/presenter"
	"github.com/foodgram/foodgram-backend/internal/app/repository"
	"github.com/foodgram/foodgram-backend/pkg/logger"
	"github.com/foodgram/foodgram-backend/pkg/util"
	"gorm.io/gorm"
)

// RegisterInput is a sign-up request
type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// AuthorEntry is one followed author with a capped preview of their recipes
type AuthorEntry struct {
	Author       model.User
	Recipes      []model.Recipe
	RecipesCount int64
}

type UserService interface {
	Register(input RegisterInput) (*model.User, error)
	Get(id uint) (*model.User, error)
	List(page repository.Page) ([]model.User, int64, error)
	// Viewer loads which of users the viewer follows
	Viewer(viewerID uint, users []model.User) (presenter.Viewer, error)
	// Subscriptions lists followed authors; recipesLimit < 0 means no cap
	Subscriptions(userID uint, page repository.Page, recipesLimit int) ([]AuthorEntry, int64, error)
	Subscription(authorID uint, recipesLimit int) (*AuthorEntry, error)
}

type userService struct {
	uow repository.UnitOfWork
}

func NewUserService(uow repository.UnitOfWork) UserService {
	return &userService{uow: uow}
}

func (s *userService) Register(input RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	logger.Info("Registering user", map[string]interface{}{
		"email":    email,
		"username": username,
	})

	if err := util.CheckPassword(input.Password); err != nil {
		return nil, errors.Join(ErrWeakPassword, err)
	}

	users := s.uow.Repositories().Users
	if _, err := users.FindByEmail(email); err == nil {
		logger.Warn("Registration failed: email exists", map[string]interface{}{
			"email": email,
		})
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := users.FindByUsername(username); err == nil {
		logger.Warn("Registration failed: username exists", map[string]interface{}{
			"username": username,
		})
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return nil, err
	}

	user := &model.User{
		Email:        email,
		Username:     username,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if err := users.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

func (s *userService) Get(id uint) (*model.User, error) {
	user, err := s.uow.Repositories().Users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(page repository.Page) ([]model.User, int64, error) {
	return s.uow.Repositories().Users.List(page)
}

func (s *userService) Viewer(viewerID uint, users []model.User) (presenter.Viewer, error) {
	viewer := presenter.Viewer{UserID: viewerID}
	if viewerID == 0 {
		return viewer, nil
	}

	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	following, err := s.uow.Repositories().Relations.TargetsAmong(repository.SubscriptionRelation, viewerID, ids)
	if err != nil {
		return viewer, err
	}
	viewer.Following = following
	return viewer, nil
}

func (s *userService) Subscriptions(userID uint, page repository.Page, recipesLimit int) ([]AuthorEntry, int64, error) {
	repos := s.uow.Repositories()

	authors, total, err := repos.Users.ListSubscribedAuthors(userID, page)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, len(authors))
	for i, a := range authors {
		ids[i] = a.ID
	}
	counts, err := repos.Recipes.CountByAuthors(ids)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]AuthorEntry, len(authors))
	for i, author := range authors {
		recipes, err := repos.Recipes.ListByAuthor(author.ID, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		entries[i] = AuthorEntry{
			Author:       author,
			Recipes:      recipes,
			RecipesCount: counts[author.ID],
		}
	}
	return entries, total, nil
}

func (s *userService) Subscription(authorID uint, recipesLimit int) (*AuthorEntry, error) {
	author, err := s.Get(authorID)
	if err != nil {
		return nil, err
	}

	repos := s.uow.Repositories()
	recipes, err := repos.Recipes.ListByAuthor(authorID, recipesLimit)
	if err != nil {
		return nil, err
	}
	counts, err := repos.Recipes.CountByAuthors([]uint{authorID})
	if err != nil {
		return nil, err
	}
	return &AuthorEntry{
		Author:       *author,
		Recipes:      recipes,
		RecipesCount: counts[authorID],
	}, nil
}
