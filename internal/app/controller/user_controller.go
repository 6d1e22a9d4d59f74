package controller

import (
	"net/http"

	"github.com/foodgram/foodgram-backend/config"
	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/internal/app/presenter"
	"github.com/foodgram/foodgram-backend/internal/app/repository"
	"github.com/foodgram/foodgram-backend/internal/app/service"
	apperrors "github.com/foodgram/foodgram-backend/internal/errors"
	"github.com/foodgram/foodgram-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService     service.UserService
	relationService service.RelationService
	presenter       *presenter.Presenter
	pagination      config.PaginationConfig
}

func NewUserController(
	userService service.UserService,
	relationService service.RelationService,
	p *presenter.Presenter,
	pagination config.PaginationConfig,
) *UserController {
	return &UserController{
		userService:     userService,
		relationService: relationService,
		presenter:       p,
		pagination:      pagination,
	}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required"`
}

// RegisterUserResponse omits is_subscribed, which means nothing for a new account
type RegisterUserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ListUsers returns a page of users
// GET /api/users
func (ctrl *UserController) ListUsers(c *gin.Context) {
	page := pageFromQuery(c, ctrl.pagination)

	users, total, err := ctrl.userService.List(page)
	if err != nil {
		respondServiceError(c, err, "list users")
		return
	}
	viewer, err := ctrl.userService.Viewer(viewerID(c), users)
	if err != nil {
		respondServiceError(c, err, "list users")
		return
	}

	c.JSON(http.StatusOK, presenter.NewPage(ctrl.presenter.Users(users, viewer), total, page.Number, page.Size, absoluteURL(c)))
}

// Register creates an account
// POST /api/users
func (ctrl *UserController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	user, err := ctrl.userService.Register(service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		respondServiceError(c, err, "register user")
		return
	}

	c.JSON(http.StatusCreated, RegisterUserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// Me returns the caller
// GET /api/users/me
func (ctrl *UserController) Me(c *gin.Context) {
	user, err := ctrl.userService.Get(viewerID(c))
	if err != nil {
		respondServiceError(c, err, "current user")
		return
	}
	c.JSON(http.StatusOK, ctrl.presenter.User(user, presenter.Viewer{}))
}

// GetUser returns a user with the caller's subscription flag
// GET /api/users/:id
func (ctrl *UserController) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := ctrl.userService.Get(id)
	if err != nil {
		respondServiceError(c, err, "get user")
		return
	}
	viewer, err := ctrl.userService.Viewer(viewerID(c), []model.User{*user})
	if err != nil {
		respondServiceError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, ctrl.presenter.User(user, viewer))
}

// DeleteUser accounts are never deleted through the API
// DELETE /api/users/:id
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	apperrors.MethodNotAllowedResponse(c, c.Request.Method)
}

// Subscribe follows an author
// GET|POST /api/users/:id/subscribe?recipes_limit=
func (ctrl *UserController) Subscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	limit, err := recipesLimit(c)
	if err != nil {
		respondServiceError(c, err, "subscribe")
		return
	}

	if err := ctrl.relationService.Toggle(repository.SubscriptionRelation, viewerID(c), id, service.Add); err != nil {
		respondServiceError(c, err, "subscribe")
		return
	}

	entry, err := ctrl.userService.Subscription(id, limit)
	if err != nil {
		respondServiceError(c, err, "subscribe")
		return
	}

	log.Info("Subscribed to author", map[string]interface{}{
		"author_id": id,
	})
	c.JSON(http.StatusCreated, ctrl.presenter.Subscription(&entry.Author, entry.Recipes, entry.RecipesCount))
}

// Unsubscribe DELETE /api/users/:id/subscribe
func (ctrl *UserController) Unsubscribe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.relationService.Toggle(repository.SubscriptionRelation, viewerID(c), id, service.Remove); err != nil {
		respondServiceError(c, err, "unsubscribe")
		return
	}
	c.Status(http.StatusNoContent)
}

// Subscriptions lists the authors the caller follows
// GET /api/users/subscriptions?page=&limit=&recipes_limit=
func (ctrl *UserController) Subscriptions(c *gin.Context) {
	page := pageFromQuery(c, ctrl.pagination)
	limit, err := recipesLimit(c)
	if err != nil {
		respondServiceError(c, err, "subscriptions")
		return
	}

	entries, total, err := ctrl.userService.Subscriptions(viewerID(c), page, limit)
	if err != nil {
		respondServiceError(c, err, "subscriptions")
		return
	}

	results := make([]presenter.Subscription, len(entries))
	for i := range entries {
		results[i] = ctrl.presenter.Subscription(&entries[i].Author, entries[i].Recipes, entries[i].RecipesCount)
	}
	c.JSON(http.StatusOK, presenter.NewPage(results, total, page.Number, page.Size, absoluteURL(c)))
}
