package controller

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/foodgram/foodgram-backend/config"
	"github.com/foodgram/foodgram-backend/internal/app/repository"
	"github.com/foodgram/foodgram-backend/internal/app/service"
	"github.com/foodgram/foodgram-backend/internal/app/validator"
	apperrors "github.com/foodgram/foodgram-backend/internal/errors"
	"github.com/foodgram/foodgram-backend/internal/middleware"
	"github.com/foodgram/foodgram-backend/internal/storage"
	"github.com/foodgram/foodgram-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// parseID reads a positive integer path parameter, answering 404 when it is not one
func parseID(c *gin.Context, param string) (uint, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		middleware.GetLoggerFromContext(c).Warn("Invalid ID format", map[string]interface{}{
			"param": param,
			"value": raw,
		})
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Not found")
		return 0, false
	}
	return uint(id), true
}

// pageFromQuery reads ?page and ?limit, clamping limit to the configured maximum
func pageFromQuery(c *gin.Context, cfg config.PaginationConfig) repository.Page {
	page := repository.Page{Number: 1, Size: cfg.PageSize}
	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		page.Number = n
	}
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		page.Size = n
	}
	if cfg.MaxPageSize > 0 && page.Size > cfg.MaxPageSize {
		page.Size = cfg.MaxPageSize
	}
	return page
}

// recipesLimit reads ?recipes_limit; absent means no cap (-1)
func recipesLimit(c *gin.Context) (int, error) {
	raw := c.Query("recipes_limit")
	if raw == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, service.ErrInvalidLimit
	}
	return n, nil
}

// absoluteURL rebuilds the request URL with scheme and host for pagination links
func absoluteURL(c *gin.Context) *url.URL {
	u := *c.Request.URL
	u.Host = c.Request.Host
	u.Scheme = "http"
	if c.Request.TLS != nil {
		u.Scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		u.Scheme = proto
	}
	return &u
}

func viewerID(c *gin.Context) uint {
	id, _ := middleware.GetUserID(c)
	return id
}

func actorFromContext(c *gin.Context) service.Actor {
	role, _ := middleware.GetUserRole(c)
	return service.Actor{ID: viewerID(c), Role: role}
}

// validationCodes maps rule sentinels to response codes; the first matching field error wins
var validationCodes = []struct {
	err  error
	code string
}{
	{validator.ErrDuplicateRecipe, apperrors.RecipeDuplicate},
	{validator.ErrDuplicateTag, apperrors.RecipeDuplicateTag},
	{validator.ErrDuplicateIngredient, apperrors.RecipeDuplicateIngredient},
	{validator.ErrUnknownTag, apperrors.RecipeUnknownTag},
	{validator.ErrUnknownIngredient, apperrors.RecipeUnknownIngredient},
	{validator.ErrInvalidQuantity, apperrors.ValidationInvalidQuantity},
	{validator.ErrRequired, apperrors.ValidationRequired},
}

func validationCode(fe validator.FieldError) string {
	for _, vc := range validationCodes {
		if errors.Is(fe.Err, vc.err) {
			return vc.code
		}
	}
	return apperrors.ValidationInvalidInput
}

// respondServiceError writes the response for an error returned by a service
func respondServiceError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	var verrs validator.Errors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		log.Warn("Validation failed", map[string]interface{}{
			"fields": verrs.Fields(),
		})
		apperrors.RespondWithValidationError(c, validationCode(verrs[0]), verrs[0].Error(), verrs.Fields())
		return
	}

	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
	case errors.Is(err, service.ErrUserNotFound):
		apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
	case errors.Is(err, service.ErrTagNotFound), errors.Is(err, service.ErrIngredientNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		apperrors.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrAlreadyMember):
		apperrors.BadRequest(c, apperrors.RelationAlreadyExists, err.Error())
	case errors.Is(err, service.ErrNotMember):
		apperrors.BadRequest(c, apperrors.RelationNotAMember, err.Error())
	case errors.Is(err, service.ErrSelfRelation):
		apperrors.BadRequest(c, apperrors.RelationSelfForbidden, err.Error())
	case errors.Is(err, service.ErrEmailExists):
		apperrors.BadRequest(c, apperrors.AuthEmailAlreadyExists, err.Error())
	case errors.Is(err, service.ErrUsernameExists):
		apperrors.BadRequest(c, apperrors.AuthUsernameExists, err.Error())
	case errors.Is(err, service.ErrWeakPassword):
		apperrors.RespondWithValidationError(c, apperrors.ValidationWeakPassword, err.Error(),
			map[string][]string{"password": {passwordReason(err)}})
	case errors.Is(err, service.ErrImageRequired):
		apperrors.RespondWithValidationError(c, apperrors.ValidationRequired, err.Error(),
			map[string][]string{"image": {err.Error()}})
	case errors.Is(err, storage.ErrInvalidImage), errors.Is(err, storage.ErrEmptyPayload):
		apperrors.RespondWithValidationError(c, apperrors.ValidationInvalidImage, storage.ErrInvalidImage.Error(),
			map[string][]string{"image": {storage.ErrInvalidImage.Error()}})
	case errors.Is(err, service.ErrInvalidLimit):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
	default:
		log.Error("Request failed", err, map[string]interface{}{
			"context": context,
		})
		apperrors.RespondWithParsedError(c, err, context)
	}
}

func passwordReason(err error) string {
	for _, reason := range []error{util.ErrPasswordTooShort, util.ErrPasswordTooLong, util.ErrPasswordAllNumeric} {
		if errors.Is(err, reason) {
			return reason.Error()
		}
	}
	return service.ErrWeakPassword.Error()
}
