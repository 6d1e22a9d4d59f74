package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError turns a storage error into a code and message safe to return to clients.
// Matching is on message text so it covers both postgres and sqlite drivers.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Internal server error"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: getNotFoundMessage(context)}
	}

	errLower := strings.ToLower(err.Error())

	switch {
	// postgres 23505, sqlite "UNIQUE constraint failed"
	case strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint"):
		return parseDuplicateKeyError(errLower)
	// postgres 23503, sqlite "FOREIGN KEY constraint failed"
	case strings.Contains(errLower, "foreign key constraint"):
		return parseForeignKeyError(errLower)
	// postgres 23514, sqlite "CHECK constraint failed"
	case strings.Contains(errLower, "check constraint"):
		return parseCheckConstraintError(errLower)
	case strings.Contains(errLower, "not-null constraint") || strings.Contains(errLower, "not null constraint"):
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	case strings.Contains(errLower, "connection refused") || strings.Contains(errLower, "timeout"):
		return ErrorInfo{Code: InternalDatabaseError, Message: "Database is unavailable, please retry later"}
	}

	return ErrorInfo{Code: InternalServerError, Message: getDefaultErrorMessage(context)}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "email"):
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "A user with this email already exists"}
	case strings.Contains(errLower, "username"):
		return ErrorInfo{Code: AuthUsernameExists, Message: "A user with this username already exists"}
	case strings.Contains(errLower, "favorites"), strings.Contains(errLower, "shopping_cart_items"),
		strings.Contains(errLower, "subscription"):
		return ErrorInfo{Code: RelationAlreadyExists, Message: "Already added"}
	case strings.Contains(errLower, "idx_recipe_name_text"), strings.Contains(errLower, "text_hash"):
		return ErrorInfo{Code: RecipeDuplicate, Message: "A recipe with this name and text already exists"}
	case strings.Contains(errLower, "ingredient_recipe"):
		return ErrorInfo{Code: RecipeDuplicateIngredient, Message: "Ingredients must not repeat"}
	case strings.Contains(errLower, "slug"), strings.Contains(errLower, "tags"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "A tag with this name or slug already exists"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "Resource already exists"}
}

func parseForeignKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "still referenced"):
		return ErrorInfo{Code: ResourceConflict, Message: "Resource is still referenced"}
	case strings.Contains(errLower, "recipe_id"):
		return ErrorInfo{Code: RecipeNotFound, Message: "Recipe not found"}
	case strings.Contains(errLower, "author_id"), strings.Contains(errLower, "user_id"):
		return ErrorInfo{Code: UserNotFound, Message: "User not found"}
	}
	return ErrorInfo{Code: ResourceNotFound, Message: "Referenced resource not found"}
}

func parseCheckConstraintError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "cooking_time") || strings.Contains(errLower, "amount") {
		return ErrorInfo{Code: ValidationInvalidQuantity, Message: "Value must be at least 1"}
	}
	return ErrorInfo{Code: ValidationInvalidInput, Message: "Invalid input"}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)
	switch {
	case strings.Contains(contextLower, "recipe"):
		return "Recipe not found"
	case strings.Contains(contextLower, "user"), strings.Contains(contextLower, "author"):
		return "User not found"
	case strings.Contains(contextLower, "ingredient"):
		return "Ingredient not found"
	case strings.Contains(contextLower, "tag"):
		return "Tag not found"
	}
	return "Not found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)
	switch {
	case strings.Contains(contextLower, "create"):
		return "Failed to create, please retry later"
	case strings.Contains(contextLower, "update"):
		return "Failed to update, please retry later"
	case strings.Contains(contextLower, "delete"):
		return "Failed to delete, please retry later"
	}
	return "Internal server error"
}
