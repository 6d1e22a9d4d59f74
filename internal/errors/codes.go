package errors

// Error codes returned in ErrorResponse.Error.
// Format: CATEGORY_SPECIFIC_DETAIL. Clients map messages by code.

const (
	// ==================== AUTH_ ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"

	// ==================== AUTHZ_ ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"

	// ==================== VALIDATION_ ====================
	ValidationInvalidInput    = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID       = "VALIDATION_INVALID_ID"
	ValidationInvalidQuantity = "VALIDATION_INVALID_QUANTITY"
	ValidationInvalidImage    = "VALIDATION_INVALID_IMAGE"
	ValidationRequired        = "VALIDATION_REQUIRED"
	ValidationWeakPassword    = "VALIDATION_WEAK_PASSWORD"

	// ==================== RESOURCE_ ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"
	MethodNotAllowed      = "METHOD_NOT_ALLOWED"

	// ==================== RECIPE_ ====================
	RecipeNotFound            = "RECIPE_NOT_FOUND"
	RecipeDuplicate           = "RECIPE_DUPLICATE"
	RecipeDuplicateTag        = "RECIPE_DUPLICATE_TAG"
	RecipeDuplicateIngredient = "RECIPE_DUPLICATE_INGREDIENT"
	RecipeUnknownTag          = "RECIPE_UNKNOWN_TAG"
	RecipeUnknownIngredient   = "RECIPE_UNKNOWN_INGREDIENT"

	// ==================== USER_ ====================
	UserNotFound = "USER_NOT_FOUND"

	// ==================== RELATION_ (favorite, cart, subscription) ====================
	RelationAlreadyExists = "RELATION_ALREADY_EXISTS"
	RelationNotAMember    = "RELATION_NOT_A_MEMBER"
	RelationSelfForbidden = "RELATION_SELF_FORBIDDEN"

	// ==================== INTERNAL_ ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalStorageError  = "INTERNAL_STORAGE_ERROR"
)
