package service

import "errors"

var (
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrTagNotFound        = errors.New("tag not found")

	ErrForbidden = errors.New("only the author can change this recipe")

	ErrAlreadyMember = errors.New("already added")
	ErrNotMember     = errors.New("not added")
	ErrSelfRelation  = errors.New("cannot subscribe to yourself")

	ErrEmailExists    = errors.New("a user with this email already exists")
	ErrUsernameExists = errors.New("a user with this username already exists")
	ErrWeakPassword   = errors.New("password does not meet requirements")

	ErrImageRequired = errors.New("image is required")
	ErrInvalidLimit  = errors.New("recipes_limit must be a non-negative integer")
)
