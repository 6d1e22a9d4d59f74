// Package validator holds the recipe field and cross-field rules.
package validator

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxNameLength bounds recipe names
const MaxNameLength = 200

var (
	ErrInvalidQuantity     = errors.New("value must be at least 1")
	ErrRequired            = errors.New("field is required")
	ErrTooLong             = errors.New("value is too long")
	ErrDuplicateRecipe     = errors.New("a recipe with this name and text already exists")
	ErrDuplicateTag        = errors.New("tags must not repeat")
	ErrDuplicateIngredient = errors.New("ingredients must not repeat")
	ErrUnknownTag          = errors.New("tag does not exist")
	ErrUnknownIngredient   = errors.New("ingredient does not exist")
)

// FieldError is a rule violation on one input field
type FieldError struct {
	Field string
	Err   error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e FieldError) Unwrap() error {
	return e.Err
}

// Errors collects at most one FieldError per rule
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

func (e Errors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, fe := range e {
		errs[i] = fe
	}
	return errs
}

// Fields groups messages by field name
func (e Errors) Fields() map[string][]string {
	fields := make(map[string][]string, len(e))
	for _, fe := range e {
		fields[fe.Field] = append(fields[fe.Field], fe.Err.Error())
	}
	return fields
}

func (e *Errors) add(field string, err error) {
	*e = append(*e, FieldError{Field: field, Err: err})
}

func ValidateAmount(amount int) error {
	if amount < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

func ValidateCookingTime(minutes int) error {
	if minutes < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

type IngredientLine struct {
	IngredientID uint
	Amount       int
}

// RecipeInput is a recipe write payload after decoding
type RecipeInput struct {
	Name        string
	Text        string
	CookingTime int
	TagIDs      []uint
	Ingredients []IngredientLine
}

// Lookup answers the storage questions the cross-field rules need
type Lookup interface {
	RecipeExists(name, text string, excludeID uint) (bool, error)
	ExistingTagIDs(ids []uint) (map[uint]bool, error)
	ExistingIngredientIDs(ids []uint) (map[uint]bool, error)
}

// ValidateRecipe checks a create (excludeID == 0) or update payload. It returns nil,
// an Errors value, or the lookup's own error.
func ValidateRecipe(in RecipeInput, excludeID uint, lookup Lookup) error {
	var errs Errors

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		errs.add("name", ErrRequired)
	case utf8.RuneCountInString(name) > MaxNameLength:
		errs.add("name", ErrTooLong)
	}
	if strings.TrimSpace(in.Text) == "" {
		errs.add("text", ErrRequired)
	}
	if err := ValidateCookingTime(in.CookingTime); err != nil {
		errs.add("cooking_time", err)
	}

	if err := checkTags(in.TagIDs, lookup, &errs); err != nil {
		return err
	}
	if err := checkIngredients(in.Ingredients, lookup, &errs); err != nil {
		return err
	}

	if name != "" && strings.TrimSpace(in.Text) != "" {
		exists, err := lookup.RecipeExists(in.Name, in.Text, excludeID)
		if err != nil {
			return err
		}
		if exists {
			errs.add("name", ErrDuplicateRecipe)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func checkTags(ids []uint, lookup Lookup, errs *Errors) error {
	if len(ids) == 0 {
		errs.add("tags", ErrRequired)
		return nil
	}

	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			errs.add("tags", ErrDuplicateTag)
			break
		}
		seen[id] = true
	}

	existing, err := lookup.ExistingTagIDs(ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if !existing[id] {
			errs.add("tags", fmt.Errorf("%w: %d", ErrUnknownTag, id))
			break
		}
	}
	return nil
}

func checkIngredients(lines []IngredientLine, lookup Lookup, errs *Errors) error {
	if len(lines) == 0 {
		errs.add("ingredients", ErrRequired)
		return nil
	}

	ids := make([]uint, 0, len(lines))
	seen := make(map[uint]bool, len(lines))
	duplicate, badAmount := false, false
	for _, line := range lines {
		if seen[line.IngredientID] && !duplicate {
			errs.add("ingredients", ErrDuplicateIngredient)
			duplicate = true
		}
		seen[line.IngredientID] = true
		ids = append(ids, line.IngredientID)

		if err := ValidateAmount(line.Amount); err != nil && !badAmount {
			errs.add("amount", err)
			badAmount = true
		}
	}

	existing, err := lookup.ExistingIngredientIDs(ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if !existing[id] {
			errs.add("ingredients", fmt.Errorf("%w: %d", ErrUnknownIngredient, id))
			break
		}
	}
	return nil
}
