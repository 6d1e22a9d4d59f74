package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error body
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ValidationResponse lists validation failures by field
type ValidationResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// RespondWithParsedError maps err through ParseError; not-found maps to 404, constraint
// violations to 400, everything else to 500.
func RespondWithParsedError(c *gin.Context, err error, context string) {
	info := ParseError(err, context)
	status := http.StatusInternalServerError
	switch info.Code {
	case ResourceNotFound, RecipeNotFound, UserNotFound:
		status = http.StatusNotFound
	case InternalServerError, InternalDatabaseError:
	default:
		status = http.StatusBadRequest
	}
	RespondWithError(c, status, info.Code, info.Message)
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication credentials were not provided"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "You do not have permission to perform this action"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func MethodNotAllowedResponse(c *gin.Context, method string) {
	RespondWithError(c, http.StatusMethodNotAllowed, MethodNotAllowed, "Method \""+method+"\" not allowed")
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error, please retry later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

func RespondWithValidationError(c *gin.Context, errorCode string, message string, fields map[string][]string) {
	if errorCode == "" {
		errorCode = ValidationInvalidInput
	}
	if message == "" {
		message = "Invalid input"
	}
	c.JSON(http.StatusBadRequest, ValidationResponse{
		Error:   errorCode,
		Message: message,
		Fields:  fields,
	})
}
