package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a parsed error: a stable code plus a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts storage-level errors into user-facing codes and
// messages. Constraint names leak which rule was violated without exposing
// SQL details to the caller.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// Unique constraint violation (Postgres 23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStrLower)
	}

	// Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "An internal error occurred. Please try again later",
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "email"):
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "This email is already in use"}
	case strings.Contains(errLower, "username"):
		return ErrorInfo{Code: AuthUsernameExists, Message: "This username is already in use"}
	case strings.Contains(errLower, "idx_favorites_pair"):
		return ErrorInfo{Code: FavoriteAlreadyExists, Message: "Recipe is already in favorites"}
	case strings.Contains(errLower, "idx_cart_pair"):
		return ErrorInfo{Code: CartAlreadyExists, Message: "Recipe is already in the shopping cart"}
	case strings.Contains(errLower, "idx_follows_pair"):
		return ErrorInfo{Code: FollowAlreadyExists, Message: "You are already subscribed to this author"}
	case strings.Contains(errLower, "idx_recipe_ingredient"):
		return ErrorInfo{Code: ValidationDuplicateItem, Message: "Ingredients must not repeat"}
	case strings.Contains(errLower, "tags"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "A tag with this name, color or slug already exists"}
	default:
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "This record already exists"}
	}
}

func parseForeignKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "recipe_id"):
		return ErrorInfo{Code: RecipeNotFound, Message: "Recipe does not exist"}
	case strings.Contains(errLower, "ingredient_id"):
		return ErrorInfo{Code: IngredientNotFound, Message: "Ingredient does not exist"}
	case strings.Contains(errLower, "tag_id"):
		return ErrorInfo{Code: TagNotFound, Message: "Tag does not exist"}
	case strings.Contains(errLower, "user_id"), strings.Contains(errLower, "author_id"), strings.Contains(errLower, "follower_id"):
		return ErrorInfo{Code: UserNotFound, Message: "User does not exist"}
	default:
		return ErrorInfo{Code: ResourceNotFound, Message: "Referenced record not found"}
	}
}

// ParseAndRespond parses a storage-level error and writes the standard error
// payload. The interface keeps this package free of a gin dependency cycle.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "recipe"):
		return "Recipe not found"
	case strings.Contains(contextLower, "ingredient"):
		return "Ingredient not found"
	case strings.Contains(contextLower, "tag"):
		return "Tag not found"
	case strings.Contains(contextLower, "user"), strings.Contains(contextLower, "author"):
		return "User not found"
	default:
		return "Requested record not found"
	}
}
