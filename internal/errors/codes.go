package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The frontend maps these codes to localized messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAuthorOnly   = "AUTHZ_AUTHOR_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"
	ValidationDuplicateItem = "VALIDATION_DUPLICATE_ITEM"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Recipes (RECIPE_) ====================
	RecipeNotFound        = "RECIPE_NOT_FOUND"
	RecipeImageRequired   = "RECIPE_IMAGE_REQUIRED"
	RecipeNoIngredients   = "RECIPE_NO_INGREDIENTS"
	RecipeNoTags          = "RECIPE_NO_TAGS"
	RecipeInvalidCookTime = "RECIPE_INVALID_COOKING_TIME"

	// ==================== Catalog (INGREDIENT_/TAG_) ====================
	IngredientNotFound = "INGREDIENT_NOT_FOUND"
	TagNotFound        = "TAG_NOT_FOUND"

	// ==================== Marks (FAVORITE_/CART_) ====================
	FavoriteAlreadyExists = "FAVORITE_ALREADY_EXISTS"
	FavoriteNotFound      = "FAVORITE_NOT_FOUND"
	CartAlreadyExists     = "CART_ALREADY_EXISTS"
	CartNotFound          = "CART_NOT_FOUND"

	// ==================== Follows (FOLLOW_) ====================
	FollowSelfForbidden = "FOLLOW_SELF_FORBIDDEN"
	FollowAlreadyExists = "FOLLOW_ALREADY_EXISTS"
	FollowNotFound      = "FOLLOW_NOT_FOUND"
	UserNotFound        = "USER_NOT_FOUND"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
