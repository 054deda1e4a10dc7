package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jshin/cookshare-backend/internal/app/repository"
	"github.com/jshin/cookshare-backend/internal/app/service"
	apperrors "github.com/jshin/cookshare-backend/internal/errors"
	"github.com/jshin/cookshare-backend/internal/middleware"
)

type RecipeController struct {
	recipeService service.RecipeService
}

func NewRecipeController(recipeService service.RecipeService) *RecipeController {
	return &RecipeController{
		recipeService: recipeService,
	}
}

type RecipeIngredientRequest struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount" binding:"required"`
}

type RecipeRequest struct {
	Name        string                    `json:"name" binding:"required,max=200"`
	Image       string                    `json:"image"`
	Text        string                    `json:"text" binding:"required"`
	CookingTime int                       `json:"cooking_time"`
	Tags        []uint                    `json:"tags"`
	Ingredients []RecipeIngredientRequest `json:"ingredients"`
}

func (req *RecipeRequest) toInput() service.RecipeInput {
	lines := make([]service.IngredientLineInput, len(req.Ingredients))
	for i, line := range req.Ingredients {
		lines[i] = service.IngredientLineInput{
			IngredientID: line.ID,
			Amount:       line.Amount,
		}
	}
	return service.RecipeInput{
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: lines,
	}
}

// respondRecipeError maps the write-path sentinel errors onto HTTP statuses.
func respondRecipeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
	case errors.Is(err, service.ErrNotRecipeAuthor):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzAuthorOnly, "Only the author may modify this recipe")
	case errors.Is(err, service.ErrImageRequired):
		apperrors.BadRequest(c, apperrors.RecipeImageRequired, "Recipe image is required")
	case errors.Is(err, service.ErrInvalidCookingTime):
		apperrors.BadRequest(c, apperrors.RecipeInvalidCookTime, "Cooking time must be at least 1 minute")
	case errors.Is(err, service.ErrNoIngredients):
		apperrors.BadRequest(c, apperrors.RecipeNoIngredients, "Recipe must have at least one ingredient")
	case errors.Is(err, service.ErrNoTags):
		apperrors.BadRequest(c, apperrors.RecipeNoTags, "Recipe must have at least one tag")
	case errors.Is(err, service.ErrDuplicateTags):
		apperrors.BadRequest(c, apperrors.ValidationDuplicateItem, "Tags must not repeat")
	case errors.Is(err, service.ErrDuplicateIngredients):
		apperrors.BadRequest(c, apperrors.ValidationDuplicateItem, "Ingredients must not repeat")
	case errors.Is(err, service.ErrInvalidAmount):
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Ingredient amount must be between 1 and 100000")
	case errors.Is(err, service.ErrIngredientNotFound):
		apperrors.BadRequest(c, apperrors.IngredientNotFound, "One or more ingredients do not exist")
	case errors.Is(err, service.ErrTagNotFound):
		apperrors.BadRequest(c, apperrors.TagNotFound, "One or more tags do not exist")
	default:
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "recipe")
	}
}

// ListRecipes returns a filtered page of recipes, newest first
// GET /api/v1/recipes?tags=breakfast&tags=lunch&author=3&is_favorited=1&is_in_shopping_cart=1
func (ctrl *RecipeController) ListRecipes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page, limit, offset := parsePagination(c)
	requesterID := middleware.GetOptionalUserID(c)

	filter := repository.RecipeFilter{
		RequesterID: requesterID,
		Limit:       limit,
		Offset:      offset,
	}

	if tags := c.QueryArray("tags"); len(tags) > 0 {
		filter.TagSlugs = tags
	}
	if authorID, ok := parseQueryID(c, "author"); ok {
		filter.AuthorID = &authorID
	}
	// The mark filters only make sense for authenticated requesters; for
	// guests they are ignored rather than matching nothing.
	if requesterID != nil {
		filter.OnlyFavorited = isTruthy(c.Query("is_favorited"))
		filter.OnlyInShoppingCart = isTruthy(c.Query("is_in_shopping_cart"))
	}

	recipes, total, err := ctrl.recipeService.ListRecipes(filter)
	if err != nil {
		log.Error("Failed to list recipes", err, nil)
		apperrors.InternalError(c, "Failed to fetch recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
		"page":    page,
		"limit":   limit,
		"total":   total,
	})
}

// GetRecipe returns a single recipe with ingredients, tags and author
// GET /api/v1/recipes/:id
func (ctrl *RecipeController) GetRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid recipe ID")
		return
	}

	recipe, err := ctrl.recipeService.GetRecipe(id, middleware.GetOptionalUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
			return
		}
		log.Error("Failed to fetch recipe", err, map[string]interface{}{
			"recipe_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe": recipe,
	})
}

// CreateRecipe creates a recipe with its ingredient lines and tags
// POST /api/v1/recipes
func (ctrl *RecipeController) CreateRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid recipe payload", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid recipe data")
		return
	}

	recipe, err := ctrl.recipeService.CreateRecipe(userID, req.toInput())
	if err != nil {
		respondRecipeError(c, err)
		return
	}

	log.Info("Recipe created", map[string]interface{}{
		"recipe_id": recipe.ID,
		"author_id": userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"recipe": recipe,
	})
}

// UpdateRecipe replaces a recipe's fields, ingredient lines and tags
// PATCH /api/v1/recipes/:id
func (ctrl *RecipeController) UpdateRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid recipe ID")
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid recipe payload", map[string]interface{}{
			"user_id":   userID,
			"recipe_id": id,
			"error":     err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid recipe data")
		return
	}

	recipe, err := ctrl.recipeService.UpdateRecipe(id, userID, req.toInput())
	if err != nil {
		respondRecipeError(c, err)
		return
	}

	log.Info("Recipe updated", map[string]interface{}{
		"recipe_id": id,
		"actor_id":  userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"recipe": recipe,
	})
}

// DeleteRecipe removes a recipe and everything hanging off it
// DELETE /api/v1/recipes/:id
func (ctrl *RecipeController) DeleteRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid recipe ID")
		return
	}

	if err := ctrl.recipeService.DeleteRecipe(id, userID); err != nil {
		respondRecipeError(c, err)
		return
	}

	log.Info("Recipe deleted", map[string]interface{}{
		"recipe_id": id,
		"actor_id":  userID,
	})

	c.Status(http.StatusNoContent)
}

func parseQueryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
