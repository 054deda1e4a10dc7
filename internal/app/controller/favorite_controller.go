package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jshin/cookshare-backend/internal/app/service"
	apperrors "github.com/jshin/cookshare-backend/internal/errors"
	"github.com/jshin/cookshare-backend/internal/middleware"
)

type FavoriteController struct {
	favoriteService service.FavoriteService
}

func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{
		favoriteService: favoriteService,
	}
}

// AddFavorite marks a recipe as favorited by the current user
// POST /api/v1/recipes/:id/favorite
func (ctrl *FavoriteController) AddFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid recipe ID")
		return
	}

	summary, err := ctrl.favoriteService.AddFavorite(userID, recipeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
		case errors.Is(err, service.ErrAlreadyFavorited):
			apperrors.Conflict(c, apperrors.FavoriteAlreadyExists, "Recipe is already in favorites")
		default:
			log.Error("Failed to add favorite", err, map[string]interface{}{
				"user_id":   userID,
				"recipe_id": recipeID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add favorite")
		}
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// RemoveFavorite unmarks a favorited recipe
// DELETE /api/v1/recipes/:id/favorite
func (ctrl *FavoriteController) RemoveFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid recipe ID")
		return
	}

	err := ctrl.favoriteService.RemoveFavorite(userID, recipeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
		case errors.Is(err, service.ErrNotFavorited):
			apperrors.Conflict(c, apperrors.FavoriteNotFound, "Recipe is not in favorites")
		default:
			log.Error("Failed to remove favorite", err, map[string]interface{}{
				"user_id":   userID,
				"recipe_id": recipeID,
			})
			apperrors.InternalError(c, "Failed to remove favorite")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
