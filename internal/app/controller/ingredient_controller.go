package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jshin/cookshare-backend/internal/app/service"
	apperrors "github.com/jshin/cookshare-backend/internal/errors"
	"github.com/jshin/cookshare-backend/internal/middleware"
)

type IngredientController struct {
	ingredientService service.IngredientService
}

func NewIngredientController(ingredientService service.IngredientService) *IngredientController {
	return &IngredientController{
		ingredientService: ingredientService,
	}
}

// ListIngredients returns ingredients, optionally filtered by name prefix
// GET /api/v1/ingredients?name=flo
func (ctrl *IngredientController) ListIngredients(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	namePrefix := c.Query("name")

	ingredients, err := ctrl.ingredientService.ListIngredients(namePrefix)
	if err != nil {
		log.Error("Failed to list ingredients", err, map[string]interface{}{
			"name_prefix": namePrefix,
		})
		apperrors.InternalError(c, "Failed to fetch ingredients")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ingredients": ingredients,
	})
}

// GetIngredient returns a single ingredient
// GET /api/v1/ingredients/:id
func (ctrl *IngredientController) GetIngredient(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ingredient ID")
		return
	}

	ingredient, err := ctrl.ingredientService.GetIngredient(id)
	if err != nil {
		if errors.Is(err, service.ErrIngredientMissing) {
			apperrors.NotFound(c, apperrors.IngredientNotFound, "Ingredient not found")
			return
		}
		log.Error("Failed to fetch ingredient", err, map[string]interface{}{
			"ingredient_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch ingredient")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ingredient": ingredient,
	})
}
