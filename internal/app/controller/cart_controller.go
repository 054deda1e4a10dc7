package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jshin/cookshare-backend/internal/app/service"
	apperrors "github.com/jshin/cookshare-backend/internal/errors"
	"github.com/jshin/cookshare-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

// AddToCart puts a recipe in the current user's shopping cart
// POST /api/v1/recipes/:id/shopping_cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
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

	summary, err := ctrl.cartService.AddToCart(userID, recipeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
		case errors.Is(err, service.ErrAlreadyInCart):
			apperrors.Conflict(c, apperrors.CartAlreadyExists, "Recipe is already in the shopping cart")
		default:
			log.Error("Failed to add recipe to cart", err, map[string]interface{}{
				"user_id":   userID,
				"recipe_id": recipeID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add to cart")
		}
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// RemoveFromCart takes a recipe out of the shopping cart
// DELETE /api/v1/recipes/:id/shopping_cart
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
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

	err := ctrl.cartService.RemoveFromCart(userID, recipeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
		case errors.Is(err, service.ErrNotInCart):
			apperrors.Conflict(c, apperrors.CartNotFound, "Recipe is not in the shopping cart")
		default:
			log.Error("Failed to remove recipe from cart", err, map[string]interface{}{
				"user_id":   userID,
				"recipe_id": recipeID,
			})
			apperrors.InternalError(c, "Failed to remove recipe from cart")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetShoppingList returns the aggregated ingredient list as JSON
// GET /api/v1/recipes/shopping_cart
func (ctrl *CartController) GetShoppingList(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	entries, err := ctrl.cartService.BuildShoppingList(userID)
	if err != nil {
		log.Error("Failed to build shopping list", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to build shopping list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shopping_list": entries,
	})
}

// DownloadShoppingList serves the aggregated list as a plain-text attachment
// GET /api/v1/recipes/download_shopping_cart
func (ctrl *CartController) DownloadShoppingList(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	entries, err := ctrl.cartService.BuildShoppingList(userID)
	if err != nil {
		log.Error("Failed to build shopping list for download", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to build shopping list")
		return
	}

	body := ctrl.cartService.RenderShoppingList(entries)

	log.Info("Shopping list downloaded", map[string]interface{}{
		"user_id": userID,
		"entries": len(entries),
	})

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}
