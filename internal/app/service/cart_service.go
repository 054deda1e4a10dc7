package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jshin/cookshare-backend/internal/app/model"
	"github.com/jshin/cookshare-backend/internal/app/repository"
	"github.com/jshin/cookshare-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAlreadyInCart = errors.New("recipe is already in the shopping cart")
	ErrNotInCart     = errors.New("recipe is not in the shopping cart")
)

type CartService interface {
	AddToCart(userID, recipeID uint) (*model.RecipeSummary, error)
	RemoveFromCart(userID, recipeID uint) error
	BuildShoppingList(userID uint) ([]model.ShoppingListEntry, error)
	RenderShoppingList(entries []model.ShoppingListEntry) string
}

type cartService struct {
	cartRepo   repository.CartRepository
	recipeRepo repository.RecipeRepository
}

func NewCartService(cartRepo repository.CartRepository, recipeRepo repository.RecipeRepository) CartService {
	return &cartService{
		cartRepo:   cartRepo,
		recipeRepo: recipeRepo,
	}
}

func (s *cartService) AddToCart(userID, recipeID uint) (*model.RecipeSummary, error) {
	recipe, err := s.recipeRepo.FindByID(recipeID, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	exists, err := s.cartRepo.Exists(userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInCart
	}

	if err := s.cartRepo.Create(&model.ShoppingCartItem{
		UserID:   userID,
		RecipeID: recipeID,
	}); err != nil {
		logger.Error("Failed to add recipe to shopping cart", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return nil, err
	}

	logger.Info("Recipe added to shopping cart", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})

	summary := recipe.Summary()
	return &summary, nil
}

func (s *cartService) RemoveFromCart(userID, recipeID uint) error {
	exists, err := s.recipeRepo.Exists(recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRecipeNotFound
	}

	removed, err := s.cartRepo.Delete(userID, recipeID)
	if err != nil {
		logger.Error("Failed to remove recipe from shopping cart", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return err
	}
	if !removed {
		return ErrNotInCart
	}

	logger.Info("Recipe removed from shopping cart", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})
	return nil
}

// BuildShoppingList aggregates the ingredient lines of every recipe in the
// user's cart. Lines sharing (name, measurement unit) collapse into one entry
// with the amounts summed; the same name under different units stays separate.
func (s *cartService) BuildShoppingList(userID uint) ([]model.ShoppingListEntry, error) {
	entries, err := s.cartRepo.AggregateIngredients(userID)
	if err != nil {
		logger.Error("Failed to aggregate shopping list", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return entries, nil
}

// RenderShoppingList formats the aggregated entries as the downloadable
// plain-text report, one "{name} - {amount} {unit}" line per entry.
func (s *cartService) RenderShoppingList(entries []model.ShoppingListEntry) string {
	var b strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&b, "%s - %d %s\n", entry.Name, entry.TotalAmount, entry.MeasurementUnit)
	}
	return b.String()
}
