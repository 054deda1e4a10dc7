package repository

import (
	"github.com/jshin/cookshare-backend/internal/app/model"
	"github.com/jshin/cookshare-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(item *model.ShoppingCartItem) error
	Exists(userID, recipeID uint) (bool, error)
	Delete(userID, recipeID uint) (bool, error)
	AggregateIngredients(userID uint) ([]model.ShoppingListEntry, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(item *model.ShoppingCartItem) error {
	logger.Debug("Creating shopping cart mark in database", map[string]interface{}{
		"user_id":   item.UserID,
		"recipe_id": item.RecipeID,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create shopping cart mark in database", err, map[string]interface{}{
			"user_id":   item.UserID,
			"recipe_id": item.RecipeID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) Exists(userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.ShoppingCartItem{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the mark and reports whether it existed.
func (r *cartRepository) Delete(userID, recipeID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.ShoppingCartItem{})
	if result.Error != nil {
		logger.Error("Failed to delete shopping cart mark from database", result.Error, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AggregateIngredients collects every ingredient line of the user's cart
// recipes, groups by (name, measurement unit) and sums amounts. Ordered by
// total ascending; name and unit break ties so the report is byte-stable.
func (r *cartRepository) AggregateIngredients(userID uint) ([]model.ShoppingListEntry, error) {
	logger.Debug("Aggregating shopping list ingredients", map[string]interface{}{
		"user_id": userID,
	})

	var entries []model.ShoppingListEntry
	err := r.db.Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart_items ON shopping_cart_items.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart_items.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("total_amount ASC, name ASC, measurement_unit ASC").
		Scan(&entries).Error
	if err != nil {
		logger.Error("Failed to aggregate shopping list ingredients", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return entries, nil
}
