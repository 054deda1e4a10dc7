package repository

import (
	"fmt"

	"github.com/jshin/cookshare-backend/internal/app/model"
	"github.com/jshin/cookshare-backend/pkg/logger"
	"gorm.io/gorm"
)

type IngredientRepository interface {
	Create(ingredient *model.Ingredient) error
	BulkCreate(ingredients []model.Ingredient, batchSize int) error
	FindAll(namePrefix string) ([]model.Ingredient, error)
	FindByID(id uint) (*model.Ingredient, error)
	FindByIDs(ids []uint) ([]model.Ingredient, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Create(ingredient *model.Ingredient) error {
	if err := r.db.Create(ingredient).Error; err != nil {
		logger.Error("Failed to create ingredient in database", err, map[string]interface{}{
			"name": ingredient.Name,
			"unit": ingredient.MeasurementUnit,
		})
		return err
	}
	return nil
}

func (r *ingredientRepository) BulkCreate(ingredients []model.Ingredient, batchSize int) error {
	logger.Debug("Bulk creating ingredients", map[string]interface{}{
		"count":      len(ingredients),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(ingredients, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create ingredients", err, map[string]interface{}{
			"count": len(ingredients),
		})
		return err
	}
	return nil
}

// FindAll lists ingredients, optionally narrowed by a case-insensitive name
// prefix. The catalog is small enough to serve unpaginated.
func (r *ingredientRepository) FindAll(namePrefix string) ([]model.Ingredient, error) {
	query := r.db.Order("name ASC, id ASC")
	if namePrefix != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", fmt.Sprintf("%s%%", namePrefix))
	}

	var ingredients []model.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		logger.Error("Failed to list ingredients from database", err, map[string]interface{}{
			"name_prefix": namePrefix,
		})
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) FindByID(id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) FindByIDs(ids []uint) ([]model.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var ingredients []model.Ingredient
	if err := r.db.Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}
