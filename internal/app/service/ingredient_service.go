package service

import (
	"errors"

	"github.com/jshin/cookshare-backend/internal/app/model"
	"github.com/jshin/cookshare-backend/internal/app/repository"
	"github.com/jshin/cookshare-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrIngredientMissing = errors.New("ingredient not found")

type IngredientService interface {
	ListIngredients(namePrefix string) ([]model.Ingredient, error)
	GetIngredient(id uint) (*model.Ingredient, error)
}

type ingredientService struct {
	ingredientRepo repository.IngredientRepository
}

func NewIngredientService(ingredientRepo repository.IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepo: ingredientRepo}
}

func (s *ingredientService) ListIngredients(namePrefix string) ([]model.Ingredient, error) {
	ingredients, err := s.ingredientRepo.FindAll(namePrefix)
	if err != nil {
		logger.Error("Failed to list ingredients", err, map[string]interface{}{
			"name_prefix": namePrefix,
		})
		return nil, err
	}
	return ingredients, nil
}

func (s *ingredientService) GetIngredient(id uint) (*model.Ingredient, error) {
	ingredient, err := s.ingredientRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientMissing
		}
		logger.Error("Failed to fetch ingredient", err, map[string]interface{}{
			"ingredient_id": id,
		})
		return nil, err
	}
	return ingredient, nil
}
