package service

import (
	"errors"

	"github.com/jshin/cookshare-backend/internal/app/model"
	"github.com/jshin/cookshare-backend/internal/app/repository"
	"github.com/jshin/cookshare-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAlreadyFavorited = errors.New("recipe is already in favorites")
	ErrNotFavorited     = errors.New("recipe is not in favorites")
)

type FavoriteService interface {
	AddFavorite(userID, recipeID uint) (*model.RecipeSummary, error)
	RemoveFavorite(userID, recipeID uint) error
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	recipeRepo   repository.RecipeRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, recipeRepo repository.RecipeRepository) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		recipeRepo:   recipeRepo,
	}
}

func (s *favoriteService) AddFavorite(userID, recipeID uint) (*model.RecipeSummary, error) {
	recipe, err := s.recipeRepo.FindByID(recipeID, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	exists, err := s.favoriteRepo.Exists(userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorited
	}

	if err := s.favoriteRepo.Create(&model.Favorite{
		UserID:   userID,
		RecipeID: recipeID,
	}); err != nil {
		logger.Error("Failed to add favorite", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return nil, err
	}

	logger.Info("Recipe added to favorites", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})

	summary := recipe.Summary()
	return &summary, nil
}

func (s *favoriteService) RemoveFavorite(userID, recipeID uint) error {
	exists, err := s.recipeRepo.Exists(recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRecipeNotFound
	}

	removed, err := s.favoriteRepo.Delete(userID, recipeID)
	if err != nil {
		logger.Error("Failed to remove favorite", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return err
	}
	if !removed {
		return ErrNotFavorited
	}

	logger.Info("Recipe removed from favorites", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})
	return nil
}
