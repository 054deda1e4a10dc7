package service

import (
	"errors"

	"github.com/jshin/cookshare-backend/internal/app/model"
	"github.com/jshin/cookshare-backend/internal/app/repository"
	"github.com/jshin/cookshare-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrIngredientNotFound   = errors.New("ingredient does not exist")
	ErrTagNotFound          = errors.New("tag does not exist")
	ErrNotRecipeAuthor      = errors.New("only the author or an admin may modify this recipe")
	ErrImageRequired        = errors.New("recipe image is required")
	ErrInvalidCookingTime   = errors.New("cooking time must be at least 1 minute")
	ErrNoIngredients        = errors.New("recipe must have at least one ingredient")
	ErrNoTags               = errors.New("recipe must have at least one tag")
	ErrDuplicateTags        = errors.New("tags must not repeat")
	ErrDuplicateIngredients = errors.New("ingredients must not repeat")
	ErrInvalidAmount        = errors.New("ingredient amount must be between 1 and 100000")
)

const (
	minIngredientAmount = 1
	maxIngredientAmount = 100000
)

// IngredientLineInput is one (ingredient, amount) pair of a recipe write.
type IngredientLineInput struct {
	IngredientID uint
	Amount       int
}

// RecipeInput carries the full recipe aggregate for create and update.
// Updates always resend ingredients and tags in full; the previous sets are
// cleared and recreated, never merged.
type RecipeInput struct {
	Name        string
	Image       string
	Text        string
	CookingTime int
	TagIDs      []uint
	Ingredients []IngredientLineInput
}

type RecipeService interface {
	ListRecipes(filter repository.RecipeFilter) ([]model.Recipe, int64, error)
	GetRecipe(id uint, requesterID *uint) (*model.Recipe, error)
	CreateRecipe(authorID uint, input RecipeInput) (*model.Recipe, error)
	UpdateRecipe(recipeID, actorID uint, input RecipeInput) (*model.Recipe, error)
	DeleteRecipe(recipeID, actorID uint) error
}

type recipeService struct {
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	tagRepo        repository.TagRepository
	userRepo       repository.UserRepository
	db             *gorm.DB
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	tagRepo repository.TagRepository,
	userRepo repository.UserRepository,
	db *gorm.DB,
) RecipeService {
	return &recipeService{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		tagRepo:        tagRepo,
		userRepo:       userRepo,
		db:             db,
	}
}

// canModify resolves the actor from the store so the admin check covers
// both the admin role and the superuser flag, not just the token claim.
func (s *recipeService) canModify(recipe *model.Recipe, actorID uint) (bool, error) {
	if recipe.AuthorID == actorID {
		return true, nil
	}
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return actor.IsAdmin(), nil
}

func (s *recipeService) ListRecipes(filter repository.RecipeFilter) ([]model.Recipe, int64, error) {
	recipes, total, err := s.recipeRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list recipes", err, nil)
		return nil, 0, err
	}
	return recipes, total, nil
}

func (s *recipeService) GetRecipe(id uint, requesterID *uint) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(id, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		logger.Error("Failed to fetch recipe", err, map[string]interface{}{
			"recipe_id": id,
		})
		return nil, err
	}
	return recipe, nil
}

// validate applies the write rules in a fixed order so the same bad input
// always surfaces the same error: image, cooking time, empty ingredients,
// empty tags, duplicate tags, duplicate ingredients, amount range, then
// ingredient and tag existence. The first failing rule wins.
func (s *recipeService) validate(input RecipeInput) error {
	if input.Image == "" {
		return ErrImageRequired
	}
	if input.CookingTime < 1 {
		return ErrInvalidCookingTime
	}
	if len(input.Ingredients) == 0 {
		return ErrNoIngredients
	}
	if len(input.TagIDs) == 0 {
		return ErrNoTags
	}

	seenTags := make(map[uint]struct{}, len(input.TagIDs))
	for _, tagID := range input.TagIDs {
		if _, dup := seenTags[tagID]; dup {
			return ErrDuplicateTags
		}
		seenTags[tagID] = struct{}{}
	}

	seenIngredients := make(map[uint]struct{}, len(input.Ingredients))
	for _, line := range input.Ingredients {
		if _, dup := seenIngredients[line.IngredientID]; dup {
			return ErrDuplicateIngredients
		}
		seenIngredients[line.IngredientID] = struct{}{}
	}

	for _, line := range input.Ingredients {
		if line.Amount < minIngredientAmount || line.Amount > maxIngredientAmount {
			return ErrInvalidAmount
		}
	}

	ingredientIDs := make([]uint, len(input.Ingredients))
	for i, line := range input.Ingredients {
		ingredientIDs[i] = line.IngredientID
	}
	ingredients, err := s.ingredientRepo.FindByIDs(ingredientIDs)
	if err != nil {
		return err
	}
	if len(ingredients) != len(ingredientIDs) {
		return ErrIngredientNotFound
	}

	tags, err := s.tagRepo.FindByIDs(input.TagIDs)
	if err != nil {
		return err
	}
	if len(tags) != len(input.TagIDs) {
		return ErrTagNotFound
	}

	return nil
}

// createAssociations writes the full ingredient-line and tag sets for a
// recipe inside the caller's transaction.
func (s *recipeService) createAssociations(tx *gorm.DB, recipeID uint, input RecipeInput) error {
	lines := make([]model.RecipeIngredient, len(input.Ingredients))
	for i, line := range input.Ingredients {
		lines[i] = model.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		}
	}
	if err := tx.Create(&lines).Error; err != nil {
		return err
	}

	recipeTags := make([]model.RecipeTag, len(input.TagIDs))
	for i, tagID := range input.TagIDs {
		recipeTags[i] = model.RecipeTag{
			RecipeID: recipeID,
			TagID:    tagID,
		}
	}
	return tx.Create(&recipeTags).Error
}

func (s *recipeService) CreateRecipe(authorID uint, input RecipeInput) (*model.Recipe, error) {
	logger.Info("Creating recipe", map[string]interface{}{
		"author_id":   authorID,
		"name":        input.Name,
		"tags":        len(input.TagIDs),
		"ingredients": len(input.Ingredients),
	})

	if err := s.validate(input); err != nil {
		logger.Warn("Recipe create rejected by validation", map[string]interface{}{
			"author_id": authorID,
			"reason":    err.Error(),
		})
		return nil, err
	}

	recipe := model.Recipe{
		AuthorID:    authorID,
		Name:        input.Name,
		Image:       input.Image,
		Text:        input.Text,
		CookingTime: input.CookingTime,
	}

	// Recipe row, ingredient lines and tag links commit together or not at
	// all; a failure partway must leave no partial rows behind.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return s.createAssociations(tx, recipe.ID, input)
	})
	if err != nil {
		logger.Error("Failed to create recipe", err, map[string]interface{}{
			"author_id": authorID,
			"name":      input.Name,
		})
		return nil, err
	}

	logger.Info("Recipe created successfully", map[string]interface{}{
		"recipe_id": recipe.ID,
		"author_id": authorID,
	})

	// Re-read so the caller observes the same materialized shape the query
	// path serves, derived flags included.
	return s.GetRecipe(recipe.ID, &authorID)
}

func (s *recipeService) UpdateRecipe(recipeID, actorID uint, input RecipeInput) (*model.Recipe, error) {
	logger.Info("Updating recipe", map[string]interface{}{
		"recipe_id": recipeID,
		"actor_id":  actorID,
	})

	var recipe model.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	allowed, err := s.canModify(&recipe, actorID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		logger.Warn("Recipe update denied: actor is not the author", map[string]interface{}{
			"recipe_id": recipeID,
			"actor_id":  actorID,
			"author_id": recipe.AuthorID,
		})
		return nil, ErrNotRecipeAuthor
	}

	// Validation runs before any mutation: an invalid update must never
	// clear the existing line and tag sets.
	if err := s.validate(input); err != nil {
		logger.Warn("Recipe update rejected by validation", map[string]interface{}{
			"recipe_id": recipeID,
			"reason":    err.Error(),
		})
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// pub_date is set once at creation and never rewritten
		updates := map[string]interface{}{
			"name":         input.Name,
			"image":        input.Image,
			"text":         input.Text,
			"cooking_time": input.CookingTime,
		}
		if err := tx.Model(&model.Recipe{}).Where("id = ?", recipeID).Updates(updates).Error; err != nil {
			return err
		}

		// Full replace: clear both association sets, then recreate from input
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeTag{}).Error; err != nil {
			return err
		}
		return s.createAssociations(tx, recipeID, input)
	})
	if err != nil {
		logger.Error("Failed to update recipe", err, map[string]interface{}{
			"recipe_id": recipeID,
		})
		return nil, err
	}

	logger.Info("Recipe updated successfully", map[string]interface{}{
		"recipe_id": recipeID,
	})
	return s.GetRecipe(recipeID, &actorID)
}

func (s *recipeService) DeleteRecipe(recipeID, actorID uint) error {
	logger.Info("Deleting recipe", map[string]interface{}{
		"recipe_id": recipeID,
		"actor_id":  actorID,
	})

	var recipe model.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	allowed, err := s.canModify(&recipe, actorID)
	if err != nil {
		return err
	}
	if !allowed {
		logger.Warn("Recipe delete denied: actor is not the author", map[string]interface{}{
			"recipe_id": recipeID,
			"actor_id":  actorID,
			"author_id": recipe.AuthorID,
		})
		return ErrNotRecipeAuthor
	}

	// Cascade: ingredient lines, tag links and both mark kinds go with the
	// recipe in one transaction.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.ShoppingCartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
	if err != nil {
		logger.Error("Failed to delete recipe", err, map[string]interface{}{
			"recipe_id": recipeID,
		})
		return err
	}

	logger.Info("Recipe deleted successfully", map[string]interface{}{
		"recipe_id": recipeID,
	})
	return nil
}
