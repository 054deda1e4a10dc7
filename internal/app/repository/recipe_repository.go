package repository

import (
	"github.com/jshin/cookshare-backend/internal/app/model"
	"github.com/jshin/cookshare-backend/pkg/logger"
	"gorm.io/gorm"
)

// RecipeFilter narrows recipe listings. RequesterID is the authenticated
// requester (nil for anonymous); the mark-based filters only apply when it is
// set, mirroring the flag annotation rules.
type RecipeFilter struct {
	TagSlugs           []string
	AuthorID           *uint
	OnlyFavorited      bool
	OnlyInShoppingCart bool
	RequesterID        *uint
	Limit              int
	Offset             int
}

type RecipeRepository interface {
	FindWithFilter(filter RecipeFilter) ([]model.Recipe, int64, error)
	FindByID(id uint, requesterID *uint) (*model.Recipe, error)
	Exists(id uint) (bool, error)
	FindSummariesByAuthor(authorID uint, limit int) ([]model.RecipeSummary, error)
	CountByAuthor(authorID uint) (int64, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) filteredQuery(filter RecipeFilter) *gorm.DB {
	query := r.db.Model(&model.Recipe{})

	if len(filter.TagSlugs) > 0 {
		// OR semantics: at least one of the given tags. Subquery keeps the
		// outer query free of join-induced duplicates.
		tagged := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}

	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}

	if filter.RequesterID != nil {
		if filter.OnlyFavorited {
			favorited := r.db.Table("favorites").
				Select("favorites.recipe_id").
				Where("favorites.user_id = ?", *filter.RequesterID)
			query = query.Where("recipes.id IN (?)", favorited)
		}
		if filter.OnlyInShoppingCart {
			inCart := r.db.Table("shopping_cart_items").
				Select("shopping_cart_items.recipe_id").
				Where("shopping_cart_items.user_id = ?", *filter.RequesterID)
			query = query.Where("recipes.id IN (?)", inCart)
		}
	}

	return query
}

func (r *recipeRepository) FindWithFilter(filter RecipeFilter) ([]model.Recipe, int64, error) {
	logger.Debug("Finding recipes with filter", map[string]interface{}{
		"tag_slugs":    filter.TagSlugs,
		"author_id":    filter.AuthorID,
		"favorited":    filter.OnlyFavorited,
		"in_cart":      filter.OnlyInShoppingCart,
		"requester_id": filter.RequesterID,
		"limit":        filter.Limit,
		"offset":       filter.Offset,
	})

	var total int64
	if err := r.filteredQuery(filter).Count(&total).Error; err != nil {
		logger.Error("Failed to count recipes in database", err, nil)
		return nil, 0, err
	}

	// Newest first; id breaks pub_date ties so pagination stays deterministic.
	query := r.filteredQuery(filter).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.pub_date DESC").
		Order("recipes.id DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var recipes []model.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		logger.Error("Failed to find recipes in database", err, nil)
		return nil, 0, err
	}

	if err := r.annotate(recipes, filter.RequesterID); err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (r *recipeRepository) FindByID(id uint, requesterID *uint) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}

	recipes := []model.Recipe{recipe}
	if err := r.annotate(recipes, requesterID); err != nil {
		return nil, err
	}
	return &recipes[0], nil
}

func (r *recipeRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) FindSummariesByAuthor(authorID uint, limit int) ([]model.RecipeSummary, error) {
	query := r.db.Model(&model.Recipe{}).
		Select("id, name, image, cooking_time").
		Where("author_id = ?", authorID).
		Order("pub_date DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var summaries []model.RecipeSummary
	if err := query.Scan(&summaries).Error; err != nil {
		logger.Error("Failed to list recipe summaries from database", err, map[string]interface{}{
			"author_id": authorID,
		})
		return nil, err
	}
	return summaries, nil
}

func (r *recipeRepository) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// annotate fills the per-request derived fields: the requester's mark flags
// (batched into two queries, never one per recipe) and the flattened
// ingredient name/unit pairs.
func (r *recipeRepository) annotate(recipes []model.Recipe, requesterID *uint) error {
	for i := range recipes {
		for j := range recipes[i].Ingredients {
			line := &recipes[i].Ingredients[j]
			line.Name = line.Ingredient.Name
			line.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
	}

	if requesterID == nil || len(recipes) == 0 {
		return nil
	}

	ids := make([]uint, len(recipes))
	for i, recipe := range recipes {
		ids[i] = recipe.ID
	}

	favorited, err := r.markSet("favorites", *requesterID, ids)
	if err != nil {
		return err
	}
	inCart, err := r.markSet("shopping_cart_items", *requesterID, ids)
	if err != nil {
		return err
	}

	for i := range recipes {
		_, ok := favorited[recipes[i].ID]
		recipes[i].IsFavorited = ok
		_, ok = inCart[recipes[i].ID]
		recipes[i].IsInShoppingCart = ok
	}
	return nil
}

func (r *recipeRepository) markSet(table string, userID uint, recipeIDs []uint) (map[uint]struct{}, error) {
	var ids []uint
	err := r.db.Table(table).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		logger.Error("Failed to fetch mark set from database", err, map[string]interface{}{
			"table":   table,
			"user_id": userID,
		})
		return nil, err
	}

	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
