package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/jshin/cookshare-backend/internal/app/model"
	"github.com/jshin/cookshare-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRecipeRepositoryTest(t *testing.T) (RecipeRepository, *model.User, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := &model.User{
		Email:        "author@example.com",
		Username:     "author",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)

	return NewRecipeRepository(testDB), user, testDB
}

// seedRecipes inserts recipes with explicit pub dates so ordering assertions
// do not depend on insert timing.
func seedRecipes(t *testing.T, testDB *gorm.DB, authorID uint, count int) []model.Recipe {
	t.Helper()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	recipes := make([]model.Recipe, count)
	for i := 0; i < count; i++ {
		recipes[i] = model.Recipe{
			AuthorID:    authorID,
			Name:        fmt.Sprintf("Recipe %d", i+1),
			Image:       "https://cdn.example.com/recipes/r.jpg",
			Text:        "Cook.",
			CookingTime: 10 + i,
			PubDate:     base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, testDB.Create(&recipes[i]).Error)
	}
	return recipes
}

func TestRecipeRepository_FindWithFilter_OrderAndPagination(t *testing.T) {
	repo, user, testDB := setupRecipeRepositoryTest(t)

	seeded := seedRecipes(t, testDB, user.ID, 5)

	page1, total, err := repo.FindWithFilter(RecipeFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)
	assert.Equal(t, seeded[4].ID, page1[0].ID)
	assert.Equal(t, seeded[3].ID, page1[1].ID)

	page2, _, err := repo.FindWithFilter(RecipeFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, seeded[2].ID, page2[0].ID)
	assert.Equal(t, seeded[1].ID, page2[1].ID)
}

func TestRecipeRepository_FindWithFilter_TagFilterNoDuplicates(t *testing.T) {
	repo, user, testDB := setupRecipeRepositoryTest(t)

	breakfast := model.Tag{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}
	lunch := model.Tag{Name: "Lunch", Color: "#49B64E", Slug: "lunch"}
	require.NoError(t, testDB.Create(&breakfast).Error)
	require.NoError(t, testDB.Create(&lunch).Error)

	seeded := seedRecipes(t, testDB, user.ID, 2)

	// First recipe carries both tags; filtering on both slugs must still
	// return it once.
	require.NoError(t, testDB.Create(&model.RecipeTag{RecipeID: seeded[0].ID, TagID: breakfast.ID}).Error)
	require.NoError(t, testDB.Create(&model.RecipeTag{RecipeID: seeded[0].ID, TagID: lunch.ID}).Error)

	recipes, total, err := repo.FindWithFilter(RecipeFilter{
		TagSlugs: []string{"breakfast", "lunch"},
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, recipes, 1)
	assert.Equal(t, seeded[0].ID, recipes[0].ID)
	assert.Len(t, recipes[0].Tags, 2)
}

func TestRecipeRepository_FindByID_AnnotatesFlagsAndLines(t *testing.T) {
	repo, user, testDB := setupRecipeRepositoryTest(t)

	flour := model.Ingredient{Name: "Flour", MeasurementUnit: "g"}
	require.NoError(t, testDB.Create(&flour).Error)

	seeded := seedRecipes(t, testDB, user.ID, 1)
	require.NoError(t, testDB.Create(&model.RecipeIngredient{
		RecipeID:     seeded[0].ID,
		IngredientID: flour.ID,
		Amount:       250,
	}).Error)
	require.NoError(t, testDB.Create(&model.Favorite{UserID: user.ID, RecipeID: seeded[0].ID}).Error)

	// Anonymous requester: flags false
	recipe, err := repo.FindByID(seeded[0].ID, nil)
	require.NoError(t, err)
	assert.False(t, recipe.IsFavorited)
	assert.False(t, recipe.IsInShoppingCart)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "Flour", recipe.Ingredients[0].Name)
	assert.Equal(t, "g", recipe.Ingredients[0].MeasurementUnit)
	assert.Equal(t, 250, recipe.Ingredients[0].Amount)

	// Authenticated requester with a favorite mark
	recipe, err = repo.FindByID(seeded[0].ID, &user.ID)
	require.NoError(t, err)
	assert.True(t, recipe.IsFavorited)
	assert.False(t, recipe.IsInShoppingCart)

	_, err = repo.FindByID(9999, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRecipeRepository_FindSummariesByAuthor(t *testing.T) {
	repo, user, testDB := setupRecipeRepositoryTest(t)

	seeded := seedRecipes(t, testDB, user.ID, 4)

	summaries, err := repo.FindSummariesByAuthor(user.ID, 2)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, seeded[3].ID, summaries[0].ID)
	assert.Equal(t, seeded[3].Name, summaries[0].Name)

	all, err := repo.FindSummariesByAuthor(user.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	count, err := repo.CountByAuthor(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestRecipeRepository_Exists(t *testing.T) {
	repo, user, testDB := setupRecipeRepositoryTest(t)

	seeded := seedRecipes(t, testDB, user.ID, 1)

	exists, err := repo.Exists(seeded[0].ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(9999)
	require.NoError(t, err)
	assert.False(t, exists)
}
