package service

import (
	"testing"

	"github.com/jshin/cookshare-backend/internal/app/model"
	"github.com/jshin/cookshare-backend/internal/app/repository"
	"github.com/jshin/cookshare-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupFavoriteServiceTest(t *testing.T) (FavoriteService, *model.User, *model.Recipe, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	favoriteRepo := repository.NewFavoriteRepository(testDB)
	recipeRepo := repository.NewRecipeRepository(testDB)
	favoriteService := NewFavoriteService(favoriteRepo, recipeRepo)

	user := &model.User{
		Email:        "reader@example.com",
		Username:     "reader",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	recipe := &model.Recipe{
		AuthorID:    user.ID,
		Name:        "Borscht",
		Image:       "https://cdn.example.com/recipes/borscht.jpg",
		Text:        "Simmer.",
		CookingTime: 90,
	}
	testDB.Create(recipe)

	return favoriteService, user, recipe, testDB
}

func TestFavoriteService_AddFavorite_Success(t *testing.T) {
	favoriteService, user, recipe, _ := setupFavoriteServiceTest(t)

	summary, err := favoriteService.AddFavorite(user.ID, recipe.ID)
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, recipe.ID, summary.ID)
	assert.Equal(t, "Borscht", summary.Name)
	assert.Equal(t, recipe.Image, summary.Image)
	assert.Equal(t, 90, summary.CookingTime)
}

func TestFavoriteService_AddFavorite_RecipeNotFound(t *testing.T) {
	favoriteService, user, _, _ := setupFavoriteServiceTest(t)

	_, err := favoriteService.AddFavorite(user.ID, 9999)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestFavoriteService_AddFavorite_Duplicate(t *testing.T) {
	favoriteService, user, recipe, _ := setupFavoriteServiceTest(t)

	_, err := favoriteService.AddFavorite(user.ID, recipe.ID)
	require.NoError(t, err)

	_, err = favoriteService.AddFavorite(user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrAlreadyFavorited)
}

func TestFavoriteService_RemoveFavorite_Success(t *testing.T) {
	favoriteService, user, recipe, testDB := setupFavoriteServiceTest(t)

	_, err := favoriteService.AddFavorite(user.ID, recipe.ID)
	require.NoError(t, err)

	err = favoriteService.RemoveFavorite(user.ID, recipe.ID)
	assert.NoError(t, err)

	var count int64
	testDB.Model(&model.Favorite{}).Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).Count(&count)
	assert.Zero(t, count)

	// Removing again reports the mark as missing
	err = favoriteService.RemoveFavorite(user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrNotFavorited)
}

func TestFavoriteService_RemoveFavorite_RecipeNotFound(t *testing.T) {
	favoriteService, user, _, _ := setupFavoriteServiceTest(t)

	err := favoriteService.RemoveFavorite(user.ID, 9999)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}
