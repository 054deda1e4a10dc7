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

func setupRecipeServiceTest(t *testing.T) (RecipeService, *model.User, []model.Tag, []model.Ingredient, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	recipeRepo := repository.NewRecipeRepository(testDB)
	ingredientRepo := repository.NewIngredientRepository(testDB)
	tagRepo := repository.NewTagRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	recipeService := NewRecipeService(recipeRepo, ingredientRepo, tagRepo, userRepo, testDB)

	user := &model.User{
		Email:        "author@example.com",
		Username:     "author",
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "Author",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	tags := []model.Tag{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
	}
	testDB.Create(&tags)

	ingredients := []model.Ingredient{
		{Name: "Flour", MeasurementUnit: "g"},
		{Name: "Milk", MeasurementUnit: "ml"},
		{Name: "Egg", MeasurementUnit: "pcs"},
	}
	testDB.Create(&ingredients)

	return recipeService, user, tags, ingredients, testDB
}

func validRecipeInput(tags []model.Tag, ingredients []model.Ingredient) RecipeInput {
	return RecipeInput{
		Name:        "Pancakes",
		Image:       "https://cdn.example.com/recipes/pancakes.jpg",
		Text:        "Mix and fry.",
		CookingTime: 20,
		TagIDs:      []uint{tags[0].ID},
		Ingredients: []IngredientLineInput{
			{IngredientID: ingredients[0].ID, Amount: 200},
			{IngredientID: ingredients[1].ID, Amount: 300},
		},
	}
}

func TestRecipeService_CreateRecipe_Success(t *testing.T) {
	recipeService, user, tags, ingredients, _ := setupRecipeServiceTest(t)

	recipe, err := recipeService.CreateRecipe(user.ID, validRecipeInput(tags, ingredients))
	require.NoError(t, err)
	require.NotNil(t, recipe)

	assert.Equal(t, "Pancakes", recipe.Name)
	assert.Equal(t, user.ID, recipe.AuthorID)
	assert.Equal(t, user.Username, recipe.Author.Username)
	assert.False(t, recipe.PubDate.IsZero())

	require.Len(t, recipe.Tags, 1)
	assert.Equal(t, "breakfast", recipe.Tags[0].Slug)

	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, "Flour", recipe.Ingredients[0].Name)
	assert.Equal(t, "g", recipe.Ingredients[0].MeasurementUnit)
	assert.Equal(t, 200, recipe.Ingredients[0].Amount)
}

func TestRecipeService_CreateRecipe_ValidationOrder(t *testing.T) {
	recipeService, user, tags, ingredients, _ := setupRecipeServiceTest(t)

	// A payload violating several rules at once reports the first one in the
	// fixed order, so clients always see a deterministic error.
	input := validRecipeInput(tags, ingredients)
	input.Image = ""
	input.CookingTime = 0
	input.Ingredients = nil
	_, err := recipeService.CreateRecipe(user.ID, input)
	assert.ErrorIs(t, err, ErrImageRequired)

	input.Image = "img.jpg"
	_, err = recipeService.CreateRecipe(user.ID, input)
	assert.ErrorIs(t, err, ErrInvalidCookingTime)

	input.CookingTime = 10
	_, err = recipeService.CreateRecipe(user.ID, input)
	assert.ErrorIs(t, err, ErrNoIngredients)

	input.Ingredients = []IngredientLineInput{{IngredientID: ingredients[0].ID, Amount: 100}}
	input.TagIDs = nil
	_, err = recipeService.CreateRecipe(user.ID, input)
	assert.ErrorIs(t, err, ErrNoTags)

	input.TagIDs = []uint{tags[0].ID, tags[0].ID}
	_, err = recipeService.CreateRecipe(user.ID, input)
	assert.ErrorIs(t, err, ErrDuplicateTags)

	input.TagIDs = []uint{tags[0].ID}
	input.Ingredients = []IngredientLineInput{
		{IngredientID: ingredients[0].ID, Amount: 100},
		{IngredientID: ingredients[0].ID, Amount: 50},
	}
	_, err = recipeService.CreateRecipe(user.ID, input)
	assert.ErrorIs(t, err, ErrDuplicateIngredients)

	input.Ingredients = []IngredientLineInput{{IngredientID: ingredients[0].ID, Amount: 0}}
	_, err = recipeService.CreateRecipe(user.ID, input)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	input.Ingredients = []IngredientLineInput{{IngredientID: ingredients[0].ID, Amount: 100001}}
	_, err = recipeService.CreateRecipe(user.ID, input)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	input.Ingredients = []IngredientLineInput{{IngredientID: 9999, Amount: 100}}
	_, err = recipeService.CreateRecipe(user.ID, input)
	assert.ErrorIs(t, err, ErrIngredientNotFound)

	input.Ingredients = []IngredientLineInput{{IngredientID: ingredients[0].ID, Amount: 100}}
	input.TagIDs = []uint{9999}
	_, err = recipeService.CreateRecipe(user.ID, input)
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestRecipeService_CreateRecipe_InvalidInputPersistsNothing(t *testing.T) {
	recipeService, user, tags, ingredients, testDB := setupRecipeServiceTest(t)

	input := validRecipeInput(tags, ingredients)
	input.Ingredients = append(input.Ingredients, IngredientLineInput{IngredientID: 9999, Amount: 10})

	_, err := recipeService.CreateRecipe(user.ID, input)
	require.ErrorIs(t, err, ErrIngredientNotFound)

	var recipeCount, lineCount, tagCount int64
	testDB.Model(&model.Recipe{}).Count(&recipeCount)
	testDB.Model(&model.RecipeIngredient{}).Count(&lineCount)
	testDB.Model(&model.RecipeTag{}).Count(&tagCount)
	assert.Zero(t, recipeCount)
	assert.Zero(t, lineCount)
	assert.Zero(t, tagCount)
}

func TestRecipeService_UpdateRecipe_ReplacesAssociations(t *testing.T) {
	recipeService, user, tags, ingredients, testDB := setupRecipeServiceTest(t)

	created, err := recipeService.CreateRecipe(user.ID, validRecipeInput(tags, ingredients))
	require.NoError(t, err)

	update := RecipeInput{
		Name:        "Crepes",
		Image:       "https://cdn.example.com/recipes/crepes.jpg",
		Text:        "Thinner pancakes.",
		CookingTime: 30,
		TagIDs:      []uint{tags[1].ID},
		Ingredients: []IngredientLineInput{
			{IngredientID: ingredients[2].ID, Amount: 3},
		},
	}

	updated, err := recipeService.UpdateRecipe(created.ID, user.ID, update)
	require.NoError(t, err)

	assert.Equal(t, "Crepes", updated.Name)
	assert.Equal(t, 30, updated.CookingTime)

	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "dinner", updated.Tags[0].Slug)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "Egg", updated.Ingredients[0].Name)
	assert.Equal(t, 3, updated.Ingredients[0].Amount)

	// Old line and tag rows are gone, not orphaned
	var lineCount, tagCount int64
	testDB.Model(&model.RecipeIngredient{}).Where("recipe_id = ?", created.ID).Count(&lineCount)
	testDB.Model(&model.RecipeTag{}).Where("recipe_id = ?", created.ID).Count(&tagCount)
	assert.Equal(t, int64(1), lineCount)
	assert.Equal(t, int64(1), tagCount)
}

func TestRecipeService_UpdateRecipe_PubDateImmutable(t *testing.T) {
	recipeService, user, tags, ingredients, _ := setupRecipeServiceTest(t)

	created, err := recipeService.CreateRecipe(user.ID, validRecipeInput(tags, ingredients))
	require.NoError(t, err)

	updated, err := recipeService.UpdateRecipe(created.ID, user.ID, validRecipeInput(tags, ingredients))
	require.NoError(t, err)

	assert.Equal(t, created.PubDate.UTC(), updated.PubDate.UTC())
}

func TestRecipeService_UpdateRecipe_InvalidInputKeepsOldState(t *testing.T) {
	recipeService, user, tags, ingredients, _ := setupRecipeServiceTest(t)

	created, err := recipeService.CreateRecipe(user.ID, validRecipeInput(tags, ingredients))
	require.NoError(t, err)

	bad := validRecipeInput(tags, ingredients)
	bad.Ingredients = []IngredientLineInput{{IngredientID: 9999, Amount: 10}}

	_, err = recipeService.UpdateRecipe(created.ID, user.ID, bad)
	require.ErrorIs(t, err, ErrIngredientNotFound)

	// Rejected update must not have cleared the existing associations
	current, err := recipeService.GetRecipe(created.ID, nil)
	require.NoError(t, err)
	assert.Len(t, current.Ingredients, 2)
	assert.Len(t, current.Tags, 1)
	assert.Equal(t, "Pancakes", current.Name)
}

func TestRecipeService_UpdateRecipe_NotAuthor(t *testing.T) {
	recipeService, user, tags, ingredients, testDB := setupRecipeServiceTest(t)

	created, err := recipeService.CreateRecipe(user.ID, validRecipeInput(tags, ingredients))
	require.NoError(t, err)

	other := &model.User{
		Email:        "other@example.com",
		Username:     "other",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	_, err = recipeService.UpdateRecipe(created.ID, other.ID, validRecipeInput(tags, ingredients))
	assert.ErrorIs(t, err, ErrNotRecipeAuthor)

	// An admin may edit someone else's recipe
	admin := &model.User{
		Email:        "admin@example.com",
		Username:     "admin",
		PasswordHash: "hash",
		Role:         model.RoleAdmin,
	}
	testDB.Create(admin)

	_, err = recipeService.UpdateRecipe(created.ID, admin.ID, validRecipeInput(tags, ingredients))
	assert.NoError(t, err)
}

func TestRecipeService_UpdateRecipe_Superuser(t *testing.T) {
	recipeService, user, tags, ingredients, testDB := setupRecipeServiceTest(t)

	created, err := recipeService.CreateRecipe(user.ID, validRecipeInput(tags, ingredients))
	require.NoError(t, err)

	// The superuser flag grants admin powers even with a plain user role
	super := &model.User{
		Email:        "super@example.com",
		Username:     "super",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		IsSuperuser:  true,
	}
	testDB.Create(super)
	require.True(t, super.IsAdmin())

	update := validRecipeInput(tags, ingredients)
	update.Name = "Superuser edit"
	updated, err := recipeService.UpdateRecipe(created.ID, super.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Superuser edit", updated.Name)

	err = recipeService.DeleteRecipe(created.ID, super.ID)
	assert.NoError(t, err)
}

func TestRecipeService_UpdateRecipe_NotFound(t *testing.T) {
	recipeService, user, tags, ingredients, _ := setupRecipeServiceTest(t)

	_, err := recipeService.UpdateRecipe(9999, user.ID, validRecipeInput(tags, ingredients))
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestRecipeService_DeleteRecipe_CascadesMarksAndLines(t *testing.T) {
	recipeService, user, tags, ingredients, testDB := setupRecipeServiceTest(t)

	created, err := recipeService.CreateRecipe(user.ID, validRecipeInput(tags, ingredients))
	require.NoError(t, err)

	testDB.Create(&model.Favorite{UserID: user.ID, RecipeID: created.ID})
	testDB.Create(&model.ShoppingCartItem{UserID: user.ID, RecipeID: created.ID})

	err = recipeService.DeleteRecipe(created.ID, user.ID)
	require.NoError(t, err)

	_, err = recipeService.GetRecipe(created.ID, nil)
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	var lineCount, tagCount, favCount, cartCount int64
	testDB.Model(&model.RecipeIngredient{}).Where("recipe_id = ?", created.ID).Count(&lineCount)
	testDB.Model(&model.RecipeTag{}).Where("recipe_id = ?", created.ID).Count(&tagCount)
	testDB.Model(&model.Favorite{}).Where("recipe_id = ?", created.ID).Count(&favCount)
	testDB.Model(&model.ShoppingCartItem{}).Where("recipe_id = ?", created.ID).Count(&cartCount)
	assert.Zero(t, lineCount)
	assert.Zero(t, tagCount)
	assert.Zero(t, favCount)
	assert.Zero(t, cartCount)
}

func TestRecipeService_DeleteRecipe_NotAuthor(t *testing.T) {
	recipeService, user, tags, ingredients, testDB := setupRecipeServiceTest(t)

	created, err := recipeService.CreateRecipe(user.ID, validRecipeInput(tags, ingredients))
	require.NoError(t, err)

	other := &model.User{
		Email:        "other@example.com",
		Username:     "other",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	err = recipeService.DeleteRecipe(created.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotRecipeAuthor)
}

func TestRecipeService_ListRecipes_FiltersAndOrder(t *testing.T) {
	recipeService, user, tags, ingredients, _ := setupRecipeServiceTest(t)

	first := validRecipeInput(tags, ingredients)
	first.Name = "First"

	second := validRecipeInput(tags, ingredients)
	second.Name = "Second"
	second.TagIDs = []uint{tags[1].ID}

	_, err := recipeService.CreateRecipe(user.ID, first)
	require.NoError(t, err)
	createdSecond, err := recipeService.CreateRecipe(user.ID, second)
	require.NoError(t, err)

	// Newest first; same pub_date falls back to highest id first
	recipes, total, err := recipeService.ListRecipes(repository.RecipeFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, recipes, 2)
	assert.Equal(t, createdSecond.ID, recipes[0].ID)

	// Tag filter
	recipes, total, err = recipeService.ListRecipes(repository.RecipeFilter{
		TagSlugs: []string{"dinner"},
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Second", recipes[0].Name)

	// Author filter
	recipes, _, err = recipeService.ListRecipes(repository.RecipeFilter{
		AuthorID: &user.ID,
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Len(t, recipes, 2)

	// Anonymous requester always sees the flags as false
	for _, recipe := range recipes {
		assert.False(t, recipe.IsFavorited)
		assert.False(t, recipe.IsInShoppingCart)
	}
}

func TestRecipeService_ListRecipes_MarkFilters(t *testing.T) {
	recipeService, user, tags, ingredients, testDB := setupRecipeServiceTest(t)

	first := validRecipeInput(tags, ingredients)
	first.Name = "Favorited"
	second := validRecipeInput(tags, ingredients)
	second.Name = "Plain"

	createdFirst, err := recipeService.CreateRecipe(user.ID, first)
	require.NoError(t, err)
	_, err = recipeService.CreateRecipe(user.ID, second)
	require.NoError(t, err)

	testDB.Create(&model.Favorite{UserID: user.ID, RecipeID: createdFirst.ID})

	recipes, total, err := recipeService.ListRecipes(repository.RecipeFilter{
		RequesterID:   &user.ID,
		OnlyFavorited: true,
		Limit:         10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Favorited", recipes[0].Name)
	assert.True(t, recipes[0].IsFavorited)
	assert.False(t, recipes[0].IsInShoppingCart)
}
