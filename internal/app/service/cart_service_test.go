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

func setupCartServiceTest(t *testing.T) (CartService, *model.User, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	recipeRepo := repository.NewRecipeRepository(testDB)
	cartService := NewCartService(cartRepo, recipeRepo)

	user := &model.User{
		Email:        "cook@example.com",
		Username:     "cook",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	return cartService, user, testDB
}

// createRecipeWithLines inserts a recipe plus its ingredient lines directly,
// bypassing the service layer this test is not about.
func createRecipeWithLines(t *testing.T, testDB *gorm.DB, authorID uint, name string, lines map[uint]int) *model.Recipe {
	t.Helper()

	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        name,
		Image:       "https://cdn.example.com/recipes/" + name + ".jpg",
		Text:        "Cook it.",
		CookingTime: 30,
	}
	require.NoError(t, testDB.Create(recipe).Error)

	for ingredientID, amount := range lines {
		require.NoError(t, testDB.Create(&model.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: ingredientID,
			Amount:       amount,
		}).Error)
	}
	return recipe
}

func TestCartService_AddToCart_Success(t *testing.T) {
	cartService, user, testDB := setupCartServiceTest(t)

	recipe := createRecipeWithLines(t, testDB, user.ID, "Soup", nil)

	summary, err := cartService.AddToCart(user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, summary.ID)
	assert.Equal(t, "Soup", summary.Name)
}

func TestCartService_AddToCart_RecipeNotFound(t *testing.T) {
	cartService, user, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, 9999)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestCartService_AddToCart_Duplicate(t *testing.T) {
	cartService, user, testDB := setupCartServiceTest(t)

	recipe := createRecipeWithLines(t, testDB, user.ID, "Soup", nil)

	_, err := cartService.AddToCart(user.ID, recipe.ID)
	require.NoError(t, err)

	_, err = cartService.AddToCart(user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrAlreadyInCart)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	cartService, user, testDB := setupCartServiceTest(t)

	recipe := createRecipeWithLines(t, testDB, user.ID, "Soup", nil)

	_, err := cartService.AddToCart(user.ID, recipe.ID)
	require.NoError(t, err)

	err = cartService.RemoveFromCart(user.ID, recipe.ID)
	assert.NoError(t, err)

	err = cartService.RemoveFromCart(user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrNotInCart)

	err = cartService.RemoveFromCart(user.ID, 9999)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestCartService_BuildShoppingList_AggregatesByNameAndUnit(t *testing.T) {
	cartService, user, testDB := setupCartServiceTest(t)

	flour := model.Ingredient{Name: "Flour", MeasurementUnit: "g"}
	milk := model.Ingredient{Name: "Milk", MeasurementUnit: "ml"}
	sugarG := model.Ingredient{Name: "Sugar", MeasurementUnit: "g"}
	sugarTbsp := model.Ingredient{Name: "Sugar", MeasurementUnit: "tbsp"}
	require.NoError(t, testDB.Create(&flour).Error)
	require.NoError(t, testDB.Create(&milk).Error)
	require.NoError(t, testDB.Create(&sugarG).Error)
	require.NoError(t, testDB.Create(&sugarTbsp).Error)

	pancakes := createRecipeWithLines(t, testDB, user.ID, "Pancakes", map[uint]int{
		flour.ID:  200,
		milk.ID:   300,
		sugarG.ID: 50,
	})
	bread := createRecipeWithLines(t, testDB, user.ID, "Bread", map[uint]int{
		flour.ID:     300,
		sugarTbsp.ID: 2,
	})
	// In someone else's cart, must not leak into this user's list
	other := &model.User{Email: "other@example.com", Username: "other", PasswordHash: "hash", Role: model.RoleUser}
	require.NoError(t, testDB.Create(other).Error)
	noise := createRecipeWithLines(t, testDB, other.ID, "Noise", map[uint]int{flour.ID: 9999})
	require.NoError(t, testDB.Create(&model.ShoppingCartItem{UserID: other.ID, RecipeID: noise.ID}).Error)

	_, err := cartService.AddToCart(user.ID, pancakes.ID)
	require.NoError(t, err)
	_, err = cartService.AddToCart(user.ID, bread.ID)
	require.NoError(t, err)

	entries, err := cartService.BuildShoppingList(user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// Ordered by total ascending: Sugar tbsp 2, Sugar g 50, Milk ml 300, Flour g 500
	assert.Equal(t, model.ShoppingListEntry{Name: "Sugar", MeasurementUnit: "tbsp", TotalAmount: 2}, entries[0])
	assert.Equal(t, model.ShoppingListEntry{Name: "Sugar", MeasurementUnit: "g", TotalAmount: 50}, entries[1])
	assert.Equal(t, model.ShoppingListEntry{Name: "Milk", MeasurementUnit: "ml", TotalAmount: 300}, entries[2])
	assert.Equal(t, model.ShoppingListEntry{Name: "Flour", MeasurementUnit: "g", TotalAmount: 500}, entries[3])
}

func TestCartService_BuildShoppingList_EmptyCart(t *testing.T) {
	cartService, user, _ := setupCartServiceTest(t)

	entries, err := cartService.BuildShoppingList(user.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCartService_RenderShoppingList(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	entries := []model.ShoppingListEntry{
		{Name: "Sugar", MeasurementUnit: "tbsp", TotalAmount: 2},
		{Name: "Flour", MeasurementUnit: "g", TotalAmount: 500},
	}

	text := cartService.RenderShoppingList(entries)
	assert.Equal(t, "Sugar - 2 tbsp\nFlour - 500 g\n", text)

	assert.Equal(t, "", cartService.RenderShoppingList(nil))
}
