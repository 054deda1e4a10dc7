package model

import (
	"time"

	"gorm.io/gorm"
)

type Recipe struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	AuthorID    uint           `gorm:"not null;index" json:"author_id"`
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`
	Image       string         `gorm:"not null" json:"image"`
	Text        string         `gorm:"type:text" json:"text"`
	CookingTime int            `gorm:"not null" json:"cooking_time"`
	PubDate     time.Time      `gorm:"autoCreateTime;index" json:"pub_date"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Derived per-request from the requester's marks, never stored
	IsFavorited      bool `gorm:"-" json:"is_favorited"`
	IsInShoppingCart bool `gorm:"-" json:"is_in_shopping_cart"`

	Author      User               `gorm:"foreignKey:AuthorID" json:"author"`
	Tags        []Tag              `gorm:"many2many:recipe_tags;" json:"tags"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient joins a recipe to an ingredient with a quantity. The whole
// line set is deleted and recreated on every recipe update, never patched.
type RecipeIngredient struct {
	ID           uint `gorm:"primarykey" json:"-"`
	RecipeID     uint `gorm:"not null;index:idx_recipe_ingredient,unique" json:"-"`
	IngredientID uint `gorm:"not null;index:idx_recipe_ingredient,unique" json:"id"`
	Amount       int  `gorm:"not null" json:"amount"`

	// Flattened from Ingredient after preload (see recipe repository)
	Name            string `gorm:"-" json:"name"`
	MeasurementUnit string `gorm:"-" json:"measurement_unit"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// RecipeSummary is the lightweight shape returned from mark endpoints and
// embedded in subscription listings.
type RecipeSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func (r *Recipe) Summary() RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
