package model

import (
	"time"
)

// ShoppingCartItem marks a recipe as selected for a user's shopping list.
// Same existence-row shape as Favorite.
type ShoppingCartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_cart_pair,unique" json:"user_id"`
	RecipeID  uint      `gorm:"not null;index:idx_cart_pair,unique;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ShoppingCartItem) TableName() string {
	return "shopping_cart_items"
}

// ShoppingListEntry is one aggregated group in the shopping-list report:
// all cart recipes' amounts for one (name, unit) ingredient identity, summed.
type ShoppingListEntry struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int    `json:"total_amount"`
}
