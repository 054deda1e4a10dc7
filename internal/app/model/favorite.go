package model

import (
	"time"
)

// Favorite marks a recipe as favorited by a user. Pure existence row: it is
// hard-deleted on removal so the unique pair index stays authoritative.
type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_favorites_pair,unique" json:"user_id"`
	RecipeID  uint      `gorm:"not null;index:idx_favorites_pair,unique;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Favorite) TableName() string {
	return "favorites"
}
