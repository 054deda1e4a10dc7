package model

import (
	"time"
)

// Tag is a predefined label attached to recipes. Slug is the external filter
// key used in list queries.
type Tag struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `gorm:"type:varchar(150);uniqueIndex;not null" json:"name"`
	Color string `gorm:"type:varchar(150);uniqueIndex;not null" json:"color"`
	Slug  string `gorm:"type:varchar(150);uniqueIndex;not null" json:"slug"`
}

func (Tag) TableName() string {
	return "tags"
}

// RecipeTag is the many-to-many join between recipes and tags.
type RecipeTag struct {
	RecipeID  uint      `gorm:"primaryKey;index" json:"recipe_id"`
	TagID     uint      `gorm:"primaryKey;index" json:"tag_id"`
	Recipe    Recipe    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Tag       Tag       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}
