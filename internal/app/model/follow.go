package model

import (
	"time"
)

// Follow is a directed edge: follower subscribes to an author's recipes.
// The composite unique index closes the check-then-insert race at the store.
type Follow struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	FollowerID uint      `gorm:"not null;index:idx_follows_pair,unique" json:"follower_id"`
	AuthorID   uint      `gorm:"not null;index:idx_follows_pair,unique;index" json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Author   User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Follow) TableName() string {
	return "follows"
}
