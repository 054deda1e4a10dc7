package repository

import (
	"github.com/jshin/cookshare-backend/internal/app/model"
	"github.com/jshin/cookshare-backend/pkg/logger"
	"gorm.io/gorm"
)

type FollowRepository interface {
	Create(follow *model.Follow) error
	Delete(followerID, authorID uint) (bool, error)
	Exists(followerID, authorID uint) (bool, error)
	FindAuthorIDSet(followerID uint, authorIDs []uint) (map[uint]struct{}, error)
	FindFollowedAuthors(followerID uint, limit, offset int) ([]model.User, int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(follow *model.Follow) error {
	logger.Debug("Creating follow edge in database", map[string]interface{}{
		"follower_id": follow.FollowerID,
		"author_id":   follow.AuthorID,
	})

	if err := r.db.Create(follow).Error; err != nil {
		logger.Error("Failed to create follow edge in database", err, map[string]interface{}{
			"follower_id": follow.FollowerID,
			"author_id":   follow.AuthorID,
		})
		return err
	}
	return nil
}

// Delete removes the edge and reports whether it existed.
func (r *followRepository) Delete(followerID, authorID uint) (bool, error) {
	result := r.db.Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&model.Follow{})
	if result.Error != nil {
		logger.Error("Failed to delete follow edge from database", result.Error, map[string]interface{}{
			"follower_id": followerID,
			"author_id":   authorID,
		})
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *followRepository) Exists(followerID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAuthorIDSet returns which of the given authors the follower subscribes
// to, as a set. One query regardless of how many authors are checked.
func (r *followRepository) FindAuthorIDSet(followerID uint, authorIDs []uint) (map[uint]struct{}, error) {
	set := make(map[uint]struct{}, len(authorIDs))
	if len(authorIDs) == 0 {
		return set, nil
	}

	var ids []uint
	err := r.db.Model(&model.Follow{}).
		Where("follower_id = ? AND author_id IN ?", followerID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (r *followRepository) FindFollowedAuthors(followerID uint, limit, offset int) ([]model.User, int64, error) {
	base := r.db.Model(&model.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.follower_id = ?", followerID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Order("follows.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var authors []model.User
	if err := query.Find(&authors).Error; err != nil {
		logger.Error("Failed to list followed authors from database", err, map[string]interface{}{
			"follower_id": followerID,
		})
		return nil, 0, err
	}
	return authors, total, nil
}
