package service

import (
	"errors"

	"github.com/jshin/cookshare-backend/internal/app/model"
	"github.com/jshin/cookshare-backend/internal/app/repository"
	"github.com/jshin/cookshare-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrSelfSubscription  = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed to this author")
	ErrNotSubscribed     = errors.New("not subscribed to this author")
	ErrAuthorNotFound    = errors.New("author not found")
)

// Subscription is a followed author together with a preview of their recipes.
type Subscription struct {
	User         model.User            `json:"user"`
	Recipes      []model.RecipeSummary `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

type UserService interface {
	ListUsers(requesterID *uint, limit, offset int) ([]model.User, int64, error)
	GetUser(id uint, requesterID *uint) (*model.User, error)
	Subscribe(followerID, authorID uint) (*Subscription, error)
	Unsubscribe(followerID, authorID uint) error
	Subscriptions(followerID uint, limit, offset, recipesLimit int) ([]Subscription, int64, error)
}

type userService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	recipeRepo repository.RecipeRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	recipeRepo repository.RecipeRepository,
) UserService {
	return &userService{
		userRepo:   userRepo,
		followRepo: followRepo,
		recipeRepo: recipeRepo,
	}
}

// annotateSubscribed fills the derived is_subscribed flag for a page of users
// with a single lookup. Anonymous requesters always see false.
func (s *userService) annotateSubscribed(requesterID *uint, users []model.User) error {
	if requesterID == nil || len(users) == 0 {
		return nil
	}

	authorIDs := make([]uint, len(users))
	for i := range users {
		authorIDs[i] = users[i].ID
	}

	followed, err := s.followRepo.FindAuthorIDSet(*requesterID, authorIDs)
	if err != nil {
		return err
	}
	for i := range users {
		_, ok := followed[users[i].ID]
		users[i].IsSubscribed = ok
	}
	return nil
}

func (s *userService) ListUsers(requesterID *uint, limit, offset int) ([]model.User, int64, error) {
	users, total, err := s.userRepo.FindAll(limit, offset)
	if err != nil {
		logger.Error("Failed to list users", err, nil)
		return nil, 0, err
	}

	if err := s.annotateSubscribed(requesterID, users); err != nil {
		logger.Error("Failed to annotate subscription flags", err, nil)
		return nil, 0, err
	}
	return users, total, nil
}

func (s *userService) GetUser(id uint, requesterID *uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}

	if requesterID != nil {
		subscribed, err := s.followRepo.Exists(*requesterID, user.ID)
		if err != nil {
			return nil, err
		}
		user.IsSubscribed = subscribed
	}
	return user, nil
}

func (s *userService) Subscribe(followerID, authorID uint) (*Subscription, error) {
	if followerID == authorID {
		return nil, ErrSelfSubscription
	}

	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}

	exists, err := s.followRepo.Exists(followerID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}

	if err := s.followRepo.Create(&model.Follow{
		FollowerID: followerID,
		AuthorID:   authorID,
	}); err != nil {
		logger.Error("Failed to create subscription", err, map[string]interface{}{
			"follower_id": followerID,
			"author_id":   authorID,
		})
		return nil, err
	}

	logger.Info("Subscription created", map[string]interface{}{
		"follower_id": followerID,
		"author_id":   authorID,
	})

	author.IsSubscribed = true
	return s.buildSubscription(*author, 0)
}

func (s *userService) Unsubscribe(followerID, authorID uint) error {
	exists, err := s.userRepo.Exists(authorID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrAuthorNotFound
	}

	removed, err := s.followRepo.Delete(followerID, authorID)
	if err != nil {
		logger.Error("Failed to delete subscription", err, map[string]interface{}{
			"follower_id": followerID,
			"author_id":   authorID,
		})
		return err
	}
	if !removed {
		return ErrNotSubscribed
	}

	logger.Info("Subscription removed", map[string]interface{}{
		"follower_id": followerID,
		"author_id":   authorID,
	})
	return nil
}

// buildSubscription attaches the author's recipe preview. recipesLimit <= 0
// means no limit on the preview.
func (s *userService) buildSubscription(author model.User, recipesLimit int) (*Subscription, error) {
	summaries, err := s.recipeRepo.FindSummariesByAuthor(author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipeRepo.CountByAuthor(author.ID)
	if err != nil {
		return nil, err
	}
	return &Subscription{
		User:         author,
		Recipes:      summaries,
		RecipesCount: count,
	}, nil
}

func (s *userService) Subscriptions(followerID uint, limit, offset, recipesLimit int) ([]Subscription, int64, error) {
	authors, total, err := s.followRepo.FindFollowedAuthors(followerID, limit, offset)
	if err != nil {
		logger.Error("Failed to list subscriptions", err, map[string]interface{}{
			"follower_id": followerID,
		})
		return nil, 0, err
	}

	subs := make([]Subscription, 0, len(authors))
	for _, author := range authors {
		author.IsSubscribed = true
		sub, err := s.buildSubscription(author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		subs = append(subs, *sub)
	}
	return subs, total, nil
}
