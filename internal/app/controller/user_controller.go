package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jshin/cookshare-backend/internal/app/service"
	apperrors "github.com/jshin/cookshare-backend/internal/errors"
	"github.com/jshin/cookshare-backend/internal/middleware"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// ListUsers returns a page of users
// GET /api/v1/users
func (ctrl *UserController) ListUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page, limit, offset := parsePagination(c)
	requesterID := middleware.GetOptionalUserID(c)

	users, total, err := ctrl.userService.ListUsers(requesterID, limit, offset)
	if err != nil {
		log.Error("Failed to list users", err, nil)
		apperrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

// GetUser returns a single user profile
// GET /api/v1/users/:id
func (ctrl *UserController) GetUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	user, err := ctrl.userService.GetUser(id, middleware.GetOptionalUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
			return
		}
		log.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

// Subscribe follows an author
// POST /api/v1/users/:id/subscribe
func (ctrl *UserController) Subscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	authorID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	subscription, err := ctrl.userService.Subscribe(userID, authorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfSubscription):
			apperrors.BadRequest(c, apperrors.FollowSelfForbidden, "You cannot subscribe to yourself")
		case errors.Is(err, service.ErrAuthorNotFound):
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
		case errors.Is(err, service.ErrAlreadySubscribed):
			apperrors.Conflict(c, apperrors.FollowAlreadyExists, "You are already subscribed to this author")
		default:
			log.Error("Failed to subscribe", err, map[string]interface{}{
				"follower_id": userID,
				"author_id":   authorID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "subscribe to author")
		}
		return
	}

	log.Info("Subscribed to author", map[string]interface{}{
		"follower_id": userID,
		"author_id":   authorID,
	})

	c.JSON(http.StatusCreated, subscription)
}

// Unsubscribe removes a follow
// DELETE /api/v1/users/:id/subscribe
func (ctrl *UserController) Unsubscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	authorID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	err := ctrl.userService.Unsubscribe(userID, authorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthorNotFound):
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
		case errors.Is(err, service.ErrNotSubscribed):
			apperrors.Conflict(c, apperrors.FollowNotFound, "You are not subscribed to this author")
		default:
			log.Error("Failed to unsubscribe", err, map[string]interface{}{
				"follower_id": userID,
				"author_id":   authorID,
			})
			apperrors.InternalError(c, "Failed to unsubscribe")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Subscriptions lists the authors the current user follows, each with a
// preview of their recipes
// GET /api/v1/users/subscriptions
func (ctrl *UserController) Subscriptions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	page, limit, offset := parsePagination(c)

	recipesLimit := 0
	if raw := c.Query("recipes_limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "recipes_limit must be a non-negative integer")
			return
		}
		recipesLimit = parsed
	}

	subs, total, err := ctrl.userService.Subscriptions(userID, limit, offset, recipesLimit)
	if err != nil {
		log.Error("Failed to list subscriptions", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch subscriptions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subscriptions": subs,
		"page":          page,
		"limit":         limit,
		"total":         total,
	})
}
