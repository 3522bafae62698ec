package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/stelihq/steli-backend/internal/models"
	"github.com/stelihq/steli-backend/internal/store"
)

type UserHandler struct {
	store *store.Store
}

func NewUserHandler(st *store.Store) *UserHandler {
	return &UserHandler{store: st}
}

func (h *UserHandler) lookupUser(c *gin.Context) (*models.User, bool) {
	user, err := h.store.GetUserByUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return nil, false
	}
	return user, true
}

// SearchUsers returns users matching the q query parameter
func (h *UserHandler) SearchUsers(c *gin.Context) {
	results := h.store.SearchUsers(c.Query("q"))
	c.JSON(http.StatusOK, lo.Map(results, func(u *models.User, _ int) gin.H {
		return publicUser(h.store, u, c)
	}))
}

// GetUser returns a user's public profile
func (h *UserHandler) GetUser(c *gin.Context) {
	user, ok := h.lookupUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, publicUser(h.store, user, c))
}

// GetFollowers returns a user's followers
func (h *UserHandler) GetFollowers(c *gin.Context) {
	user, ok := h.lookupUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, lo.Map(h.store.GetFollowers(user.ID), func(u *models.User, _ int) gin.H {
		return publicUser(h.store, u, c)
	}))
}

// GetFollowing returns users that a user is following
func (h *UserHandler) GetFollowing(c *gin.Context) {
	user, ok := h.lookupUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, lo.Map(h.store.GetFollowing(user.ID), func(u *models.User, _ int) gin.H {
		return publicUser(h.store, u, c)
	}))
}

// FollowUser follows a user
func (h *UserHandler) FollowUser(c *gin.Context) {
	target, ok := h.lookupUser(c)
	if !ok {
		return
	}
	follower, _ := viewerID(c)

	if err := h.store.Follow(follower, target.ID); err != nil {
		if errors.Is(err, store.ErrSelfFollow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UnfollowUser unfollows a user
func (h *UserHandler) UnfollowUser(c *gin.Context) {
	target, ok := h.lookupUser(c)
	if !ok {
		return
	}
	follower, _ := viewerID(c)

	h.store.Unfollow(follower, target.ID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
