package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stelihq/steli-backend/internal/auth"
	"github.com/stelihq/steli-backend/internal/models"
	"github.com/stelihq/steli-backend/internal/store"
)

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Spot    *SpotHandler
	Ranking *RankingHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(st *store.Store, tokens *auth.Tokens) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(st, tokens),
		User:    NewUserHandler(st),
		Spot:    NewSpotHandler(st),
		Ranking: NewRankingHandler(st),
	}
}

// viewerID extracts the authenticated user id set by the auth middleware.
func viewerID(c *gin.Context) (int, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

// publicUser is the user payload shared by profile, search and follow
// endpoints: profile fields plus social counts, and is_following relative to
// the viewer when one is authenticated.
func publicUser(st *store.Store, u *models.User, c *gin.Context) gin.H {
	isFollowing := false
	if viewer, ok := viewerID(c); ok {
		isFollowing = st.IsFollowing(viewer, u.ID)
	}
	return gin.H{
		"id":              u.ID,
		"username":        u.Username,
		"first_name":      u.FirstName,
		"last_name":       u.LastName,
		"followers_count": st.FollowersCount(u.ID),
		"following_count": st.FollowingCount(u.ID),
		"ranked_count":    st.RankedCount(u.ID),
		"is_following":    isFollowing,
	}
}
