package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stelihq/steli-backend/internal/models"
	"github.com/stelihq/steli-backend/internal/store"
)

const (
	defaultFeedLimit = 50
	maxFeedLimit     = 100
)

type RankingHandler struct {
	store *store.Store
}

func NewRankingHandler(st *store.Store) *RankingHandler {
	return &RankingHandler{store: st}
}

// rankedItemInput is one entry of a full-list replace. Score is a pointer so
// an omitted score can default to 5.0 while an explicit 0 stays 0.
type rankedItemInput struct {
	SpotName string   `json:"spot_name" binding:"required"`
	Score    *float64 `json:"score"`
	Notes    string   `json:"notes"`
	PhotoURL string   `json:"photo_url"`
	Category string   `json:"category"`
}

// SetRankings replaces the caller's entire ranked list (index 0 = rank 1)
func (h *RankingHandler) SetRankings(c *gin.Context) {
	var input struct {
		Rankings []rankedItemInput `json:"rankings"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := viewerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	items := make([]models.RankedItem, 0, len(input.Rankings))
	for _, r := range input.Rankings {
		score := 5.0
		if r.Score != nil {
			score = *r.Score
		}
		items = append(items, models.RankedItem{
			SpotName: r.SpotName,
			Score:    score,
			Notes:    r.Notes,
			PhotoURL: r.PhotoURL,
			Category: r.Category,
		})
	}

	c.JSON(http.StatusOK, h.store.SetRankings(userID, items))
}

// GetUserRankings returns a user's ranked list in rank order
func (h *RankingHandler) GetUserRankings(c *gin.Context) {
	user, err := h.store.GetUserByUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, h.store.GetUserRankings(user.ID))
}

// GetMatchup returns two random spots for pairwise comparison
func (h *RankingHandler) GetMatchup(c *gin.Context) {
	matchup, err := h.store.GetMatchup()
	if err != nil {
		if errors.Is(err, store.ErrInsufficientSpots) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not enough spots for a matchup"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build matchup"})
		return
	}
	c.JSON(http.StatusOK, matchup)
}

// GetFeed returns recent additions by users the caller follows
func (h *RankingHandler) GetFeed(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, h.store.GetFeed(userID, feedLimit(c)))
}

// GetRecentRankings returns recent additions across all users
func (h *RankingHandler) GetRecentRankings(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.GetRecentRankings(feedLimit(c)))
}

func feedLimit(c *gin.Context) int {
	limit := defaultFeedLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	return limit
}
