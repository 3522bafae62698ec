package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stelihq/steli-backend/internal/store"
)

type SpotHandler struct {
	store *store.Store
}

func NewSpotHandler(st *store.Store) *SpotHandler {
	return &SpotHandler{store: st}
}

// ListSpots returns the spot catalog, filtered by q when provided
func (h *SpotHandler) ListSpots(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		c.JSON(http.StatusOK, h.store.SearchSpots(q))
		return
	}
	c.JSON(http.StatusOK, h.store.ListSpots())
}
