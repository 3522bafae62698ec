package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stelihq/steli-backend/internal/auth"
	"github.com/stelihq/steli-backend/internal/models"
	"github.com/stelihq/steli-backend/internal/store"
)

type AuthHandler struct {
	store  *store.Store
	tokens *auth.Tokens
}

func NewAuthHandler(st *store.Store, tokens *auth.Tokens) *AuthHandler {
	return &AuthHandler{store: st, tokens: tokens}
}

func (h *AuthHandler) authResponse(c *gin.Context, status int, user *models.User, token string) {
	c.JSON(status, gin.H{
		"token": token,
		"user":  publicUser(h.store, user, c),
	})
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}
	if len(input.Password) <= 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be longer than 8 characters"})
		return
	}

	user, err := h.store.CreateUser(username, input.Password,
		strings.TrimSpace(input.FirstName), strings.TrimSpace(input.LastName))
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	h.authResponse(c, http.StatusCreated, user, token)
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.VerifyCredential(input.Username, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	h.authResponse(c, http.StatusOK, user, token)
}

// Logout revokes the caller's bearer token
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, exists := c.Get("token"); exists {
		if tokenString, ok := token.(string); ok {
			h.tokens.Revoke(tokenString)
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetMe returns the current authenticated user
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.store.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, publicUser(h.store, user, c))
}
