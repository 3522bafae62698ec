package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stelihq/steli-backend/internal/auth"
	"github.com/stelihq/steli-backend/internal/handlers"
	"github.com/stelihq/steli-backend/internal/middleware"
	"github.com/stelihq/steli-backend/internal/store"
)

type Server struct {
	store   *store.Store
	tokens  *auth.Tokens
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer() *http.Server {
	// The store is volatile; rebuild it from the seed on every boot
	st := store.New()
	if err := store.Seed(st); err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}

	tokens := auth.NewTokensFromEnv()
	handler := handlers.NewHandler(st, tokens)

	newServer := &Server{
		store:   st,
		tokens:  tokens,
		handler: handler,
	}

	// Configure Gin router
	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.Health())
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/auth/register", s.handler.Auth.Register)
		api.POST("/auth/login", s.handler.Auth.Login)

		// Spot catalog (public reads)
		api.GET("/spots", s.handler.Spot.ListSpots)

		// Global recent activity (public)
		api.GET("/rankings/recent", s.handler.Ranking.GetRecentRankings)

		// Public reads that personalize when a token is present
		optional := api.Group("")
		optional.Use(middleware.OptionalAuth(s.tokens))
		{
			optional.GET("/users/search", s.handler.User.SearchUsers)
			optional.GET("/users/:username", s.handler.User.GetUser)
			optional.GET("/users/:username/followers", s.handler.User.GetFollowers)
			optional.GET("/users/:username/following", s.handler.User.GetFollowing)
			optional.GET("/rankings/user/:username", s.handler.Ranking.GetUserRankings)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(s.tokens))
		{
			protected.POST("/auth/logout", s.handler.Auth.Logout)
			protected.GET("/users/me", s.handler.Auth.GetMe)

			protected.POST("/users/:username/follow", s.handler.User.FollowUser)
			protected.DELETE("/users/:username/follow", s.handler.User.UnfollowUser)

			protected.PUT("/rankings", s.handler.Ranking.SetRankings)
			protected.GET("/rankings/matchup", s.handler.Ranking.GetMatchup)
			protected.GET("/rankings/feed", s.handler.Ranking.GetFeed)
		}
	}

	return r
}
