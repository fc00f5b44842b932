package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"purepoker-community/internal/authgate"
	"purepoker-community/internal/comments"
	"purepoker-community/internal/posts"
	"purepoker-community/internal/users"
)

// RegisterRoutes builds the gin router serving the full API surface. The
// same router backs both the standalone server and the Lambda adapter.
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.allowedOrigins,
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	postHandler := posts.NewHandler(s.posts, s.reactions)
	commentHandler := comments.NewHandler(s.comments, s.posts, s.reactions)
	userHandler := users.NewHandler(s.users)

	r.GET("/", s.healthCheck)
	r.GET("/health", s.healthDetail)

	auth := r.Group("/auth")
	{
		auth.POST("/register", userHandler.Register)
		auth.POST("/login", userHandler.Login)
		auth.POST("/validate", userHandler.Validate)
		auth.POST("/logout", userHandler.Logout)
	}

	// Mutations go through the external token-validation gate when a
	// validator is configured; reads stay open.
	guard := s.authGuard()

	r.GET("/posts", postHandler.List)
	r.POST("/posts", guard, postHandler.Create)
	r.GET("/posts/:id", postHandler.Get)
	r.PUT("/posts/:id", guard, postHandler.Update)
	r.DELETE("/posts/:id", guard, postHandler.Delete)
	r.POST("/posts/:id/like", guard, postHandler.Like)

	r.GET("/posts/:id/comments", commentHandler.ListByPost)
	r.POST("/posts/:id/comments", guard, commentHandler.Create)

	r.POST("/comments/:id/like", guard, commentHandler.Like)
	r.DELETE("/comments/:id", guard, commentHandler.Delete)

	return r
}

func (s *Server) authGuard() gin.HandlerFunc {
	if s.authValidateURL == "" {
		return func(c *gin.Context) { c.Next() }
	}
	return authgate.Middleware(nil, s.authValidateURL)
}

// healthCheck is the constant-body check the original clients poll.
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// healthDetail reports database connectivity and pool statistics.
func (s *Server) healthDetail(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"database": s.db.Health(c.Request.Context()),
	})
}
