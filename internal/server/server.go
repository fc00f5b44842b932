// Package server wires the persistence handle, session backend and domain
// services into an HTTP server. All dependencies are constructed here and
// passed down; teardown is tied to Close.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"purepoker-community/internal/comments"
	"purepoker-community/internal/config"
	"purepoker-community/internal/database"
	"purepoker-community/internal/posts"
	"purepoker-community/internal/reactions"
	"purepoker-community/internal/session"
	"purepoker-community/internal/token"
	"purepoker-community/internal/users"
)

// Server holds the dependencies for the HTTP surface.
type Server struct {
	port int

	db           database.Service
	sessionStore session.Store

	posts     posts.Service
	comments  comments.Service
	reactions reactions.Service
	users     users.Service

	authValidateURL string
	allowedOrigins  []string
}

// Config holds server configuration.
type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// LoadConfigFromEnv loads server configuration from environment variables.
func LoadConfigFromEnv() *Config {
	port, _ := strconv.Atoi(config.GetEnvOrDefault("PORT", "8012"))

	return &Config{
		Port:         port,
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
	}
}

// New constructs the server and everything beneath it: database handle,
// schema, session store and domain services.
func New(ctx context.Context) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	cfg := LoadConfigFromEnv()

	db, err := database.New(ctx, database.LoadConfigFromEnv())
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	sessionStore := newSessionStore(ctx)
	sessions := session.NewManager(sessionStore)
	signer := token.NewSigner(os.Getenv("SECRET_KEY"))

	postSvc := posts.NewService(db)
	commentSvc := comments.NewService(db)
	reactionSvc := reactions.NewService(reactions.NewStore(db))
	userSvc := users.NewService(db, sessions, signer)

	return &Server{
		port:            cfg.Port,
		db:              db,
		sessionStore:    sessionStore,
		posts:           postSvc,
		comments:        commentSvc,
		reactions:       reactionSvc,
		users:           userSvc,
		authValidateURL: os.Getenv("AUTH_VALIDATE_URL"),
		allowedOrigins:  []string{config.GetEnvOrDefault("CORS_ALLOWED_ORIGIN", "http://localhost:5173")},
	}, nil
}

// newSessionStore returns a Redis store when REDIS_ADDR is configured and
// reachable, otherwise an in-process store.
func newSessionStore(ctx context.Context) session.Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		slog.Info("REDIS_ADDR not set, using in-memory session store")
		return session.NewMemoryStore()
	}

	store := session.NewRedisStore(addr, os.Getenv("REDIS_PASSWORD"), 0)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := session.Ping(pingCtx, store); err != nil {
		slog.Warn("Redis unreachable, falling back to in-memory session store",
			"addr", addr, "error", err.Error())
		return session.NewMemoryStore()
	}

	slog.Info("Session store connected", "addr", addr)
	return store
}

// HTTPServer builds the configured *http.Server around the router.
func (s *Server) HTTPServer() *http.Server {
	cfg := LoadConfigFromEnv()

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.RegisterRoutes(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}

// Close releases the database pool.
func (s *Server) Close() {
	s.db.Close()
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
