package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"purepoker-community/internal/logger"
	"purepoker-community/internal/server"
)

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	slog.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	// In-flight requests get 5 seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err.Error())
	}

	slog.Info("Server exiting")
	done <- true
}

func main() {
	logger.SetDefault(logger.New())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	srv, err := server.New(ctx)
	cancel()
	if err != nil {
		slog.Error("Failed to initialize server", "error", err.Error())
		panic(err)
	}
	defer srv.Close()

	apiServer := srv.HTTPServer()

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, done)

	slog.Info("Community service listening", "addr", apiServer.Addr)
	if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	<-done
	slog.Info("Graceful shutdown complete")
}
