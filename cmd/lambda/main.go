package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	_ "github.com/joho/godotenv/autoload"

	"purepoker-community/internal/gateway"
	"purepoker-community/internal/logger"
	"purepoker-community/internal/server"
)

func main() {
	logger.SetDefault(logger.New())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	srv, err := server.New(ctx)
	cancel()
	if err != nil {
		slog.Error("Failed to initialize server", "error", err.Error())
		panic(err)
	}

	// The pool lives for the whole execution environment; Lambda freezes
	// rather than exits, so there is no teardown hook to close it in.
	adapter := gateway.New(srv.RegisterRoutes())
	lambda.Start(adapter.Handle)
}
