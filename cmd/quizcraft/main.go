package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"quizcraft/internal/cli"
	"quizcraft/internal/config"
	"quizcraft/internal/logger"
)

func main() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "error"
	}
	if err := logger.Initialize(config.LoggerConfig{Level: level}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.New(os.Stdout, os.Stderr).Run(ctx, os.Args[1:])
	stop()
	_ = logger.Sync()
	os.Exit(code)
}
