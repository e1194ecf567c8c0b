// Package main is the entry point for the parametrization command-line tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/accounting-office/backend/internal/integration/entrypoint/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := command.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
