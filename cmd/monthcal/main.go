package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"monthcal/internal/commands"
	appLog "monthcal/internal/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := commands.New().ExecuteContext(ctx); err != nil {
		appLog.Error("command failed", err)
		stop()
		os.Exit(1)
	}
}
