package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"alfredoptarigan/resume-detector/internal/cli"
	"alfredoptarigan/resume-detector/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(config.Load())

	rootCmd := cli.NewRootCommand(app)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "detector: %v\n", err)
		os.Exit(1)
	}
}
