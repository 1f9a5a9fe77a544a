package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/ghg-emissions-engine/internal/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// Cancel batch runs on shutdown signals.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx, version, os.Args[1:], os.Stdout, os.Stderr)
}
