// Command cinedex seeds a media catalog database with synthetic data.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cinedex/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.Execute(ctx)
}
