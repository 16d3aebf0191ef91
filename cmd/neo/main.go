// Command neo explores near-Earth objects and their close approaches.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hupe1980/neodb/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
