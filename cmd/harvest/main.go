// Command harvest archives and converts comparative-genomics results.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/roach88/harvest/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
