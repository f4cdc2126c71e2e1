// Package main provides the CLI entrypoint for field-mapper.
//
// field-mapper resolves column mappings between a source table and a
// business-platform entity:
//   - Loads both schemas from YAML documents
//   - Classifies platform system fields on the target side
//   - Asks a similarity source for candidate pairings
//   - Resolves them into accepted, needs-review and unresolved columns
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
