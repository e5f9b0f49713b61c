// Command pipelinectl drives a running referral pipeline server over its
// HTTP API. Connection settings come from the same koanf layers as the
// server (configs/base.yaml, configs/{profile}.yaml, APP_* env vars); the
// client section supplies the base URL, retry, circuit breaker and rate
// limit.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(newCLI(os.Stdout)).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
