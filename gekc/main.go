// The gekc command parses gek source files
// and reports syntax errors.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		die(err)
	}
}

func die(err error) {
	printError(os.Stderr, err)
	os.Exit(1)
}
