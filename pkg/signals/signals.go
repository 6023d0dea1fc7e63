package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/slipway-sh/slipway/pkg/logger"
)

var (
	log = logger.NewLogger("slipway.signals")

	// Inspired by
	// https://github.com/kubernetes-sigs/controller-runtime/blob/8499b67e316a03b260c73f92d0380de8cd2e97a1/pkg/manager/signals/signal.go#L25
	onlyOneSignalHandler = make(chan struct{})

	shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
)

// Context returns a context which will be canceled when either the SIGINT
// or SIGTERM signal is caught. If either signal is caught a second time,
// the program is terminated immediately with exit code 1.
func Context() context.Context {
	// panics when called twice
	close(onlyOneSignalHandler)

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	go func() {
		defer close(sigCh) // ensure channel is closed to avoid goroutine leak

		sig := <-sigCh
		log.Infof(`Received signal '%s'; beginning shutdown`, sig)
		cancel()
		sig = <-sigCh
		log.Fatalf(
			`Received signal '%s' during shutdown; exiting immediately`,
			sig,
		)
	}()

	return ctx
}
