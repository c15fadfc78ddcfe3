package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/botdesk/botdesk/internal/gateway"
)

// runServe starts the local HTTP gateway and blocks until interrupted.
func runServe(args []string) error {
	fs := newFlagSet("serve")
	addr := fs.String("addr", "", "listen address (defaults to the configured gateway address)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	gwCfg := a.cfg.Gateway
	if *addr != "" {
		gwCfg.Addr = *addr
	}

	srv := gateway.New(gwCfg, a.console, a.log)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("gateway: %w", err)
		}
		return nil
	case <-done:
	}

	a.log.Info("shutting down gateway")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
