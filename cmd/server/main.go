// Command server runs the road-map core's query HTTP API: nearest-lane
// lookup, routing, and submap extraction over a Map loaded from a
// pre-built snapshot.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/go-roadmap/roadmap-core/internal/di"
)

func main() {
	srv, err := di.InitializeServer()
	if err != nil {
		log.Fatalf("server: initializing dependencies: %v", err)
	}
	defer srv.Cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.API.Run(gCtx, srv.HTTPConfig, srv.Log, srv.MapService)
	})

	g.Go(func() error {
		<-gCtx.Done()
		srv.Log.Info("shutting down, flushing submap cache manifest")
		return srv.Cache.Close()
	})

	if err := g.Wait(); err != nil {
		srv.Log.Fatal("server exited with error", zap.Error(err))
	}
}
