package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/scottcagno/hashtrace/pkg/logging"
	"github.com/scottcagno/hashtrace/pkg/sim"
	"github.com/scottcagno/hashtrace/pkg/viewer"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// serve runs the HTTP viewer on addr until ctx is cancelled
func serve(ctx context.Context, s *sim.Session, addr string, logger *logging.LevelLogger) error {
	handler, err := viewer.NewServer(s, logger)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("viewer listening on http://%s", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down viewer")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
