package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MethuParoi/share-bites-server-codebase/internal/logging"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/config"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/metrics"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/services"
)

// Services bundles what the route layer calls into. Images may be nil, in
// which case the upload route is not registered.
type Services struct {
	Sessions  *services.SessionService
	Food      *services.FoodService
	Added     *services.RecordService
	Requested *services.RecordService
	Images    *services.ImageService
}

type Server struct {
	config    *config.Config
	logger    logging.Logger
	metrics   *metrics.Registry
	sessions  *services.SessionService
	food      *services.FoodService
	added     *services.RecordService
	requested *services.RecordService
	images    *services.ImageService
	router    http.Handler
}

func NewServer(cfg *config.Config, l logging.Logger, svc Services, reg *metrics.Registry) *Server {
	s := &Server{
		config:    cfg,
		logger:    l.With("module", "http_server"),
		metrics:   reg,
		sessions:  svc.Sessions,
		food:      svc.Food,
		added:     svc.Added,
		requested: svc.Requested,
		images:    svc.Images,
	}
	s.router = s.routes()
	return s
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests for
// at most the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.EndpointAddrHTTP,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.config.EndpointAddrHTTP)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
