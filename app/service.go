package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/quote-genie/api/quotes"
	"github.com/kilianp07/quote-genie/config"
	coremetrics "github.com/kilianp07/quote-genie/core/metrics"
	"github.com/kilianp07/quote-genie/core/pricing"
	"github.com/kilianp07/quote-genie/core/training"
	"github.com/kilianp07/quote-genie/infra/logger"
	"github.com/kilianp07/quote-genie/infra/mqtt"

	_ "github.com/kilianp07/quote-genie/infra/metrics"
)

// Service runs the pricing HTTP API.
type Service struct {
	Quoter *pricing.Quoter
	cfg    config.ServerConfig
	sink   coremetrics.MetricsSink
	router http.Handler
	log    logger.Logger
}

// New creates a Service from the configuration. Models are read from
// modelDir; when they cannot be loaded the service answers with the
// fallback formula.
func New(cfg *config.Config, modelDir string) (*Service, error) {
	log := logger.New("service")
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	var pred pricing.Predictor
	models, err := training.Load(modelDir)
	switch {
	case err == nil:
		log.Infof("loaded models from %s (trained %s)", modelDir, models.TrainedAt.Format(time.RFC3339))
		pred = models
	case errors.Is(err, os.ErrNotExist):
		log.Warnf("no models in %s, serving fallback prices", modelDir)
	default:
		log.Errorf("load models: %v, serving fallback prices", err)
	}

	quoter := pricing.NewQuoter(cfg.Server.Pricing(), pred, sink, logger.New("quoter"))
	handler := quotes.NewHandler(quoter, logger.New("api"))
	return &Service{
		Quoter: quoter,
		cfg:    cfg.Server,
		sink:   sink,
		router: NewRouter(handler, cfg.Metrics.Path, prometheus.DefaultGatherer),
		log:    log,
	}, nil
}

// Handler returns the HTTP handler of the service.
func (s *Service) Handler() http.Handler { return s.router }

// Run listens on the configured address and blocks until ctx is cancelled,
// then shuts the server down gracefully.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the server on ln until ctx is cancelled.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.router, ReadHeaderTimeout: s.cfg.ReadTimeout()}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Infof("server stopped")
	return nil
}

// Close releases the sinks holding connections.
func (s *Service) Close() {
	closeSink(s.sink)
}

func closeSink(sink coremetrics.MetricsSink) {
	switch v := sink.(type) {
	case *coremetrics.MultiSink:
		for _, inner := range v.Sinks {
			closeSink(inner)
		}
	case *mqtt.Publisher:
		v.Disconnect()
	case interface{ Close() }:
		v.Close()
	}
}
