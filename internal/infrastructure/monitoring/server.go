package monitoring

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/alchemorsel/mealplan/pkg/healthcheck"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsServer serves the planner registry on /metrics and, when a health
// check is given, the /health endpoints
type MetricsServer struct {
	server *http.Server
	logger *zap.Logger
}

// NewMetricsServer creates the operations server on the given port
func NewMetricsServer(port int, metrics *PlannerMetrics, health *healthcheck.HealthCheck, logger *zap.Logger) *MetricsServer {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{
		Registry:          metrics.Registry(),
		EnableOpenMetrics: true,
	})))

	if health != nil {
		router.GET("/health", health.Handler())
		router.GET("/health/live", health.LivenessHandler())
		router.GET("/health/ready", health.ReadinessHandler())
	}

	return &MetricsServer{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger.Named("metrics-server"),
	}
}

// Handler returns the HTTP handler, mainly for tests
func (s *MetricsServer) Handler() http.Handler {
	return s.server.Handler
}

// Start binds the listener and serves in the background
func (s *MetricsServer) Start(context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("Metrics server started", zap.String("addr", ln.Addr().String()))
	return nil
}

// Stop shuts the server down gracefully
func (s *MetricsServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
