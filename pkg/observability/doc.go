// Package observability provides structured logging, Prometheus metrics,
// health probes, and graceful shutdown.
//
// # Overview
//
// This package centralizes the service's operational infrastructure: JSON
// logging, HTTP and business metrics, liveness/readiness endpoints for the
// ops port, and signal-driven graceful shutdown.
//
// # Structured Logging
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.WithField("port", 8080).Info("server started")
//	logger.WithError(err).Error("request failed")
//
// # Prometheus Metrics
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/todos", "200").Inc()
//
// # Health Checks
//
//	checker := observability.NewHealthChecker("1.0.0")
//	mux.HandleFunc("/healthz", checker.Liveness)
//	mux.HandleFunc("/readyz", checker.Readiness)
//
// # Graceful Shutdown
//
//	observability.GracefulShutdown(logger, httpServer, opsServer.Shutdown)
//
// # Related Packages
//
//   - pkg/config: observability configuration
//   - pkg/httputil: request logging middleware
package observability
