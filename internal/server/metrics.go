package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the process-local prometheus registry exposed on /metrics.
type Metrics struct {
	registry     *prometheus.Registry
	httpRequests *prometheus.CounterVec
	workflows    *prometheus.CounterVec
}

// NewMetrics builds and registers all collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dayplan_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "path", "status"})
	workflows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dayplan_workflow_runs_total",
		Help: "Planner workflow executions by use case.",
	}, []string{"use_case"})
	registry.MustRegister(httpRequests, workflows)
	return &Metrics{registry: registry, httpRequests: httpRequests, workflows: workflows}
}

// Handler serves the registry in prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware counts every request against its echo route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			m.httpRequests.WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(status)).Inc()
			return err
		}
	}
}

// MarkWorkflow records one execution of the named use case.
func (m *Metrics) MarkWorkflow(useCase string) {
	if m == nil {
		return
	}
	m.workflows.WithLabelValues(useCase).Inc()
}
