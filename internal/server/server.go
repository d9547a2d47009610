// Package server wires the planner components behind an echo HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	appconfig "github.com/mohammad-safakhou/dayplan/config"
	"github.com/mohammad-safakhou/dayplan/internal/memory"
	"github.com/mohammad-safakhou/dayplan/internal/planner"
	"github.com/mohammad-safakhou/dayplan/internal/store"
	"github.com/mohammad-safakhou/dayplan/internal/tasks"
)

// Run constructs every component, mounts the routes and serves until the
// process receives an interrupt.
func Run(cfg *appconfig.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	// Shared dependencies (top-level DI): one store, one memory index, one
	// planner service for the process lifetime.
	st := store.New()
	idx := memory.NewIndex()
	if cfg.Planner.SeedSampleTasks {
		st.SeedSampleTasks()
	}

	var source planner.Source
	switch cfg.Tasks.Source {
	case "", "none":
		// no external provider
	case "sample":
		source = tasks.NewSampleSource()
	default:
		return fmt.Errorf("unknown task source %q", cfg.Tasks.Source)
	}

	svc := planner.New(st, idx, planner.Config{
		Source:      source,
		SearchLimit: cfg.Planner.MemorySearchLimit,
		Logger:      log.New(log.Writer(), "[PLANNER] ", log.LstdFlags),
	})

	metrics := NewMetrics()
	e.Use(metrics.Middleware())

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	if cfg.Telemetry.Enabled {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	api := e.Group("/api")
	ph := &PlannerHandler{Service: svc, Metrics: metrics}
	ph.Register(api)
	oh := &OpsHandler{Store: st, Memory: idx, EventsLimit: cfg.Planner.RecentEventsLimit}
	oh.Register(api.Group("/ops"))
	uh := &UIHandler{Service: svc, Store: st}
	uh.Register(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if source != nil && cfg.Tasks.SyncSchedule != "" {
		sched := tasks.NewScheduler(svc, cfg.Tasks.SyncSchedule, log.New(log.Writer(), "[SYNC] ", log.LstdFlags))
		sched.Start(ctx)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.Server.Address)
	if err := e.Start(cfg.Server.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
