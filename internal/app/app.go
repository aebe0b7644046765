package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"rush-and-ruin/server"
	servernet "rush-and-ruin/server/internal/net"
	"rush-and-ruin/server/internal/observability"
	"rush-and-ruin/server/internal/telemetry"
	"rush-and-ruin/server/logging"
	loggingSinks "rush-and-ruin/server/logging/sinks"
)

type Config struct {
	Logger        telemetry.Logger
	Observability observability.Config
}

// Run wires the logging router, hub, and HTTP surface together and serves
// until the listener fails. Environment overrides are parsed here; invalid
// values are logged and the defaults kept.
func Run(ctx context.Context, cfg Config) error {
	telemetryLogger := cfg.Logger
	if telemetryLogger == nil {
		telemetryLogger = telemetry.WrapLogger(log.Default())
	}

	fallbackLogger := log.Default()
	if provider, ok := telemetryLogger.(interface{ StandardLogger() *log.Logger }); ok {
		if candidate := provider.StandardLogger(); candidate != nil {
			fallbackLogger = candidate
		}
	}

	logConfig := logging.DefaultConfig()
	sinks := []logging.NamedSink{
		{Name: "console", Sink: loggingSinks.NewConsole(os.Stdout)},
	}
	if path := os.Getenv("LOG_JSON_PATH"); path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			telemetryLogger.Printf("invalid LOG_JSON_PATH=%q: %v", path, err)
		} else {
			defer file.Close()
			logConfig.EnabledSinks = append(logConfig.EnabledSinks, "json")
			logConfig.JSON.FilePath = path
			sinks = append(sinks, logging.NamedSink{
				Name: "json",
				Sink: loggingSinks.NewJSON(file, logConfig.JSON.FlushInterval),
			})
		}
	}

	router, err := logging.NewRouter(logConfig, logging.SystemClock{}, fallbackLogger, sinks)
	if err != nil {
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	defer func() {
		if cerr := router.Close(ctx); cerr != nil {
			telemetryLogger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	hubCfg := server.DefaultHubConfig()
	world := hubCfg.World
	if raw := os.Getenv("WORLD_SEED"); raw != "" {
		world.Seed = raw
	}
	if raw := os.Getenv("WORLD_WIDTH"); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			world.Width = value
		} else {
			telemetryLogger.Printf("invalid WORLD_WIDTH=%q: %v", raw, err)
		}
	}
	if raw := os.Getenv("WORLD_HEIGHT"); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			world.Height = value
		} else {
			telemetryLogger.Printf("invalid WORLD_HEIGHT=%q: %v", raw, err)
		}
	}
	if raw := os.Getenv("DISABLE_WAVES"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			world.Waves = !value
		} else {
			telemetryLogger.Printf("invalid DISABLE_WAVES=%q: %v", raw, err)
		}
	}
	if raw := os.Getenv("DISABLE_OBSTACLES"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			world.Obstacles = !value
		} else {
			telemetryLogger.Printf("invalid DISABLE_OBSTACLES=%q: %v", raw, err)
		}
	}
	hubCfg.World = world
	hubCfg.Logger = telemetryLogger

	observabilityCfg := cfg.Observability
	if raw := os.Getenv("ENABLE_PPROF_TRACE"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			observabilityCfg.EnablePprofTrace = value
		} else {
			telemetryLogger.Printf("invalid ENABLE_PPROF_TRACE=%q: %v", raw, err)
		}
	}

	hub := server.NewHubWithConfig(hubCfg, router)
	stop := make(chan struct{})
	go hub.RunSimulation(stop)
	defer close(stop)

	clientDir := filepath.Clean("client")
	if raw := os.Getenv("CLIENT_DIR"); raw != "" {
		clientDir = filepath.Clean(raw)
	}
	handler := servernet.NewHTTPHandler(hub, servernet.HTTPHandlerConfig{
		ClientDir:     clientDir,
		Logger:        fallbackLogger,
		Observability: observabilityCfg,
	})

	addr := ":8080"
	if raw := os.Getenv("PORT"); raw != "" {
		if _, err := strconv.Atoi(raw); err == nil {
			addr = ":" + raw
		} else {
			telemetryLogger.Printf("invalid PORT=%q: %v", raw, err)
		}
	}

	srv := &http.Server{Addr: addr, Handler: handler}
	telemetryLogger.Printf("server listening on %s", srv.Addr)

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
