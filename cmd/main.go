package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appiumhub/adapters/myredis"
	"appiumhub/adapters/procinfo"
	"appiumhub/api"
	"appiumhub/domain"
	"appiumhub/handlers"
	"appiumhub/interfaces"
	"appiumhub/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(bootstrapLogger()).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, logCloser, err := newLogger(config, os.Stderr)
	if err != nil {
		level.Error(bootstrapLogger()).Log("msg", "Failed to initialize logger", "err", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	level.Info(logger).Log("msg", "Starting appiumhub service")

	hostIP := config.HostIP
	if hostIP == "" {
		hostIP = discoverHostIP()
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"service_port_grpc", config.GRPCPort,
		"production", config.Production,
		"redis_addr", config.RedisAddr,
		"host_ip", hostIP,
		"adb", config.ADB,
		"appium_command", config.AppiumCommand,
		"port_from", config.Ports.From,
		"port_to", config.Ports.To,
	)

	// Optional registry mirror
	var store interfaces.Cache[domain.ServerAllocation]
	if config.RedisAddr != "" {
		redisClient, err := myredis.NewRedisUniversalClient(config.RedisAddr)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Connected to Redis")
		store = myredis.NewAllocationCache(redisClient)
	}

	// Create core services
	var (
		connector interfaces.DeviceConnector
		registry  interfaces.ServerRegistry
	)
	{
		executor := service.NewCommandExecutor(
			procinfo.NewInspector(),
			logger,
			service.WithBackgroundLogDir(config.BackgroundLogDir),
		)
		connector = service.NewDeviceConnectionManager(executor, config.ADB, config.CommandTimeout, logger)

		r, err := service.NewServerRegistry(executor, connector, store, service.RegistryConfig{
			AppiumCommand: config.AppiumCommand,
			HostIP:        hostIP,
			Ports:         config.Ports,
			WorkingDir:    config.WorkingDir,
		}, logger)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create server registry", "err", err)
			os.Exit(1)
		}
		if n, err := r.Restore(context.Background()); err != nil {
			level.Warn(logger).Log("msg", "Failed to restore allocations", "err", err)
		} else if n > 0 {
			level.Info(logger).Log("msg", "Restored allocations from Redis", "count", n)
		}
		registry = r
	}

	// Create HTTPServer
	var httpServer handlers.ServerInterface
	{
		httpServer = handlers.NewHTTPServer(registry, connector, logger)
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		doc, err := api.Load(context.Background())
		if err != nil {
			level.Error(logger).Log("msg", "Failed to load OpenAPI document", "err", err)
			os.Exit(1)
		}
		validator, err := handlers.NewRequestValidator(doc)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create request validator", "err", err)
			os.Exit(1)
		}

		e = echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(middleware.Recover())
		e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
		e.Use(requestLogger(logger))
		e.Use(validator)
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterHandlers(e, httpServer)
	}

	// Optional gRPC health endpoint
	grpcServer, healthServer := newHealthServer()
	if config.GRPCPort > 0 {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", config.GRPCPort))
		if err != nil {
			level.Error(logger).Log("msg", "Failed to listen", "port", config.GRPCPort, "err", err)
			os.Exit(1)
		}
		go func() {
			level.Info(logger).Log("msg", "Starting gRPC health server", "addr", lis.Addr().String())
			if err := grpcServer.Serve(lis); err != nil {
				level.Error(logger).Log("msg", "gRPC server error", "err", err)
			}
		}()
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Bind before reporting SERVING
	addr := fmt.Sprintf(":%d", config.HTTPPort)
	if err := listenHTTP(e, addr, healthServer); err != nil {
		level.Error(logger).Log("msg", "Failed to listen", "addr", addr, "err", err)
		os.Exit(1)
	}

	// Start server in a goroutine
	go func() {
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", e.Listener.Addr().String())
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
			healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		}
	}()

	// Wait for interrupt signal
	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")
	healthServer.Shutdown()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}
	grpcServer.GracefulStop()

	// launched Appium servers are left running
	level.Info(logger).Log("msg", "Server stopped", "servers", len(registry.List()))
}

// listenHTTP binds addr for e and marks the health service SERVING once the port is held.
func listenHTTP(e *echo.Echo, addr string, healthServer *health.Server) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		return err
	}
	e.Listener = lis
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	return nil
}

// requestLogger logs one line per HTTP request.
func requestLogger(logger log.Logger) echo.MiddlewareFunc {
	logger = log.WithPrefix(logger, "component", "HTTP")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l := level.Info(logger)
			if v.Error != nil {
				l = level.Warn(logger)
			}
			l.Log(
				"msg", "HTTP request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			)
			return nil
		},
	})
}
