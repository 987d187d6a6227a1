package api

import (
	"context"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"github.com/Barritosaurus/cpusched/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

// NewApp wires the scheduling routes, a liveness probe and the metrics
// endpoint for gatherer.
func NewApp(handler SchedulerHandler, gatherer prometheus.Gatherer) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(telemetry.Handler(gatherer)))

	api := app.Group("/api")
	v1 := api.Group("/v1")
	{
		v1.Post("/schedule/:algorithm", handler.Schedule)
		v1.Post("/compare", handler.Compare)
	}

	return app
}

// Server runs the HTTP API next to a gRPC health endpoint.
type Server struct {
	app    *fiber.App
	grpc   *grpc.Server
	health *health.Server
}

func NewServer(app *fiber.App) *Server {
	srv, hs := NewHealthServer()
	return &Server{app: app, grpc: srv, health: hs}
}

// ListenAndServe serves until ctx is cancelled or a listener fails, then
// marks the service NOT_SERVING and shuts both servers down.
func (s *Server) ListenAndServe(ctx context.Context, httpAddr, grpcAddr string) error {
	httpLis, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", httpAddr, err)
	}
	grpcLis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		_ = httpLis.Close()
		return fmt.Errorf("failed to listen on %s: %w", grpcAddr, err)
	}

	errCh := make(chan error, 2)
	go func() {
		log.Printf("gRPC health server listening on %s\n", grpcLis.Addr())
		if err := s.grpc.Serve(grpcLis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	go func() {
		log.Printf("HTTP API listening on %s\n", httpLis.Addr())
		if err := s.app.Listener(httpLis); err != nil {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Received shutdown signal, stopping gracefully...")
	case err = <-errCh:
	}

	s.health.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := s.app.ShutdownWithContext(shutdownCtx); serr != nil {
		log.Printf("HTTP shutdown error: %v\n", serr)
	}
	s.grpc.GracefulStop()

	return err
}
