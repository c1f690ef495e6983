package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/pixelempires/empire-api/internal/pkg/clock"
	"github.com/pixelempires/empire-api/internal/pkg/idgen"
	redisclient "github.com/pixelempires/empire-api/internal/redis"
	"github.com/pixelempires/empire-api/internal/registries/empire"
	"github.com/pixelempires/empire-api/internal/registries/player"
	"github.com/pixelempires/empire-api/internal/registries/territory"
	"github.com/pixelempires/empire-api/internal/repositories/empires"
	"github.com/pixelempires/empire-api/internal/repositories/players"
	territoryrepo "github.com/pixelempires/empire-api/internal/repositories/territory"
)

// serverConfig is populated from the environment
type serverConfig struct {
	RedisAddr          string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	GRPCPort           int           `env:"GRPC_PORT" envDefault:"50051"`
	PendingWarDuration time.Duration `env:"PENDING_WAR_DURATION" envDefault:"5m"`
	WarDuration        time.Duration `env:"WAR_DURATION" envDefault:"30m"`
	WarTickInterval    time.Duration `env:"WAR_TICK_INTERVAL" envDefault:"1s"`
}

var grpcPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the empire API gRPC server with the war tick loop running.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides GRPC_PORT)")
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	if grpcPort != 0 {
		cfg.GRPCPort = grpcPort
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	empireReg, err := buildRegistries(ctx, &cfg)
	if err != nil {
		return err
	}

	go runWarTicker(ctx, empireReg, cfg.WarTickInterval)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down gRPC server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// buildRegistries wires the storage layer and loads all three caches
func buildRegistries(ctx context.Context, cfg *serverConfig) (*empire.Registry, error) {
	client, err := redisclient.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	playerRepo, err := players.NewRedis(&players.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create player repository: %w", err)
	}
	empireRepo, err := empires.NewRedis(&empires.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create empire repository: %w", err)
	}
	cellRepo, err := territoryrepo.NewRedis(&territoryrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create territory repository: %w", err)
	}

	playerReg, err := player.New(&player.Config{Repo: playerRepo})
	if err != nil {
		return nil, fmt.Errorf("failed to create player registry: %w", err)
	}
	territoryReg, err := territory.New(&territory.Config{Repo: cellRepo})
	if err != nil {
		return nil, fmt.Errorf("failed to create territory index: %w", err)
	}
	empireReg, err := empire.New(&empire.Config{
		Repo:               empireRepo,
		Players:            playerReg,
		Territory:          territoryReg,
		Clock:              clock.New(),
		IDGen:              idgen.NewPrefixed("empire"),
		PendingWarDuration: cfg.PendingWarDuration,
		WarDuration:        cfg.WarDuration,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create empire registry: %w", err)
	}

	if err := playerReg.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	if err := territoryReg.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load territory: %w", err)
	}
	if err := empireReg.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load empires: %w", err)
	}

	return empireReg, nil
}

// runWarTicker drives war phase transitions until the context is done.
// Transitions key off stored timestamps, so a missed tick only delays
// them; nothing accumulates.
func runWarTicker(ctx context.Context, reg *empire.Registry, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			out, err := reg.Tick(ctx)
			if err != nil {
				slog.Error("war tick failed", "error", err)
				continue
			}
			if out.Activated > 0 || out.Resolved > 0 {
				slog.Info("war tick applied transitions", "activated", out.Activated, "resolved", out.Resolved)
			}
		}
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
