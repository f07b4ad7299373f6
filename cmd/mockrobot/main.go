package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danmuck/rbkctl/internal/config"
	"github.com/danmuck/rbkctl/internal/mock"
	"github.com/danmuck/rbkctl/internal/observability"
	"github.com/danmuck/rbkctl/internal/sim"
	"github.com/danmuck/rbkctl/internal/waypoint"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mockrobot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "mockrobot config.toml path (optional)")
	heartbeat := flag.Duration("heartbeat", time.Minute, "status log interval")
	flag.Parse()

	cfg, err := config.LoadMockRobotConfig(*configPath)
	if err != nil {
		return err
	}

	logger := observability.InitLogger("mockrobot", cfg.Log.Level)
	observability.RegisterMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := waypoint.NewStore(cfg.WaypointSeed())
	robot := sim.NewRobot(cfg.SimConfig(), store)
	robotID := robot.Info().ID

	svc := mock.NewService(cfg.MockConfig(), robot)
	if err := svc.Bind(ctx); err != nil {
		return err
	}

	go robot.Run(ctx)

	sidecar := waypoint.NewServer(robotID, cfg.Sidecar.Addr, cfg.Sidecar.CorsOrigins, store)
	httpErr := make(chan error, 1)
	go func() {
		httpErr <- sidecar.Serve()
	}()

	logger.Info().
		Str("robot", robotID).
		Str("host", cfg.Listen.Host).
		Str("sidecar", cfg.Sidecar.Addr).
		Int("waypoints", store.Len()).
		Msg("mockrobot ready")

	ticker := time.NewTicker(*heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Str("robot", robotID).Msg("mockrobot shutdown")
			return nil
		case err := <-httpErr:
			return fmt.Errorf("sidecar: %w", err)
		case <-ticker.C:
			battery := robot.Battery()
			pose := robot.Pose()
			nav := robot.NavStatus()
			logger.Info().
				Str("robot", robotID).
				Float64("battery", battery.Level).
				Float64("x", pose.X).
				Float64("y", pose.Y).
				Int("task_status", int(nav.TaskStatus)).
				Int64("sessions", svc.ClientCount()).
				Msg("mockrobot status")
		}
	}
}
