package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"

	"github.com/healthhelper/core/internal/adapters/notify"
	"github.com/healthhelper/core/internal/adapters/repository"
	"github.com/healthhelper/core/internal/infrastructure/config"
	"github.com/healthhelper/core/internal/infrastructure/logger"
	"github.com/healthhelper/core/internal/infrastructure/server"
	"github.com/healthhelper/core/internal/scheduler"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Health Helper API server",
		Long:  "Start the Health Helper API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Health Helper version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Health Helper v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	// Reminder state lives in memory only: a restart clears it.
	store := repository.NewReminderStore()

	clk := clock.New()
	notifier := notify.NewLogNotifier(appLogger)
	sched := scheduler.New(clk, notifier, appLogger)
	defer sched.Stop()

	srv, err := server.New(cfg, store, sched, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	// Periodic hydration sweep, stopped with the server
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweep := scheduler.NewWaterSweep(clk, store, appLogger, cfg.Scheduler.WaterSweepInterval)
	go sweep.Run(ctx)

	appLogger.Info("Starting Health Helper API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
	)

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			appLogger.Info("Server stopped", "error", err)
		}
	}()

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Shutdown failed", "error", err)
	}
}
