package main

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
	"github.com/healthhelper/core/internal/client"
	"github.com/healthhelper/core/internal/infrastructure/config"
	"github.com/healthhelper/core/internal/infrastructure/logger"
	"github.com/healthhelper/core/internal/scheduler"
)

// The agent is the local half of the reminder system: it mirrors the
// server's reminder list and fires notifications on this machine at
// the configured times. Firings are log lines; there is no real push
// channel.

func main() {
	var (
		serverURL string
		refresh   time.Duration
	)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Mirror reminders from a Health Helper server and fire local notifications",
		Run: func(cmd *cobra.Command, args []string) {
			runWatch(serverURL, refresh)
		},
	}
	watchCmd.Flags().StringVar(&serverURL, "server", "http://localhost:5000", "Base URL of the Health Helper API")
	watchCmd.Flags().DurationVar(&refresh, "refresh", 5*time.Minute, "How often to re-fetch the reminder list")

	rootCmd := &cobra.Command{
		Use:   "healthhelper-agent",
		Short: "Health Helper notification agent",
	}
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print agent version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Health Helper Agent v1.0.0")
		},
	})

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}

func runWatch(serverURL string, refresh time.Duration) {
	appLogger, err := logger.New(config.LoggerConfig{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	sched := scheduler.New(clock.New(), notify.NewLogNotifier(appLogger), appLogger)
	defer sched.Stop()

	api := client.New(serverURL, appLogger, client.WithScheduler(sched))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	load := func() {
		reminders, err := api.Load(ctx)
		if err != nil {
			appLogger.Warnw("Failed to load reminders", "error", err)
			return
		}
		appLogger.Infow("Reminders synced", "count", len(reminders))
	}

	load()

	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			load()
		case <-sigCh:
			appLogger.Info("Shutting down agent")
			return
		}
	}
}
