package scheduler

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/healthhelper/core/internal/infrastructure/logger"
	"github.com/healthhelper/core/internal/ports"
)

// WaterSweep periodically reports enabled water reminders. Actual
// delivery still goes through the per-reminder timers; the sweep is a
// coarse hydration heartbeat in the log.
type WaterSweep struct {
	clock    clock.Clock
	store    ports.ReminderStore
	logger   *logger.Logger
	interval time.Duration
}

// NewWaterSweep creates a sweep with the given interval
func NewWaterSweep(clk clock.Clock, store ports.ReminderStore, log *logger.Logger, interval time.Duration) *WaterSweep {
	return &WaterSweep{
		clock:    clk,
		store:    store,
		logger:   log.WithComponent("water_sweep"),
		interval: interval,
	}
}

// Run blocks, sweeping on every interval tick until ctx is cancelled.
// Call it in a background goroutine.
func (w *WaterSweep) Run(ctx context.Context) {
	ticker := w.clock.Ticker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *WaterSweep) sweep(ctx context.Context) {
	count := 0
	for _, r := range w.store.List(ctx) {
		if r.Enabled && r.Type == "water" {
			count++
		}
	}
	w.logger.Infow("Sending water reminder notifications", "enabled_water_reminders", count)
}
