package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/healthhelper/core/internal/domain/entities"
	"github.com/healthhelper/core/internal/infrastructure/logger"
)

// Notifier receives a reminder when its timer fires. Implementations
// must not block: they run on the timer goroutine.
type Notifier interface {
	Notify(r entities.Reminder)
}

// Scheduler arranges notification firings for reminders. Each reminder
// id owns at most one pending timer, held in a map so that toggling or
// deleting a reminder deterministically cancels it. After a firing the
// timer is re-armed for the following day, so daily recurrence survives
// for the lifetime of the Scheduler.
type Scheduler struct {
	clock    clock.Clock
	notifier Notifier
	logger   *logger.Logger

	mu     sync.Mutex
	timers map[int]armedTimer
	gen    uint64

	fired prometheus.Counter
}

// armedTimer is one pending firing. The generation disambiguates an
// expired timer's callback from a replacement armed for the same id
// while the callback was waiting on the mutex.
type armedTimer struct {
	gen   uint64
	timer *clock.Timer
}

// New creates a scheduler. Pass clock.New() outside of tests.
func New(clk clock.Clock, notifier Notifier, log *logger.Logger) *Scheduler {
	return &Scheduler{
		clock:    clk,
		notifier: notifier,
		logger:   log.WithComponent("scheduler"),
		timers:   make(map[int]armedTimer),
	}
}

// RegisterMetrics registers the notifications-fired counter with reg
func (s *Scheduler) RegisterMetrics(reg prometheus.Registerer) {
	s.fired = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reminder_notifications_fired_total",
		Help: "Total number of reminder notifications fired",
	})
	reg.MustRegister(s.fired)
}

// NextFireDelay computes the delay from now until the next wall-clock
// occurrence of value ("HH:MM", 24h): today if that slot is still
// ahead, tomorrow otherwise.
func NextFireDelay(now time.Time, value string) (time.Duration, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid reminder time %q: %w", value, err)
	}

	target := time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}

	return target.Sub(now), nil
}

// Schedule arms (or re-arms) the timer for r. Any pending timer for the
// same id is cancelled first, so calling Schedule after an update
// replaces the old firing. A disabled reminder only cancels.
func (s *Scheduler) Schedule(r entities.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(r.ID)

	if !r.Enabled {
		return
	}

	delay, err := NextFireDelay(s.clock.Now(), r.Time)
	if err != nil {
		// The store rejects malformed times, so this only happens when
		// callers bypass it.
		s.logger.Warnw("Not scheduling reminder with invalid time", "reminder_id", r.ID, "error", err)
		return
	}

	s.armLocked(r, delay)
	s.logger.Infow("Reminder scheduled", "reminder_id", r.ID, "title", r.Title, "fires_in", delay)
}

// Sync replaces the full timer set with one timer per enabled reminder
func (s *Scheduler) Sync(reminders []entities.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.timers {
		s.cancelLocked(id)
	}

	now := s.clock.Now()
	for _, r := range reminders {
		if !r.Enabled {
			continue
		}
		delay, err := NextFireDelay(now, r.Time)
		if err != nil {
			s.logger.Warnw("Skipping reminder with invalid time", "reminder_id", r.ID, "error", err)
			continue
		}
		s.armLocked(r, delay)
	}
}

// Cancel drops the pending timer for id, if any
func (s *Scheduler) Cancel(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(id)
}

// Stop cancels every pending timer
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.timers {
		s.cancelLocked(id)
	}
}

func (s *Scheduler) cancelLocked(id int) {
	if cur, ok := s.timers[id]; ok {
		cur.timer.Stop()
		delete(s.timers, id)
	}
}

func (s *Scheduler) armLocked(r entities.Reminder, delay time.Duration) {
	if cur, ok := s.timers[r.ID]; ok {
		cur.timer.Stop()
	}

	s.gen++
	gen := s.gen
	s.timers[r.ID] = armedTimer{
		gen: gen,
		timer: s.clock.AfterFunc(delay, func() {
			s.fire(r, gen)
		}),
	}
}

// fire runs on the timer goroutine when a reminder comes due. The timer
// may already have been cancelled or replaced by the time the callback
// takes the mutex, so only the generation that still owns the map entry
// is allowed to notify and re-arm; stale callbacks return silently.
func (s *Scheduler) fire(r entities.Reminder, gen uint64) {
	s.mu.Lock()
	cur, ok := s.timers[r.ID]
	if !ok || cur.gen != gen {
		s.mu.Unlock()
		return
	}

	// Re-arm for the next day before notifying so a slow notifier
	// cannot skew the schedule.
	delay, err := NextFireDelay(s.clock.Now(), r.Time)
	if err == nil {
		s.armLocked(r, delay)
	} else {
		delete(s.timers, r.ID)
	}
	s.mu.Unlock()

	s.logger.Infow("Reminder fired", "reminder_id", r.ID, "title", r.Title)
	if s.fired != nil {
		s.fired.Inc()
	}
	s.notifier.Notify(r)
}
