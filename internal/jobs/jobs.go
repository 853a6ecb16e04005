// Package jobs runs the periodic retention sweeps.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const sweepTimeout = 5 * time.Minute

// Sweep deletes rows older than cutoff and returns how many it removed.
type Sweep func(ctx context.Context, cutoff time.Time) (int64, error)

type Task struct {
	Name      string
	Spec      string
	Retention time.Duration
	Sweep     Sweep
}

type Scheduler struct {
	cron  *cron.Cron
	tasks []Task
	now   func() time.Time
}

// New schedules the retention tasks for db. Nothing runs until Start.
func New(db *gorm.DB, cfg *config.Config) (*Scheduler, error) {
	return NewScheduler([]Task{
		{Name: "system_logs", Spec: "15 3 * * *", Retention: cfg.LogRetention, Sweep: SystemLogSweep(db)},
		{Name: "password_reset_attempts", Spec: "30 3 * * *", Retention: cfg.ResetRetention, Sweep: ResetAttemptSweep(db)},
		{Name: "password_reset_tokens", Spec: "45 3 * * *", Retention: cfg.ResetRetention, Sweep: ResetTokenSweep(db)},
	})
}

func NewScheduler(tasks []Task) (*Scheduler, error) {
	s := &Scheduler{
		cron:  cron.New(cron.WithLocation(time.UTC)),
		tasks: tasks,
		now:   time.Now,
	}
	for _, t := range tasks {
		t := t
		if _, err := s.cron.AddFunc(t.Spec, func() { s.run(t) }); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("retention jobs started", "tasks", len(s.tasks))
}

// Stop waits for running sweeps to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		slog.Warn("retention jobs did not stop in time")
	}
}

// RunAll runs every task once, in order.
func (s *Scheduler) RunAll() {
	for _, t := range s.tasks {
		s.run(t)
	}
}

func (s *Scheduler) run(t Task) {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	cutoff := s.now().Add(-t.Retention)
	deleted, err := t.Sweep(ctx, cutoff)
	if err != nil {
		logging.LogError(slog.Default(), "retention sweep failed", err, "task", t.Name)
		return
	}
	if deleted > 0 {
		slog.Info("retention sweep completed", "task", t.Name, "deleted", deleted, "cutoff", cutoff)
	}
}

func SystemLogSweep(db *gorm.DB) Sweep {
	return func(ctx context.Context, cutoff time.Time) (int64, error) {
		res := db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
		return res.RowsAffected, res.Error
	}
}

func ResetAttemptSweep(db *gorm.DB) Sweep {
	return func(ctx context.Context, cutoff time.Time) (int64, error) {
		res := db.WithContext(ctx).Where("attempt_time < ?", cutoff).Delete(&models.PasswordResetAttempt{})
		return res.RowsAffected, res.Error
	}
}

// ResetTokenSweep removes codes that expired before cutoff, used or not.
func ResetTokenSweep(db *gorm.DB) Sweep {
	return func(ctx context.Context, cutoff time.Time) (int64, error) {
		res := db.WithContext(ctx).Where("expiry_date < ?", cutoff).Delete(&models.PasswordResetToken{})
		return res.RowsAffected, res.Error
	}
}
