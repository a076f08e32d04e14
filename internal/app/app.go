package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"noobie-agent/internal/domain/ports"
	"noobie-agent/internal/usecase"
)

// runTimeout bounds a single scheduled run.
const runTimeout = 10 * time.Minute

// App manages the lifecycle of the daily post scheduler.
type App struct {
	cron     *cron.Cron
	usecase  *usecase.DailyPost
	logger   ports.Logger
	schedule string
}

// New constructs an App instance.
func New(daily *usecase.DailyPost, logger ports.Logger, schedule string) *App {
	return &App{
		cron:     cron.New(),
		usecase:  daily,
		logger:   logger,
		schedule: schedule,
	}
}

// RunOnce executes a single generation cycle outside the scheduler.
func (a *App) RunOnce(ctx context.Context) error {
	return a.usecase.Run(ctx)
}

// Run schedules the daily job and blocks until the context is cancelled.
// When runNow is set the first cycle executes immediately.
func (a *App) Run(ctx context.Context, runNow bool) error {
	if err := a.scheduleJob(); err != nil {
		return err
	}

	if runNow {
		a.logger.Info(ctx, "running first cycle immediately")
		if err := a.usecase.Run(ctx); err != nil {
			a.logger.Error(ctx, "initial run failed", "error", err)
		}
	}

	a.logger.Info(ctx, "starting scheduler", "cron", a.schedule)
	a.cron.Start()

	<-ctx.Done()
	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
	a.logger.Info(context.Background(), "scheduler stopped")
	return nil
}

func (a *App) scheduleJob() error {
	_, err := a.cron.AddFunc(a.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if err := a.usecase.Run(ctx); err != nil {
			a.logger.Error(ctx, "scheduled run failed", "error", err)
		}
	})
	return err
}
