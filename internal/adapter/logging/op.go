package logging

import (
	"context"
	"time"

	"noobie-agent/internal/domain/ports"
)

// Op tracks a named operation so its duration and outcome are logged on
// every exit path.
//
//	op := logging.Begin(ctx, logger, "fetch trending news")
//	defer func() { op.End(err) }()
type Op struct {
	ctx    context.Context
	logger ports.Logger
	name   string
	start  time.Time
}

// Begin logs the start of an operation and starts its timer.
func Begin(ctx context.Context, logger ports.Logger, name string) *Op {
	if logger != nil {
		logger.Info(ctx, "operation started", "operation", name)
	}
	return &Op{ctx: ctx, logger: logger, name: name, start: time.Now()}
}

// End records the operation outcome. A nil error logs completion, a non-nil
// error logs failure. Safe to call with either outcome exactly once.
func (o *Op) End(err error) {
	if o == nil || o.logger == nil {
		return
	}
	duration := time.Since(o.start)
	if err != nil {
		o.logger.Error(o.ctx, "operation failed",
			"operation", o.name,
			"duration", duration,
			"error", err)
		return
	}
	o.logger.Info(o.ctx, "operation completed",
		"operation", o.name,
		"duration", duration)
}
