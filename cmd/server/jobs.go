package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kvnochieng52/flight-distance/internal/service"
)

const pruneTimeout = time.Minute

// startJobs schedules deletion of expired bearer tokens.
func startJobs(schedule string, authSvc service.AuthService, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithLogger(cronLogger{logger}))

	if _, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
		defer cancel()

		// outcome and failures are logged by the service
		authSvc.PruneExpired(ctx)
	}); err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}

// cronLogger routes cron's own messages (job panics, schedule changes) to zap.
type cronLogger struct{ logger *zap.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, zap.Any("details", keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, zap.Error(err), zap.Any("details", keysAndValues))
}
