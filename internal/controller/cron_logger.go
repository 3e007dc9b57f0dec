package controller

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// cronLogger adapts slog to the cron.Logger interface. Scheduler chatter
// (including skipped ticks from SkipIfStillRunning) lands at debug level.
type cronLogger struct {
	logger *slog.Logger
}

func newCronLogger() cron.Logger {
	return cronLogger{logger: slog.Default()}
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]interface{}{"error", err}, keysAndValues...)
	l.logger.Error(msg, args...)
}
