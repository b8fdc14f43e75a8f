package flow

import (
	"context"
	"time"

	"github.com/viant/flow/runtime/execution"
	"go.uber.org/zap"
)

type loggingListener struct {
	logger *zap.Logger
}

// NewLoggingListener logs flow boundaries at info level and task boundaries at
// debug level. Failures are logged at error level.
func NewLoggingListener(logger *zap.Logger) Listener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &loggingListener{logger: logger}
}

func (l *loggingListener) fields(info *Info) []zap.Field {
	return []zap.Field{
		zap.String("execution_id", info.ExecutionID),
		zap.String("flow", info.Name),
		zap.String("kind", string(info.Kind)),
	}
}

func (l *loggingListener) OnFlowStart(_ context.Context, info *Info) {
	l.logger.Info("flow started", append(l.fields(info), zap.Int("tasks", info.Tasks))...)
}

func (l *loggingListener) OnTaskStart(_ context.Context, info *Info, index int, name string) {
	l.logger.Debug("task started", append(l.fields(info), zap.Int("index", index), zap.String("task", name))...)
}

func (l *loggingListener) OnTaskDone(_ context.Context, info *Info, index int, name string, err error, elapsed time.Duration) {
	fields := append(l.fields(info), zap.Int("index", index), zap.String("task", name), zap.Duration("elapsed", elapsed))
	if err != nil {
		l.logger.Error("task failed", append(fields, zap.Error(err))...)
		return
	}
	l.logger.Debug("task done", fields...)
}

func (l *loggingListener) OnFlowDone(_ context.Context, info *Info, status execution.Status, err error) {
	fields := append(l.fields(info), zap.String("status", string(status)), zap.Duration("elapsed", time.Since(info.StartedAt)))
	if err != nil {
		l.logger.Error("flow failed", append(fields, zap.Error(err))...)
		return
	}
	l.logger.Info("flow done", fields...)
}
