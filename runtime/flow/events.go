package flow

import (
	"context"
	"time"

	"github.com/viant/flow/runtime/execution"
	"github.com/viant/flow/service/event"
	"go.uber.org/zap"
)

type eventListener struct {
	service *event.Service
	logger  *zap.Logger
}

// NewEventListener publishes a lifecycle event for every callback. Publish
// failures are logged and never affect the flow.
func NewEventListener(service *event.Service, logger *zap.Logger) Listener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &eventListener{service: service, logger: logger}
}

func (l *eventListener) publish(ctx context.Context, eCtx *event.Context, data interface{}) {
	if err := l.service.Publish(context.WithoutCancel(ctx), event.NewEvent[any](eCtx, data)); err != nil {
		l.logger.Warn("failed to publish flow event",
			zap.String("event", eCtx.EventType),
			zap.String("execution_id", eCtx.ExecutionID),
			zap.Error(err))
	}
}

func (l *eventListener) context(info *Info, eventType string) *event.Context {
	return &event.Context{
		ExecutionID: info.ExecutionID,
		ContextID:   info.Context.ID,
		Flow:        info.Name,
		EventType:   eventType,
		TaskIndex:   -1,
	}
}

func (l *eventListener) OnFlowStart(ctx context.Context, info *Info) {
	l.publish(ctx, l.context(info, event.TypeFlowStarted), info.Tasks)
}

func (l *eventListener) OnTaskStart(ctx context.Context, info *Info, index int, name string) {
	eCtx := l.context(info, event.TypeTaskStarted)
	eCtx.TaskIndex = index
	eCtx.TaskName = name
	l.publish(ctx, eCtx, nil)
}

func (l *eventListener) OnTaskDone(ctx context.Context, info *Info, index int, name string, err error, elapsed time.Duration) {
	eCtx := l.context(info, event.TypeTaskDone)
	eCtx.TaskIndex = index
	eCtx.TaskName = name
	eCtx.TimeTakenMs = int(elapsed.Milliseconds())
	eCtx.Status = string(execution.StatusSuccess)
	if err != nil {
		eCtx.Status = string(execution.StatusFailure)
		eCtx.Error = err.Error()
	}
	l.publish(ctx, eCtx, nil)
}

func (l *eventListener) OnFlowDone(ctx context.Context, info *Info, status execution.Status, err error) {
	eCtx := l.context(info, event.TypeFlowDone)
	eCtx.Status = string(status)
	eCtx.TimeTakenMs = int(time.Since(info.StartedAt).Milliseconds())
	if err != nil {
		eCtx.Error = err.Error()
	}
	l.publish(ctx, eCtx, info.Context.Snapshot())
}
