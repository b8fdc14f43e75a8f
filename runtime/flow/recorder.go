package flow

import (
	"context"
	"sync"
	"time"

	"github.com/viant/flow/internal/clock"
	"github.com/viant/flow/model/record"
	"github.com/viant/flow/runtime/execution"
	"github.com/viant/flow/service/dao"
	"go.uber.org/zap"
)

type recordingListener struct {
	store   dao.Service[string, record.Record]
	logger  *zap.Logger
	mux     sync.Mutex
	pending map[string]*record.Record
}

// NewRecordingListener saves one record.Record per finished flow to store.
func NewRecordingListener(store dao.Service[string, record.Record], logger *zap.Logger) Listener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &recordingListener{store: store, logger: logger, pending: map[string]*record.Record{}}
}

func (l *recordingListener) OnFlowStart(_ context.Context, info *Info) {
	l.mux.Lock()
	defer l.mux.Unlock()
	l.pending[info.ExecutionID] = &record.Record{
		ID:        info.ExecutionID,
		Name:      info.Name,
		ContextID: info.Context.ID,
		Kind:      info.Kind,
		Status:    string(execution.StatusRunning),
		StartedAt: info.StartedAt,
	}
}

func (l *recordingListener) OnTaskStart(context.Context, *Info, int, string) {}

func (l *recordingListener) OnTaskDone(_ context.Context, info *Info, index int, name string, err error, elapsed time.Duration) {
	l.mux.Lock()
	defer l.mux.Unlock()
	r, ok := l.pending[info.ExecutionID]
	if !ok {
		return
	}
	task := &record.Task{Index: index, Name: name, Duration: elapsed}
	if err != nil {
		task.Error = err.Error()
	}
	r.Tasks = append(r.Tasks, task)
}

func (l *recordingListener) OnFlowDone(ctx context.Context, info *Info, status execution.Status, err error) {
	l.mux.Lock()
	r, ok := l.pending[info.ExecutionID]
	delete(l.pending, info.ExecutionID)
	l.mux.Unlock()
	if !ok {
		return
	}
	endedAt := clock.Now()
	r.EndedAt = &endedAt
	r.Status = string(status)
	if err != nil {
		r.Error = err.Error()
	}
	if saveErr := l.store.Save(context.WithoutCancel(ctx), r); saveErr != nil {
		l.logger.Warn("failed to save flow record", zap.String("execution_id", r.ID), zap.Error(saveErr))
	}
}
