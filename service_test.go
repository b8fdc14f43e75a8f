package flow_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/flow"
	"github.com/viant/flow/policy"
	"github.com/viant/flow/progress"
	"github.com/viant/flow/runtime/execution"
	"github.com/viant/flow/service/approval"
	"github.com/viant/flow/service/dao"
	"github.com/viant/flow/service/event"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestService_Series(t *testing.T) {
	tracker := progress.NewTracker(nil)
	srv := flow.New(flow.WithProgress(tracker))
	defer srv.Close()

	fc := srv.NewContext(map[string]interface{}{"host": "h1"})
	read := flow.Named("read", flow.Func(func(_ context.Context, fc *execution.Context) error {
		host, _ := fc.GetString("host")
		fc.Set("port", host+":9990")
		return nil
	}))
	e := srv.Series(fc, read)
	_, err := e.Run(context.Background())
	require.NoError(t, err)
	port, _ := fc.GetString("port")
	assert.Equal(t, "h1:9990", port)
	assert.Equal(t, 1, tracker.Snapshot().Stops)

	records, err := srv.History(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, e.ID(), records[0].ID)
	assert.Equal(t, string(execution.StatusSuccess), records[0].Status)

	failed := srv.Sequential(srv.NewContext(nil), flow.Func(func(context.Context, *execution.Context) error {
		return errors.New("boom")
	}))
	_, err = failed.Run(context.Background())
	require.Error(t, err)

	records, err = srv.History(context.Background(), dao.NewParameter("status", string(execution.StatusFailure)))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, failed.ID(), records[0].ID)
	assert.Equal(t, "boom", records[0].Error)

	r, err := srv.Record(context.Background(), failed.ID())
	require.NoError(t, err)
	assert.Equal(t, failed.ID(), r.ID)
}

func TestService_SharedProgress(t *testing.T) {
	tracker := progress.NewTracker(nil)
	srv := flow.New(flow.WithProgress(tracker))
	defer srv.Close()

	release := make(chan struct{})
	first := srv.Series(srv.NewContext(nil), flow.Func(func(context.Context, *execution.Context) error {
		<-release
		return nil
	}))
	require.NoError(t, first.Go(context.Background(), nil))
	require.Eventually(t, func() bool { return tracker.Snapshot().Running }, time.Second, time.Millisecond)

	var ran bool
	_, err := srv.Series(srv.NewContext(nil), flow.Func(func(context.Context, *execution.Context) error {
		ran = true
		return nil
	})).Run(context.Background())
	assert.ErrorIs(t, err, progress.ErrBusy)
	assert.False(t, ran)

	_, err = srv.Parallel(srv.NewContext(nil)).Run(context.Background())
	assert.ErrorIs(t, err, progress.ErrBusy)

	close(release)
	<-first.Done()
	assert.True(t, first.Context().Successful())
	snapshot := tracker.Snapshot()
	assert.Equal(t, 1, snapshot.Starts)
	assert.Equal(t, 1, snapshot.Stops)
}

func TestService_ProgressWait(t *testing.T) {
	cfg := flow.DefaultConfig()
	cfg.Progress.Wait = true
	var owners, maxOwners atomic.Int32
	tracker := progress.NewTracker(nil)
	counting := &ownerCounter{Progress: tracker, owners: &owners, max: &maxOwners}
	srv, err := flow.NewFromConfig(cfg, flow.WithProgress(counting))
	require.NoError(t, err)
	defer srv.Close()

	release := make(chan struct{})
	first := srv.Series(srv.NewContext(nil), flow.Func(func(context.Context, *execution.Context) error {
		<-release
		return nil
	}))
	require.NoError(t, first.Go(context.Background(), nil))
	require.Eventually(t, func() bool { return tracker.Snapshot().Running }, time.Second, time.Millisecond)

	second := srv.Series(srv.NewContext(nil), flow.Func(func(context.Context, *execution.Context) error { return nil }))
	require.NoError(t, second.Go(context.Background(), nil))
	select {
	case <-second.Done():
		t.Fatal("second flow ran while the indicator was owned")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-first.Done()
	<-second.Done()
	assert.True(t, second.Context().Successful())
	assert.EqualValues(t, 1, maxOwners.Load())
	assert.Equal(t, 2, tracker.Snapshot().Stops)
}

// ownerCounter records how many flows hold the indicator at once.
type ownerCounter struct {
	progress.Progress
	owners *atomic.Int32
	max    *atomic.Int32
}

func (o *ownerCounter) Start(total int) {
	n := o.owners.Add(1)
	for {
		m := o.max.Load()
		if n <= m || o.max.CompareAndSwap(m, n) {
			break
		}
	}
	o.Progress.Start(total)
}

func (o *ownerCounter) Stop() {
	o.Progress.Stop()
	o.owners.Add(-1)
}

func TestService_Events(t *testing.T) {
	cfg := flow.DefaultConfig()
	cfg.Events.Enabled = true
	srv, err := flow.NewFromConfig(cfg)
	require.NoError(t, err)
	defer srv.Close()

	noop := flow.Func(func(context.Context, *execution.Context) error { return nil })
	_, err = srv.Series(srv.NewContext(nil), noop).Run(context.Background())
	require.NoError(t, err)

	var last *event.Event[any]
	for srv.Events().Pending() > 0 {
		last, err = srv.Events().Consume(context.Background())
		require.NoError(t, err)
	}
	require.NotNil(t, last)
	assert.Equal(t, event.TypeFlowDone, last.Context.EventType)
	assert.Equal(t, string(execution.StatusSuccess), last.Context.Status)
}

func TestService_PolicyAndTimeout(t *testing.T) {
	cfg := flow.DefaultConfig()
	cfg.Flow.Timeout = 20 * time.Millisecond
	cfg.Policy = &policy.Config{Mode: policy.ModeAuto, BlockList: []string{"reload"}}
	srv, err := flow.NewFromConfig(cfg)
	require.NoError(t, err)

	var reloaded bool
	reload := flow.Named("reload", flow.Func(func(context.Context, *execution.Context) error {
		reloaded = true
		return nil
	}))
	_, err = srv.Series(srv.NewContext(nil), reload).Run(context.Background())
	assert.ErrorIs(t, err, policy.ErrDenied)
	assert.False(t, reloaded)

	wait := flow.Func(func(ctx context.Context, _ *execution.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	fc := srv.NewContext(nil)
	_, err = srv.Series(fc, wait).Run(context.Background())
	assert.ErrorIs(t, err, flow.ErrTimeout)
	assert.True(t, fc.TimedOut())
}

func TestService_Whilst(t *testing.T) {
	srv := flow.New()
	fc := srv.NewContext(map[string]interface{}{"n": 0})
	task := flow.Func(func(_ context.Context, fc *execution.Context) error {
		n, _ := fc.GetInt("n")
		fc.Set("n", n+1)
		return nil
	})
	_, err := srv.Whilst(fc, func(fc *execution.Context) bool {
		n, _ := fc.GetInt("n")
		return n < 4
	}, task, 0).Run(context.Background())
	require.NoError(t, err)
	n, _ := fc.GetInt("n")
	assert.Equal(t, 4, n)
}

func TestService_Tracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	srv := flow.New(flow.WithTracingExporter("flow-test", "0.0.1", exporter))
	noop := flow.Named("noop", flow.Func(func(context.Context, *execution.Context) error { return nil }))
	_, err := srv.Series(srv.NewContext(nil), noop).Run(context.Background())
	require.NoError(t, err)

	var names []string
	for _, span := range exporter.GetSpans() {
		names = append(names, span.Name)
	}
	assert.Contains(t, names, "task noop")
	assert.Contains(t, names, "flow series")
}

func TestService_Approval(t *testing.T) {
	cfg := flow.DefaultConfig()
	cfg.Policy = &policy.Config{Mode: policy.ModeAsk}
	srv, err := flow.NewFromConfig(cfg)
	require.NoError(t, err)
	require.NotNil(t, srv.Approval())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := approval.AutoApprove(ctx, srv.Approval(), 5*time.Millisecond)
	defer stop()

	var ran bool
	reload := flow.Named("reload", flow.Func(func(context.Context, *execution.Context) error {
		ran = true
		return nil
	}))
	_, err = srv.Series(srv.NewContext(nil), reload).Run(ctx)
	require.NoError(t, err)
	assert.True(t, ran)
}
