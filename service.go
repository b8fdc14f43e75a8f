package flow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/viant/flow/model/record"
	"github.com/viant/flow/policy"
	"github.com/viant/flow/progress"
	"github.com/viant/flow/runtime/execution"
	rflow "github.com/viant/flow/runtime/flow"
	"github.com/viant/flow/service/approval"
	amemory "github.com/viant/flow/service/approval/memory"
	"github.com/viant/flow/service/dao"
	rmemory "github.com/viant/flow/service/dao/record/memory"
	"github.com/viant/flow/service/event"
	mmemory "github.com/viant/flow/service/messaging/memory"
	"go.uber.org/zap"
)

// Service builds flow executions wired with the configured logger, policy,
// tracing, events and history.
type Service struct {
	config      *Config
	logger      *zap.Logger
	progress    progress.Progress
	shared      *progress.Shared
	policy      *policy.Policy
	approval    approval.Service
	events      *event.Service
	history     dao.Service[string, record.Record]
	listeners   []rflow.Listener
	flowOptions []rflow.Option
	tracing     bool
	initErr     error
}

// New creates a service with DefaultConfig.
func New(options ...Option) *Service {
	ret := &Service{config: DefaultConfig()}
	ret.init(options)
	return ret
}

// NewFromConfig creates a service from cfg; options override cfg.
func NewFromConfig(cfg *Config, options ...Option) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := cfg.Log.Logger()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	var prelude []Option
	prelude = append(prelude, WithLogger(logger))
	if cfg.Policy != nil {
		prelude = append(prelude, WithPolicy(policy.FromConfig(cfg.Policy)))
	}
	if cfg.Tracing.Enabled {
		prelude = append(prelude, WithTracing(cfg.Tracing.Service, cfg.Tracing.Version, cfg.Tracing.Output))
	}
	ret := &Service{config: cfg}
	ret.init(append(prelude, options...))
	if ret.initErr != nil {
		return nil, ret.initErr
	}
	return ret, nil
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
}

func (s *Service) ensureBaseSetup() {
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.events == nil && s.config.Events.Enabled {
		queueConfig := mmemory.DefaultConfig()
		queueConfig.QueueBuffer = s.config.Events.Buffer
		queueConfig.DropWhenFull = s.config.Events.DropWhenFull
		s.events = event.New(queueConfig, s.logger)
	}
	if s.history == nil && s.config.History.Enabled {
		s.history = rmemory.New(s.config.History.Limit)
	}
	if s.policy != nil && strings.EqualFold(s.policy.Mode, policy.ModeAsk) && s.policy.Ask == nil {
		if s.approval == nil {
			s.approval = amemory.New()
		}
		s.policy.Ask = approval.AskFunc(s.approval, s.config.Flow.Timeout)
	}
	if s.progress != nil && s.shared == nil {
		s.shared = progress.NewShared(s.progress)
	}
}

// Config returns the service configuration.
func (s *Service) Config() *Config { return s.config }

// Logger returns the service logger.
func (s *Service) Logger() *zap.Logger { return s.logger }

// Approval returns the approval service backing ask-mode policies, or nil.
func (s *Service) Approval() approval.Service { return s.approval }

// Events returns the event service or nil when events are disabled.
func (s *Service) Events() *event.Service { return s.events }

// NewContext creates a flow context bound to the service indicator. Only one
// flow owns the indicator at a time; others fail with progress.ErrBusy, or
// queue when progress.wait is set.
func (s *Service) NewContext(values map[string]interface{}, opts ...execution.Option) *execution.Context {
	var p progress.Progress
	if s.shared != nil {
		p = s.shared
	}
	if values != nil {
		opts = append([]execution.Option{execution.WithState(values)}, opts...)
	}
	return execution.NewContext(p, opts...)
}

// Series composes tasks to run one after another.
func (s *Service) Series(fc *execution.Context, tasks ...Task) *Execution {
	return rflow.Series(fc, tasks...).With(s.options()...)
}

// Sequential is an alias of Series.
func (s *Service) Sequential(fc *execution.Context, tasks ...Task) *Execution {
	return s.Series(fc, tasks...)
}

// Parallel composes tasks to run concurrently.
func (s *Service) Parallel(fc *execution.Context, tasks ...Task) *Execution {
	return rflow.Parallel(fc, tasks...).With(s.options()...)
}

// Whilst repeats task while cond holds. A zero period falls back to
// flow.period from the configuration.
func (s *Service) Whilst(fc *execution.Context, cond Condition, task Task, period time.Duration) *Execution {
	if period == 0 {
		period = s.config.Flow.Period
	}
	return rflow.Whilst(fc, cond, task, period).With(s.options()...)
}

// History lists recorded executions, newest last.
func (s *Service) History(ctx context.Context, parameters ...*dao.Parameter) ([]*record.Record, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.List(ctx, parameters...)
}

// Record loads the history record of one execution.
func (s *Service) Record(ctx context.Context, executionID string) (*record.Record, error) {
	if s.history == nil {
		return nil, dao.ErrNotFound
	}
	return s.history.Load(ctx, executionID)
}

// Close stops background event handlers and flushes the logger.
func (s *Service) Close() error {
	if s.events != nil {
		s.events.Close()
	}
	_ = s.logger.Sync()
	return nil
}

func (s *Service) options() []rflow.Option {
	listeners := []rflow.Listener{rflow.NewLoggingListener(s.logger)}
	if s.events != nil {
		listeners = append(listeners, rflow.NewEventListener(s.events, s.logger))
	}
	if s.history != nil {
		listeners = append(listeners, rflow.NewRecordingListener(s.history, s.logger))
	}
	listeners = append(listeners, s.listeners...)
	ret := []rflow.Option{
		rflow.WithListener(listeners...),
		rflow.WithTracing(s.tracing),
		rflow.WithTimeout(s.config.Flow.Timeout),
		rflow.WithProgressWait(s.config.Progress.Wait),
	}
	if s.policy != nil {
		ret = append(ret, rflow.WithPolicy(s.policy))
	}
	return append(ret, s.flowOptions...)
}
