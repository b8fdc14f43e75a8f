package flow

import (
	"github.com/viant/flow/model/record"
	"github.com/viant/flow/policy"
	"github.com/viant/flow/progress"
	rflow "github.com/viant/flow/runtime/flow"
	"github.com/viant/flow/service/approval"
	"github.com/viant/flow/service/dao"
	"github.com/viant/flow/service/event"
	"github.com/viant/flow/tracing"
	"go.uber.org/zap"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the Service.
type Option func(s *Service)

// WithLogger sets the logger used by the logging listener.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithProgress sets the indicator handed to contexts created by NewContext.
// A *progress.Shared is used as is; any other indicator gets wrapped in one.
func WithProgress(p progress.Progress) Option {
	return func(s *Service) {
		s.progress = p
		s.shared, _ = p.(*progress.Shared)
	}
}

// WithPolicy gates every task with p.
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithApprovalService answers ask-mode policy prompts through svc.
func WithApprovalService(svc approval.Service) Option {
	return func(s *Service) { s.approval = svc }
}

// WithEventService publishes lifecycle events to service.
func WithEventService(service *event.Service) Option {
	return func(s *Service) { s.events = service }
}

// WithHistory records finished flows to store.
func WithHistory(store dao.Service[string, record.Record]) Option {
	return func(s *Service) { s.history = store }
}

// WithListener appends lifecycle listeners to every execution.
func WithListener(listeners ...rflow.Listener) Option {
	return func(s *Service) { s.listeners = append(s.listeners, listeners...) }
}

// WithFlowOptions appends runtime options applied to every execution.
func WithFlowOptions(opts ...rflow.Option) Option {
	return func(s *Service) { s.flowOptions = append(s.flowOptions, opts...) }
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile
// is empty the stdout exporter is used; otherwise traces are written to the
// supplied file path. The first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		if err := tracing.Init(serviceName, serviceVersion, outputFile); err != nil {
			s.initErr = err
			return
		}
		s.tracing = true
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter (OTLP, Jaeger, in-memory ...).
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		if err := tracing.InitWithExporter(serviceName, serviceVersion, exporter); err != nil {
			s.initErr = err
			return
		}
		s.tracing = true
	}
}
