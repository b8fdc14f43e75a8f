package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/viant/flow/service/dispatcher"
)

// Handler overrides a named operation. Handlers run while the service lock is
// held and must not call Execute.
type Handler func(ctx context.Context, op *dispatcher.Operation) (*dispatcher.Result, error)

// Listener observes every executed operation.
type Listener func(op *dispatcher.Operation, result *dispatcher.Result, err error)

// Option customises the service.
type Option func(s *Service)

// WithHandler registers a handler for operation name.
func WithHandler(name string, handler Handler) Option {
	return func(s *Service) { s.handlers[name] = handler }
}

// WithListener sets the operation listener.
func WithListener(listener Listener) Option {
	return func(s *Service) { s.listener = listener }
}

type resources map[dispatcher.Address]map[string]interface{}

func (r resources) clone() resources {
	ret := make(resources, len(r))
	for address, attributes := range r {
		ret[address] = cloneAttributes(attributes)
	}
	return ret
}

// Service is an in-memory management model. Resources are attribute maps
// keyed by address; composite operations are applied atomically.
type Service struct {
	mux       sync.Mutex
	resources resources
	handlers  map[string]Handler
	listener  Listener
	calls     []*dispatcher.Operation
	reloads   int
}

var _ dispatcher.Service = (*Service)(nil)

// Define adds or replaces the resource at address.
func (s *Service) Define(address dispatcher.Address, attributes map[string]interface{}) *Service {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.resources[address] = cloneAttributes(attributes)
	return s
}

// Resource returns a copy of the resource attributes.
func (s *Service) Resource(address dispatcher.Address) (map[string]interface{}, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	attributes, ok := s.resources[address]
	if !ok {
		return nil, false
	}
	return cloneAttributes(attributes), true
}

// Calls returns the operations executed so far, in order.
func (s *Service) Calls() []*dispatcher.Operation {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]*dispatcher.Operation(nil), s.calls...)
}

// Reloads returns the number of committed reload operations.
func (s *Service) Reloads() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.reloads
}

// Execute applies op to a working copy of the model and commits it when
// every step succeeded.
func (s *Service) Execute(ctx context.Context, op *dispatcher.Operation) (*dispatcher.Result, error) {
	if op == nil {
		return nil, dispatcher.ErrNilOperation
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mux.Lock()
	s.calls = append(s.calls, op)
	working := s.resources.clone()
	reloads := 0
	result, err := s.apply(ctx, working, op, &reloads)
	if err == nil {
		s.resources = working
		s.reloads += reloads
	}
	listener := s.listener
	s.mux.Unlock()
	if listener != nil {
		listener(op, result, err)
	}
	return result, err
}

func (s *Service) apply(ctx context.Context, model resources, op *dispatcher.Operation, reloads *int) (*dispatcher.Result, error) {
	if handler, ok := s.handlers[op.Name]; ok {
		return handler(ctx, op)
	}
	switch op.Name {
	case dispatcher.OpComposite:
		ret := &dispatcher.Result{}
		for i, step := range op.Steps {
			stepResult, err := s.apply(ctx, model, step, reloads)
			if err != nil {
				return nil, &dispatcher.ResultError{
					Operation:   op.String(),
					Description: fmt.Sprintf("step %d: %v", i+1, err),
				}
			}
			ret.Steps = append(ret.Steps, stepResult)
		}
		return ret, nil
	case dispatcher.OpReload:
		*reloads++
		return &dispatcher.Result{}, nil
	case dispatcher.OpReadChildrenNames:
		childType := paramString(op, dispatcher.ParamChildType)
		if childType == "" {
			return nil, failure(op, "missing parameter "+dispatcher.ParamChildType)
		}
		return &dispatcher.Result{Value: childrenNames(model, op.Address, childType)}, nil
	}

	attributes, ok := model[normalize(op.Address)]
	if !ok {
		return nil, failure(op, "resource not found")
	}
	switch op.Name {
	case dispatcher.OpReadResource:
		return &dispatcher.Result{Value: cloneAttributes(attributes)}, nil
	case dispatcher.OpReadAttribute:
		return &dispatcher.Result{Value: attributes[paramString(op, dispatcher.ParamName)]}, nil
	case dispatcher.OpWriteAttribute:
		name := paramString(op, dispatcher.ParamName)
		if name == "" {
			return nil, failure(op, "missing parameter "+dispatcher.ParamName)
		}
		attributes[name] = op.Params[dispatcher.ParamValue]
		return &dispatcher.Result{}, nil
	case dispatcher.OpUndefineAttribute:
		name := paramString(op, dispatcher.ParamName)
		if name == "" {
			return nil, failure(op, "missing parameter "+dispatcher.ParamName)
		}
		delete(attributes, name)
		return &dispatcher.Result{}, nil
	}
	return nil, failure(op, "unknown operation")
}

func childrenNames(model resources, parent dispatcher.Address, childType string) []interface{} {
	prefix := strings.TrimSuffix(string(normalize(parent)), "/") + "/" + childType + "="
	var names []string
	for address := range model {
		rest, ok := strings.CutPrefix(string(address), prefix)
		if ok && rest != "" && !strings.Contains(rest, "/") {
			names = append(names, rest)
		}
	}
	sort.Strings(names)
	ret := make([]interface{}, len(names))
	for i, name := range names {
		ret[i] = name
	}
	return ret
}

func normalize(address dispatcher.Address) dispatcher.Address {
	if address == "" {
		return dispatcher.Root
	}
	return address
}

func paramString(op *dispatcher.Operation, name string) string {
	if op.Params == nil {
		return ""
	}
	if v, ok := op.Params[name]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

func failure(op *dispatcher.Operation, description string) error {
	return &dispatcher.ResultError{Operation: op.String(), Description: description}
}

func cloneAttributes(attributes map[string]interface{}) map[string]interface{} {
	ret := make(map[string]interface{}, len(attributes))
	for k, v := range attributes {
		ret[k] = v
	}
	return ret
}

// New creates an empty model holding only the root resource.
func New(opts ...Option) *Service {
	s := &Service{
		resources: resources{dispatcher.Root: {}},
		handlers:  map[string]Handler{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
