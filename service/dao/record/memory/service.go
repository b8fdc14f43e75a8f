package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/flow/model/record"
	"github.com/viant/flow/service/dao"
)

// Parameter names understood by List.
const (
	ParamName   = "name"
	ParamStatus = "status"
)

// Service implements an in-memory flow history. All operations are
// thread-safe and return copies of the stored records so that callers can
// mutate them freely.
type Service struct {
	records map[string]*record.Record
	limit   int
	order   []string
	mux     sync.RWMutex
}

var _ dao.Service[string, record.Record] = (*Service)(nil)

// Save persists (a clone of) the supplied record. When the store holds more
// than limit records the oldest one is evicted.
func (s *Service) Save(_ context.Context, r *record.Record) error {
	if r == nil {
		return dao.ErrNilEntity
	}
	if r.ID == "" {
		return dao.ErrInvalidID
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.records[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	s.records[r.ID] = r.Clone()
	if s.limit > 0 && len(s.order) > s.limit {
		evicted := s.order[0]
		s.order = s.order[1:]
		delete(s.records, evicted)
	}
	return nil
}

// Load retrieves a copy of the record or dao.ErrNotFound.
func (s *Service) Load(_ context.Context, id string) (*record.Record, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	s.mux.RLock()
	r, ok := s.records[id]
	s.mux.RUnlock()
	if !ok {
		return nil, dao.ErrNotFound
	}
	return r.Clone(), nil
}

// Delete removes a record.
func (s *Service) Delete(_ context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.records[id]; !ok {
		return dao.ErrNotFound
	}
	delete(s.records, id)
	for i, candidate := range s.order {
		if candidate == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns copies of the records ordered by start time, filtered by the
// name and status parameters when supplied.
func (s *Service) List(_ context.Context, parameters ...*dao.Parameter) ([]*record.Record, error) {
	s.mux.RLock()
	out := make([]*record.Record, 0, len(s.records))
	for _, r := range s.records {
		if matches(r, parameters) {
			out = append(out, r.Clone())
		}
	}
	s.mux.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out, nil
}

func matches(r *record.Record, parameters []*dao.Parameter) bool {
	for _, param := range parameters {
		if param == nil {
			continue
		}
		var actual string
		switch param.Name {
		case ParamName:
			actual = r.Name
		case ParamStatus:
			actual = r.Status
		default:
			continue
		}
		switch expected := param.Value.(type) {
		case string:
			if actual != expected {
				return false
			}
		case []string:
			found := false
			for _, candidate := range expected {
				if candidate == actual {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

// New creates a store keeping at most limit records (0 means unbounded).
func New(limit int) *Service {
	return &Service{records: map[string]*record.Record{}, limit: limit}
}
