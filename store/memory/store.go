package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pyebwa/pyebwa"
	"github.com/pyebwa/pyebwa/evidence"
	"github.com/pyebwa/pyebwa/participant"
	"github.com/pyebwa/pyebwa/planter"
	"github.com/pyebwa/pyebwa/pool"
)

type Store struct {
	mu sync.RWMutex

	// Pool singleton
	pool *pool.Pool

	// Participant storage, keyed by owner
	participants map[string]*participant.Participant

	// Planter storage, keyed by owner
	planters map[string]*planter.Planter

	// Evidence storage, keyed by (planter owner, sequence)
	records map[string]*evidence.Record
}

func New() *Store {
	return &Store{
		participants: make(map[string]*participant.Participant),
		planters:     make(map[string]*planter.Planter),
		records:      make(map[string]*evidence.Record),
	}
}

func recordKey(planterOwner string, sequence uint32) string {
	return fmt.Sprintf("%s/%d", planterOwner, sequence)
}

// Pool Store implementation

func (s *Store) CreatePool(_ context.Context, p *pool.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pool != nil {
		return pyebwa.ErrPoolExists
	}
	s.pool = p.Clone()
	return nil
}

func (s *Store) GetPool(_ context.Context) (*pool.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.pool == nil {
		return nil, pyebwa.ErrPoolNotInitialized
	}
	return s.pool.Clone(), nil
}

func (s *Store) UpdatePool(_ context.Context, p *pool.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pool == nil {
		return pyebwa.ErrPoolNotInitialized
	}
	s.pool = p.Clone()
	return nil
}

// Participant Store implementation

func (s *Store) CreateParticipant(_ context.Context, p *participant.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.participants[p.Owner]; exists {
		return pyebwa.ErrAlreadyExists
	}
	s.participants[p.Owner] = p.Clone()
	return nil
}

func (s *Store) GetParticipant(_ context.Context, owner string) (*participant.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.participants[owner]; ok {
		return p.Clone(), nil
	}
	return nil, pyebwa.ErrParticipantNotFound
}

func (s *Store) UpdateParticipant(_ context.Context, p *participant.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.participants[p.Owner]; !exists {
		return pyebwa.ErrParticipantNotFound
	}
	s.participants[p.Owner] = p.Clone()
	return nil
}

func (s *Store) ListParticipants(_ context.Context, opts participant.ListOpts) ([]*participant.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*participant.Participant, 0, len(s.participants))
	for _, p := range s.participants {
		result = append(result, p.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Owner < result[j].Owner })

	return window(result, opts.Offset, opts.Limit), nil
}

// Planter Store implementation

func (s *Store) CreatePlanter(_ context.Context, p *planter.Planter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.planters[p.Owner]; exists {
		return pyebwa.ErrAlreadyExists
	}
	s.planters[p.Owner] = p.Clone()
	return nil
}

func (s *Store) GetPlanter(_ context.Context, owner string) (*planter.Planter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.planters[owner]; ok {
		return p.Clone(), nil
	}
	return nil, pyebwa.ErrPlanterNotFound
}

func (s *Store) UpdatePlanter(_ context.Context, p *planter.Planter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.planters[p.Owner]; !exists {
		return pyebwa.ErrPlanterNotFound
	}
	s.planters[p.Owner] = p.Clone()
	return nil
}

func (s *Store) ListPlanters(_ context.Context, opts planter.ListOpts) ([]*planter.Planter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*planter.Planter, 0, len(s.planters))
	for _, p := range s.planters {
		if opts.VerifiedOnly && !p.Verified {
			continue
		}
		result = append(result, p.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Owner < result[j].Owner })

	return window(result, opts.Offset, opts.Limit), nil
}

// Evidence Store implementation

func (s *Store) CreateEvidence(_ context.Context, r *evidence.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey(r.Planter, r.Sequence)
	if _, exists := s.records[key]; exists {
		return pyebwa.ErrAlreadyExists
	}
	s.records[key] = r.Clone()
	return nil
}

func (s *Store) GetEvidence(_ context.Context, planterOwner string, sequence uint32) (*evidence.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.records[recordKey(planterOwner, sequence)]; ok {
		return r.Clone(), nil
	}
	return nil, pyebwa.ErrEvidenceNotFound
}

func (s *Store) UpdateEvidence(_ context.Context, r *evidence.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey(r.Planter, r.Sequence)
	if _, exists := s.records[key]; !exists {
		return pyebwa.ErrEvidenceNotFound
	}
	s.records[key] = r.Clone()
	return nil
}

func (s *Store) ListEvidenceByPlanter(_ context.Context, planterOwner string, opts evidence.ListOpts) ([]*evidence.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*evidence.Record, 0)
	for _, r := range s.records {
		if r.Planter != planterOwner {
			continue
		}
		if opts.UnverifiedOnly && r.Verified {
			continue
		}
		result = append(result, r.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Sequence < result[j].Sequence })

	return window(result, opts.Offset, opts.Limit), nil
}

// Core methods

func (s *Store) Migrate(_ context.Context) error { return nil }

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// window applies offset/limit to a sorted result slice.
func window[T any](result []T, offset, limit int) []T {
	start := offset
	if start > len(result) {
		start = len(result)
	}
	end := start + limit
	if limit == 0 || end > len(result) {
		end = len(result)
	}
	return result[start:end]
}
