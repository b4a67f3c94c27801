package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Assessment kinds.
const (
	KindTrim         = "trim"
	KindDistribution = "distribution"
	KindThresholds   = "thresholds"
	KindEvaluate     = "evaluate"
	KindLoadTest     = "load_test"
	KindCloth        = "cloth"
)

// Assessment is one computed engine result together with the time it was
// computed.
type Assessment struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	ModelID string `json:"model_id,omitempty"`

	// Outcome is the headline judgment: a trim shape, a test result
	// (pass|warning|reject|fail) or "computed" for plain calculations.
	Outcome string `json:"outcome"`

	// Summary is a one-line human-readable description.
	Summary string `json:"summary"`

	// Result is the engine result as returned to the caller.
	Result any `json:"result"`

	CreatedAt time.Time `json:"created_at"`
}

// Store is a thread-safe in-memory store of recent assessments, keyed by id.
// A background goroutine (Run) periodically evicts entries older than the
// configured TTL.
type Store struct {
	mu   sync.RWMutex
	data map[string]*Assessment
	ttl  time.Duration
	now  func() time.Time // injectable for deterministic tests
	log  *zap.Logger
}

// New creates a Store with the given TTL.
func New(ttl time.Duration, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		data: make(map[string]*Assessment),
		ttl:  ttl,
		now:  time.Now,
		log:  log,
	}
}

// Put stores a copy of a, assigning a new id when a.ID is empty and stamping
// CreatedAt. It returns the stored assessment. Callers must not modify
// a.Result after calling Put.
func (s *Store) Put(a Assessment) Assessment {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a.CreatedAt = s.now()
	s.data[a.ID] = &a
	return a
}

// Get returns the assessment with the given id and whether it was found.
// The entry may be stale if TTL has elapsed.
func (s *Store) Get(id string) (Assessment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.data[id]
	if !ok {
		return Assessment{}, false
	}
	return *a, true
}

// List returns the assessments computed within the TTL, newest first.
// Stale entries that have not yet been evicted are excluded.
func (s *Store) List() []Assessment {
	s.mu.RLock()
	cutoff := s.now().Add(-s.ttl)
	out := make([]Assessment, 0, len(s.data))
	for _, a := range s.data {
		if a.CreatedAt.After(cutoff) {
			out = append(out, *a)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Count returns the total number of entries currently held, including stale ones.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Evict removes entries whose CreatedAt is older than now minus TTL.
// It returns the number of entries removed.
func (s *Store) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.ttl)
	removed := 0
	for id, a := range s.data {
		if !a.CreatedAt.After(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Run starts the background TTL eviction loop. It ticks at half the TTL interval
// (minimum 1 second) so entries are evicted promptly. Run blocks until ctx is
// cancelled.
func (s *Store) Run(ctx context.Context) {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Evict(now); n > 0 {
				s.log.Debug("store: evicted stale assessments", zap.Int("count", n))
			}
		}
	}
}
