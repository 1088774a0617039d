// Package memory provides an in-process QuotationStore.
// It backs local runs (store uri "memory://") and tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jsamuelsen/quotation-service/internal/domain"
)

type entry struct {
	seq uint64
	q   domain.Quotation
}

// Store keeps quotations in a slice guarded by a mutex.
// The zero value is not usable; call New.
type Store struct {
	mu      sync.RWMutex
	entries []entry
	seq     uint64
	last    time.Time
	failErr error
	now     func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{now: time.Now}
}

// FailWith makes every subsequent operation fail with err wrapped in a
// *domain.PersistenceError. Passing nil restores normal operation.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failErr = err
}

// Create stores a copy of q with a fresh ObjectID hex identity and a
// CreatedAt that never goes backwards relative to earlier inserts. Event
// dates are kept at millisecond precision in UTC, as a BSON datetime is.
func (s *Store) Create(ctx context.Context, q *domain.Quotation) (*domain.Quotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewPersistenceError("insert", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failErr != nil {
		return nil, domain.NewPersistenceError("insert", s.failErr)
	}

	createdAt := s.now().UTC().Truncate(time.Millisecond)
	if createdAt.Before(s.last) {
		createdAt = s.last
	}

	s.last = createdAt
	s.seq++

	stored := clone(q)
	stored.ID = primitive.NewObjectID().Hex()
	stored.EventDate = stored.EventDate.UTC().Truncate(time.Millisecond)
	stored.CreatedAt = createdAt

	s.entries = append(s.entries, entry{seq: s.seq, q: *stored})

	return clone(stored), nil
}

// ListByEventDate returns every record, earliest event first.
// Equal event dates keep insertion order.
func (s *Store) ListByEventDate(ctx context.Context) ([]*domain.Quotation, error) {
	return s.list(ctx, func(a, b entry) int {
		if c := a.q.EventDate.Compare(b.q.EventDate); c != 0 {
			return c
		}

		return cmp.Compare(a.seq, b.seq)
	})
}

// ListByCreatedDate returns every record, most recent first.
// Equal timestamps list the later insert first.
func (s *Store) ListByCreatedDate(ctx context.Context) ([]*domain.Quotation, error) {
	return s.list(ctx, func(a, b entry) int {
		if c := b.q.CreatedAt.Compare(a.q.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(b.seq, a.seq)
	})
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

func (s *Store) list(ctx context.Context, order func(a, b entry) int) ([]*domain.Quotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewPersistenceError("find", err)
	}

	s.mu.RLock()
	if s.failErr != nil {
		err := s.failErr
		s.mu.RUnlock()

		return nil, domain.NewPersistenceError("find", err)
	}

	snapshot := slices.Clone(s.entries)
	s.mu.RUnlock()

	slices.SortStableFunc(snapshot, order)

	out := make([]*domain.Quotation, 0, len(snapshot))
	for i := range snapshot {
		out = append(out, clone(&snapshot[i].q))
	}

	return out, nil
}

func clone(q *domain.Quotation) *domain.Quotation {
	c := *q
	c.ServicesRequested = slices.Clone(q.ServicesRequested)

	return &c
}
