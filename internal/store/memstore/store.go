// AngelaMos | 2026
// store.go

// Package memstore is an in-memory implementation of every entity
// repository. It follows the Postgres repositories' semantics, including the
// soft-delete predicate, partial unique indexes, filters and pagination.
package memstore

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/carterperez-dev/jobboard/internal/application"
	"github.com/carterperez-dev/jobboard/internal/company"
	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/job"
	"github.com/carterperez-dev/jobboard/internal/user"
)

type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	clock time.Time
	seq   int64

	users        map[int64]user.User
	companies    map[int64]company.Company
	jobs         map[int64]job.Job
	applications map[int64]application.Application
}

func New() *Store {
	return &Store{
		clock:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		users:        make(map[int64]user.User),
		companies:    make(map[int64]company.Company),
		jobs:         make(map[int64]job.Job),
		applications: make(map[int64]application.Application),
	}
}

type snapshot struct {
	clock        time.Time
	seq          int64
	users        map[int64]user.User
	companies    map[int64]company.Company
	jobs         map[int64]job.Job
	applications map[int64]application.Application
}

// InTx serializes transactions and restores the pre-transaction state when
// fn fails. fn receives a nil DBTX; memstore repositories ignore WithTx.
func (s *Store) InTx(_ context.Context, fn func(tx core.DBTX) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(nil); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) Users() user.Repository {
	return &userRepo{s: s}
}

func (s *Store) Companies() company.Repository {
	return &companyRepo{s: s}
}

func (s *Store) Jobs() job.Repository {
	return &jobRepo{s: s}
}

func (s *Store) Applications() application.Repository {
	return &applicationRepo{s: s}
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return snapshot{
		clock:        s.clock,
		seq:          s.seq,
		users:        maps.Clone(s.users),
		companies:    maps.Clone(s.companies),
		jobs:         maps.Clone(s.jobs),
		applications: maps.Clone(s.applications),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clock = snap.clock
	s.seq = snap.seq
	s.users = snap.users
	s.companies = snap.companies
	s.jobs = snap.jobs
	s.applications = snap.applications
}

// tick advances the store clock by one second so creation order is total.
// Callers hold mu.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// retire stamps a deletion time on ts. Callers hold mu.
func (s *Store) retire(ts *core.Timestamps) {
	now := s.tick()
	ts.DeletedAt = &now
	ts.UpdatedAt = now
}

type sortKeys[T any] map[string]func(a, b *T) int

// paginate orders items the way PageRequest.OrderBy does in SQL, with the id
// as tie-breaker, and slices out the requested page.
func paginate[T any](
	items []T,
	req core.PageRequest,
	keys sortKeys[T],
	fallback string,
	id func(*T) int64,
) ([]T, int) {
	compare, ok := keys[strings.ToLower(req.Sort)]
	desc := req.Desc
	if !ok {
		compare = keys[fallback]
		desc = true
	}

	slices.SortStableFunc(items, func(a, b T) int {
		c := compare(&a, &b)
		if c == 0 {
			c = cmp.Compare(id(&a), id(&b))
		}
		if desc {
			return -c
		}
		return c
	})

	total := len(items)
	n := req.Normalize()
	start := max(0, min(n.Offset(), total))
	end := min(start+n.PageSize, total)

	return items[start:end], total
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func byTime(a, b time.Time) int {
	return a.Compare(b)
}
