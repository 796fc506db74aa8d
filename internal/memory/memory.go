// Package memory provides a mutex-guarded in-memory ledger store. It backs
// the memory data backend and the tests of the layers above the store port.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"cartao/internal/core"
	"cartao/internal/ledger"
)

type Store struct {
	mu         sync.Mutex
	cards      map[int64]core.Card
	records    map[int64]core.Record
	nextCard   int64
	nextRecord int64
}

func New() *Store {
	return &Store{
		cards:   make(map[int64]core.Card),
		records: make(map[int64]core.Record),
	}
}

func (s *Store) AddCard(_ context.Context, c core.Card) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCard++
	c.ID = s.nextCard
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.cards[c.ID] = c
	return c.ID, nil
}

func (s *Store) GetCard(_ context.Context, id int64) (core.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok {
		return core.Card{}, ledger.ErrNotFound
	}
	return c, nil
}

func (s *Store) ListCards(_ context.Context) ([]core.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Card, 0, len(s.cards))
	for _, c := range s.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateCard(_ context.Context, c core.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.cards[c.ID]
	if !ok {
		return ledger.ErrNotFound
	}
	stored.Name = c.Name
	stored.DueDay = c.DueDay
	stored.UpdatedAt = time.Now()
	s.cards[c.ID] = stored
	return nil
}

func (s *Store) DeleteCard(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[id]; !ok {
		return ledger.ErrNotFound
	}
	delete(s.cards, id)
	return nil
}

func (s *Store) AddRecord(_ context.Context, r core.Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRecord++
	r.ID = s.nextRecord
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.UpdatedAt = r.CreatedAt
	s.records[r.ID] = r
	return r.ID, nil
}

func (s *Store) GetRecord(_ context.Context, id int64) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return core.Record{}, ledger.ErrNotFound
	}
	return r, nil
}

func (s *Store) ListRecords(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedRecordsLocked(), nil
}

func (s *Store) UpdateRecord(_ context.Context, r core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[r.ID]; !ok {
		return ledger.ErrNotFound
	}
	r.UpdatedAt = time.Now()
	s.records[r.ID] = r
	return nil
}

func (s *Store) DeleteRecord(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return ledger.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// DeleteRecordsByParent removes the whole purchase group under one lock, so
// callers never observe a half-deleted group.
func (s *Store) DeleteRecordsByParent(_ context.Context, parentID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for id, r := range s.records {
		if r.ParentID == parentID {
			delete(s.records, id)
			count++
		}
	}
	return count, nil
}

func (s *Store) FilterRecords(_ context.Context, f core.Filter) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.FilterRecords(s.sortedRecordsLocked(), f), nil
}

func (s *Store) sortedRecordsLocked() []core.Record {
	out := make([]core.Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
