package tokenfakerepo

import (
	"context"
	"sync"

	"github.com/jrsteele09/pos-ledger-sync/token"
)

var _ token.Store = (*FakeTokenStore)(nil)

// FakeTokenStore keeps the record in memory and counts writes.
type FakeTokenStore struct {
	record *token.Record
	saves  int
	lock   sync.RWMutex
}

func NewFakeTokenStore(initial *token.Record) *FakeTokenStore {
	s := &FakeTokenStore{}
	if initial != nil {
		r := *initial
		s.record = &r
	}
	return s
}

func (s *FakeTokenStore) Load(_ context.Context) (*token.Record, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.record == nil {
		return nil, nil
	}
	r := *s.record
	return &r, nil
}

func (s *FakeTokenStore) Save(_ context.Context, record token.Record) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.record = &record
	s.saves++
	return nil
}

func (s *FakeTokenStore) Delete(_ context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.record = nil
	return nil
}

// Saves returns how many times Save has been called.
func (s *FakeTokenStore) Saves() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.saves
}
