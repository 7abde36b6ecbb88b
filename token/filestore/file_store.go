// Package filestore persists the ledger connection record as a single JSON file.
package filestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/pos-ledger-sync/token"
	"github.com/pkg/errors"
)

var _ token.Store = (*Store)(nil)

type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load(_ context.Context) (*token.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "filestore.Load ReadFile")
	}

	var record token.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrap(err, "filestore.Load Unmarshal")
	}
	return &record, nil
}

// Save overwrites the file atomically: the record is written to a temp file and renamed into place.
func (s *Store) Save(_ context.Context, record token.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "filestore.Save Marshal")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "filestore.Save MkdirAll")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "filestore.Save CreateTemp")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "filestore.Save Write")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "filestore.Save Close")
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return errors.Wrap(err, "filestore.Save Chmod")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path), "filestore.Save Rename")
}

func (s *Store) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "filestore.Delete Remove")
	}
	return nil
}
