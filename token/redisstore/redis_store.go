// Package redisstore keeps the ledger connection record in Redis so several instances can share it.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/jrsteele09/pos-ledger-sync/token"
	"github.com/pkg/errors"
)

var _ token.Store = (*Store)(nil)

type Store struct {
	client redis.UniversalClient
	prefix string
}

func New(client redis.UniversalClient, prefix string) *Store {
	return &Store{
		client: client,
		prefix: prefix,
	}
}

func (s *Store) key() string {
	return fmt.Sprintf("%s:xero:token", s.prefix)
}

func (s *Store) Load(ctx context.Context) (*token.Record, error) {
	data, err := s.client.Get(ctx, s.key()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, errors.Wrap(err, "redisstore.Load Get")
	}

	var record token.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrap(err, "redisstore.Load Unmarshal")
	}
	return &record, nil
}

// Save stores the record without a TTL; the refresh token outlives the access token.
func (s *Store) Save(ctx context.Context, record token.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "redisstore.Save Marshal")
	}
	return errors.Wrap(s.client.Set(ctx, s.key(), data, 0).Err(), "redisstore.Save Set")
}

func (s *Store) Delete(ctx context.Context) error {
	return errors.Wrap(s.client.Del(ctx, s.key()).Err(), "redisstore.Delete Del")
}
