package token

import "context"

// Store persists the single connection record.
// Load returns (nil, nil) when nothing has been stored yet.
type Store interface {
	Load(ctx context.Context) (*Record, error)
	Save(ctx context.Context, record Record) error
	Delete(ctx context.Context) error
}
