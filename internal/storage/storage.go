package storage

import (
	"context"
	"errors"
)

var (
	ErrSlotNotFound = errors.New("storage slot not found")
)

// Store persists whole JSON documents under fixed slot keys. The catalog
// writes each collection as one document per slot; implementations only need
// durable last-write-wins semantics.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
