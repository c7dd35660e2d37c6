// Package kv is the durable key-value substrate the configuration is
// persisted to. Values are opaque bytes; a Batch is applied atomically.
package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Apply writes every operation of b or none of them.
	Apply(ctx context.Context, b *Batch) error
	Ping(ctx context.Context) error
}

type op struct {
	key   string
	value []byte
	del   bool
}

// Batch collects puts and deletes. Later operations on the same key win.
type Batch struct {
	ops []op
}

func (b *Batch) Put(key string, value []byte) {
	b.ops = append(b.ops, op{key: key, value: value})
}

func (b *Batch) Delete(key string) {
	b.ops = append(b.ops, op{key: key, del: true})
}

func (b *Batch) Len() int { return len(b.ops) }
