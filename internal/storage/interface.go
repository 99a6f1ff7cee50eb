// Package storage provides interfaces for types to be in compliance with.
package storage

import (
	"context"
)

// KVSetter defines a set of methods for types implementing KVSetter.
type KVSetter interface {
	Put(ctx context.Context, key string, value []byte) error
}

// KVGetter defines a set of methods for types implementing KVGetter.
type KVGetter interface {
	Get(ctx context.Context, key string) (value []byte, err error)
}

// KVDeleter defines a set of methods for types implementing KVDeleter.
type KVDeleter interface {
	Delete(ctx context.Context, key string) error
}

// Pinger defines a set of methods for types implementing Pinger.
type Pinger interface {
	PingDB() error
}

// Closer defines a set of methods for types implementing Closer.
type Closer interface {
	CloseDB() error
}

// KVStorage defines a set of embedded interfaces for types implementing KVStorage.
type KVStorage interface {
	KVSetter
	KVGetter
	KVDeleter
	Pinger
	Closer
}
