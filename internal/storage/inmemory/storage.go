// Package inmemory provides functionality for storing key-value pairs in a local
// storage implemented as a map.
package inmemory

import (
	"context"
	"log"
	"sync"

	"github.com/danilovkiri/dk_go_letterfeed/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_letterfeed/internal/storage/errors"
)

// Check interface implementation explicitly
var (
	_ storage.KVStorage = (*Storage)(nil)
)

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	mu sync.Mutex
	DB map[string][]byte
}

// InitStorage initializes a Storage object and sets its attributes.
func InitStorage() *Storage {
	db := make(map[string][]byte)
	return &Storage{DB: db}
}

// Get returns a value based on the given key.
func (s *Storage) Get(ctx context.Context, key string) (value []byte, err error) {
	// create channels for listening to the go routine result
	getDone := make(chan []byte)
	getError := make(chan error)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		entry, ok := s.DB[key]
		if !ok {
			getError <- &storageErrors.NotFoundError{Err: nil, Key: key}
			return
		}
		valueCopy := make([]byte, len(entry))
		copy(valueCopy, entry)
		getDone <- valueCopy
	}()

	// wait for the first channel to retrieve a value
	select {
	case <-ctx.Done():
		log.Println("Getting key:", ctx.Err())
		return nil, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case getErr := <-getError:
		return nil, getErr
	case value := <-getDone:
		return value, nil
	}
}

// Put stores a value under the given key overwriting any previous value (last-write-wins).
func (s *Storage) Put(ctx context.Context, key string, value []byte) error {
	// create channels for listening to the go routine result
	putDone := make(chan bool)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		valueCopy := make([]byte, len(value))
		copy(valueCopy, value)
		s.DB[key] = valueCopy
		putDone <- true
	}()

	// wait for the first channel to retrieve a value
	select {
	case <-ctx.Done():
		log.Println("Putting key:", ctx.Err())
		return &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case <-putDone:
		return nil
	}
}

// Delete removes a key and its value, absent keys are removed trivially.
func (s *Storage) Delete(ctx context.Context, key string) error {
	// create channels for listening to the go routine result
	deleteDone := make(chan bool)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.DB, key)
		deleteDone <- true
	}()

	// wait for the first channel to retrieve a value
	select {
	case <-ctx.Done():
		log.Println("Deleting key:", ctx.Err())
		return &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case <-deleteDone:
		return nil
	}
}

// PingDB is a mock for PSQL DB pinger for inmemory DB handling.
func (s *Storage) PingDB() error {
	return nil
}

// CloseDB is a mock for PSQL DB closer for inmemory DB handling.
func (s *Storage) CloseDB() error {
	return nil
}
