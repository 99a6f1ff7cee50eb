// Package infile provides data types and methods for local file storage operations.
package infile

import (
	"bufio"
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/danilovkiri/dk_go_letterfeed/internal/config"
	"github.com/danilovkiri/dk_go_letterfeed/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_letterfeed/internal/storage/errors"
	"github.com/danilovkiri/dk_go_letterfeed/internal/storage/modelstorage"
)

// Check interface implementation explicitly
var (
	_ storage.KVStorage = (*Storage)(nil)
)

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	mu      sync.Mutex
	Cfg     *config.StorageConfig
	DB      map[string][]byte
	Encoder *json.Encoder
}

// InitStorage initializes a Storage object, sets its attributes and starts a
// goroutine listening for ctx cancellation followed by file storage closure.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.StorageConfig) (*Storage, error) {
	db := make(map[string][]byte)
	st := Storage{
		Cfg: cfg,
		DB:  db,
	}
	err := st.restore()
	if err != nil {
		log.Fatal(err)
	}
	// open file outside goroutine since this operation might not finish prior to encoding operations
	file, err := os.OpenFile(st.Cfg.FileStoragePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0777)
	if err != nil {
		log.Fatal(err)
	}
	// set an encoder
	st.Encoder = json.NewEncoder(file)
	// use sync.WaitGroup to prevent goroutine premature termination when main exits
	go func() {
		defer wg.Done()
		<-ctx.Done()
		err := file.Close()
		if err != nil {
			log.Fatal(err)
		}
		log.Println("File storage closed successfully")
	}()
	return &st, nil
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
	putError := make(chan error)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		valueCopy := make([]byte, len(value))
		copy(valueCopy, value)
		s.DB[key] = valueCopy
		err := s.addToFileDB(key, valueCopy)
		if err != nil {
			putError <- &storageErrors.FileWriteError{Err: err}
			return
		}
		putDone <- true
	}()

	// wait for the first channel to retrieve a value
	select {
	case <-ctx.Done():
		log.Println("Putting key:", ctx.Err())
		return &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case putErr := <-putError:
		log.Println("Putting key:", putErr.Error())
		return putErr
	case <-putDone:
		return nil
	}
}

// Delete removes a key and appends a tombstone entry to the file storage log.
func (s *Storage) Delete(ctx context.Context, key string) error {
	// create channels for listening to the go routine result
	deleteDone := make(chan bool)
	deleteError := make(chan error)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.DB, key)
		err := s.addToFileDB(key, nil)
		if err != nil {
			deleteError <- &storageErrors.FileWriteError{Err: err}
			return
		}
		deleteDone <- true
	}()

	// wait for the first channel to retrieve a value
	select {
	case <-ctx.Done():
		log.Println("Deleting key:", ctx.Err())
		return &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case deleteErr := <-deleteError:
		log.Println("Deleting key:", deleteErr.Error())
		return deleteErr
	case <-deleteDone:
		return nil
	}
}

// restore fills the tmpfs DB with key-value entries from file storage, replaying
// overwrites and tombstones in log order.
func (s *Storage) restore() error {
	file, err := os.OpenFile(s.Cfg.FileStoragePath, os.O_RDONLY|os.O_CREATE, 0777)
	if err != nil {
		return err
	}
	defer file.Close()
	reader := bufio.NewScanner(file)
	for reader.Scan() {
		var storageEntry modelstorage.KVStorageEntry
		err := json.Unmarshal(reader.Bytes(), &storageEntry)
		if err != nil {
			return err
		}
		if storageEntry.Value == nil {
			delete(s.DB, storageEntry.Key)
			continue
		}
		s.DB[storageEntry.Key] = storageEntry.Value
	}
	log.Print("DB was restored")
	return nil
}

// addToFileDB adds one key-value pair to a file DB.
func (s *Storage) addToFileDB(key string, value []byte) error {
	rowToEncode := modelstorage.KVStorageEntry{
		Key:   key,
		Value: value,
	}
	err := s.Encoder.Encode(rowToEncode)
	if err != nil {
		return err
	}
	return nil
}

// PingDB is a mock for PSQL DB pinger for infile DB handling.
func (s *Storage) PingDB() error {
	return nil
}

// CloseDB is a mock for PSQL DB closer for infile DB handling.
func (s *Storage) CloseDB() error {
	return nil
}
