// Package inpsql provides data types and methods for PSQL storage operations.
package inpsql

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"sync"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	_ "github.com/jackc/pgx/v4/stdlib"

	"github.com/danilovkiri/dk_go_letterfeed/internal/config"
	"github.com/danilovkiri/dk_go_letterfeed/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_letterfeed/internal/storage/errors"
)

// Check interface implementation explicitly
var (
	_ storage.KVStorage = (*Storage)(nil)
)

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	mu  sync.Mutex
	Cfg *config.StorageConfig
	DB  *sql.DB
}

// InitStorage initializes a Storage object, sets its attributes and starts a
// goroutine listening for ctx cancellation followed by DB closure.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.StorageConfig) (*Storage, error) {
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	st := Storage{
		Cfg: cfg,
		DB:  db,
	}
	err = st.createTable(ctx)
	if err != nil {
		log.Fatal(err)
	}
	go func() {
		defer wg.Done()
		<-ctx.Done()
		err := st.DB.Close()
		if err != nil {
			log.Fatal(err)
		}
		log.Println("PSQL DB connection closed successfully")
	}()
	return &st, nil
}

// Get returns a value based on the given key.
func (s *Storage) Get(ctx context.Context, key string) (value []byte, err error) {
	selectStmt, err := s.DB.PrepareContext(ctx, "SELECT value FROM kv_pairs WHERE key = $1")
	if err != nil {
		return nil, &storageErrors.StatementPSQLError{Err: err, Msg: "SELECT statement"}
	}
	defer selectStmt.Close()

	// create channels for listening to the go routine result
	getDone := make(chan []byte)
	getError := make(chan error)
	go func() {
		var value []byte
		err := selectStmt.QueryRowContext(ctx, key).Scan(&value)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				getError <- &storageErrors.NotFoundError{Err: err, Key: key}
				return
			}
			getError <- wrapPgError(err, "SELECT query")
			return
		}
		getDone <- value
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
	upsertStmt, err := s.DB.PrepareContext(ctx, "INSERT INTO kv_pairs (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = excluded.value")
	if err != nil {
		return &storageErrors.StatementPSQLError{Err: err, Msg: "UPSERT statement"}
	}
	defer upsertStmt.Close()

	// create channels for listening to the go routine result
	putDone := make(chan bool)
	putError := make(chan error)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		_, err := upsertStmt.ExecContext(ctx, key, value)
		if err != nil {
			putError <- wrapPgError(err, "UPSERT query")
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

// Delete removes a key and its value, absent keys are removed trivially.
func (s *Storage) Delete(ctx context.Context, key string) error {
	deleteStmt, err := s.DB.PrepareContext(ctx, "DELETE FROM kv_pairs WHERE key = $1")
	if err != nil {
		return &storageErrors.StatementPSQLError{Err: err, Msg: "DELETE statement"}
	}
	defer deleteStmt.Close()

	// create channels for listening to the go routine result
	deleteDone := make(chan bool)
	deleteError := make(chan error)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		_, err := deleteStmt.ExecContext(ctx, key)
		if err != nil {
			deleteError <- wrapPgError(err, "DELETE query")
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

// PingDB verifies the PSQL DB connection.
func (s *Storage) PingDB() error {
	return s.DB.Ping()
}

// CloseDB closes the PSQL DB connection.
func (s *Storage) CloseDB() error {
	return s.DB.Close()
}

// createTable creates a table for PSQL DB storage if not exist.
func (s *Storage) createTable(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS kv_pairs (
		key text not null unique,
		value bytea not null
	);`
	_, err := s.DB.ExecContext(ctx, query)
	return err
}

// wrapPgError classifies PSQL execution errors using pgerrcode where a PgError is available.
func wrapPgError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgerrcode.IsSyntaxErrororAccessRuleViolation(pgErr.Code) || pgerrcode.IsDataException(pgErr.Code) {
			return &storageErrors.StatementPSQLError{Err: err, Msg: msg + " " + pgErr.Code}
		}
	}
	return &storageErrors.StatementPSQLError{Err: err, Msg: msg}
}
