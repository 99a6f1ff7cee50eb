package infile

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilovkiri/dk_go_letterfeed/internal/config"
	storageErrors "github.com/danilovkiri/dk_go_letterfeed/internal/storage/errors"
)

func newTestStorage(t *testing.T, path string) (*Storage, context.CancelFunc, *sync.WaitGroup) {
	t.Helper()
	cfg := &config.StorageConfig{FileStoragePath: path}
	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	kvStorage, err := InitStorage(ctx, wg, cfg)
	require.NoError(t, err)
	return kvStorage, cancel, wg
}

func TestPutGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv_storage.json")
	kvStorage, cancel, wg := newTestStorage(t, path)
	ctx := context.Background()

	assert.NoError(t, kvStorage.Put(ctx, "feed:somefeed01", []byte(`{"id":"somefeed01"}`)))
	value, err := kvStorage.Get(ctx, "feed:somefeed01")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"somefeed01"}`), value)

	assert.NoError(t, kvStorage.Delete(ctx, "feed:somefeed01"))
	var notFoundError *storageErrors.NotFoundError
	_, err = kvStorage.Get(ctx, "feed:somefeed01")
	assert.ErrorAs(t, err, &notFoundError)

	cancel()
	wg.Wait()
}

func TestRestoreReplaysLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv_storage.json")
	first, cancel, wg := newTestStorage(t, path)
	ctx := context.Background()
	require.NoError(t, first.Put(ctx, "keep", []byte("kept value")))
	require.NoError(t, first.Put(ctx, "overwrite", []byte("old value")))
	require.NoError(t, first.Put(ctx, "overwrite", []byte("new value")))
	require.NoError(t, first.Put(ctx, "drop", []byte("doomed value")))
	require.NoError(t, first.Delete(ctx, "drop"))
	cancel()
	wg.Wait()

	// a fresh storage over the same file replays puts, overwrites and tombstones
	second, cancel, wg := newTestStorage(t, path)
	defer func() {
		cancel()
		wg.Wait()
	}()
	value, err := second.Get(ctx, "keep")
	assert.NoError(t, err)
	assert.Equal(t, []byte("kept value"), value)
	value, err = second.Get(ctx, "overwrite")
	assert.NoError(t, err)
	assert.Equal(t, []byte("new value"), value)
	var notFoundError *storageErrors.NotFoundError
	_, err = second.Get(ctx, "drop")
	assert.ErrorAs(t, err, &notFoundError)
}

func TestPingAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv_storage.json")
	kvStorage, cancel, wg := newTestStorage(t, path)
	assert.NoError(t, kvStorage.PingDB())
	assert.NoError(t, kvStorage.CloseDB())
	cancel()
	wg.Wait()
}
