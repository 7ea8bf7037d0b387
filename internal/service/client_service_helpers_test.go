package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/events"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/store"
)

// tasksTable is the application table the engine tests sync into.
const tasksTable = `CREATE TABLE tasks (
	id       TEXT PRIMARY KEY,
	title    TEXT NOT NULL,
	done     INTEGER NOT NULL DEFAULT 0,
	priority INTEGER,
	tags     TEXT
)`

// newTestStorages opens a migrated SQLite database in a temp dir with the
// tasks table created.
func newTestStorages(t *testing.T) *store.ClientStorages {
	t.Helper()
	ctx := context.Background()

	storages, err := store.NewClientStorages(ctx, config.ClientStorage{
		DB: config.ClientDB{
			Driver: config.DriverSQLite,
			DSN:    filepath.Join(t.TempDir(), "sync.db"),
		},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	_, err = storages.LocalStore.ExecContext(ctx, tasksTable)
	require.NoError(t, err)

	return storages
}

// testSyncConfig keeps the debounce timer out of the way so tests drive
// every flush explicitly.
func testSyncConfig() config.ClientSync {
	return config.ClientSync{
		BatchSize:       50,
		BatchDebounce:   time.Hour,
		AckTimeout:      time.Minute,
		PersistDebounce: 10 * time.Millisecond,
		MaxApplyRetries: 2,
		ApplyRetryDelay: time.Millisecond,
		EntityIDField:   "id",
	}
}

func receiveEvent(t *testing.T, sub *events.Subscription) events.Event {
	t.Helper()
	select {
	case ev := <-sub.C:
		return ev
	case <-time.After(2 * time.Second):
		require.FailNow(t, "no event received")
		return events.Event{}
	}
}
