package database

import (
	"os"
	"sync"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/log"
)

// Realms of the node database.
var (
	RealmBatches      = kvstore.Realm("batches")
	RealmProducts     = kvstore.Realm("products")
	RealmBoxes        = kvstore.Realm("boxes")
	RealmActivity     = kvstore.Realm("activity")
	RealmTransactions = kvstore.Realm("transactions")
	RealmUsers        = kvstore.Realm("users")
	RealmEmails       = kvstore.Realm("emails")
)

// Manager owns the node database and hands out realm scoped stores.
type Manager struct {
	log    log.Logger
	engine Engine
	db     DB
	store  kvstore.KVStore

	mutex  sync.Mutex
	closed bool
}

func NewManager(log log.Logger, engine Engine, path string) (*Manager, error) {
	if engine == EnginePebble {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.LogInfof("creating new database in %s", path)
			if err := os.MkdirAll(path, 0o700); err != nil {
				return nil, ierrors.Wrapf(err, "failed to create database dir %s", path)
			}
		} else {
			log.LogInfof("using existing database in %s", path)
		}
	}

	db, err := NewDB(engine, path)
	if err != nil {
		return nil, err
	}

	return &Manager{
		log:    log,
		engine: engine,
		db:     db,
		store:  db.NewStore(),
	}, nil
}

func (m *Manager) Engine() Engine {
	return m.engine
}

// Store returns a store scoped to realm.
func (m *Manager) Store(realm kvstore.Realm) (kvstore.KVStore, error) {
	store, err := m.store.WithRealm(realm)
	if err != nil {
		return nil, ierrors.Wrapf(err, "failed to open realm %s", realm)
	}

	return store, nil
}

// Close flushes pending writes and closes the database. Subsequent calls are no-ops.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	if err := m.store.Flush(); err != nil {
		m.log.LogWarnf("failed to flush database: %s", err)
	}

	return m.db.Close()
}
