package database

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
)

type Engine string

const (
	EnginePebble Engine = "pebble"
	EngineMapDB  Engine = "mapdb"
)

var ErrUnknownEngine = ierrors.New("unknown db engine")

// DB represents a database abstraction.
type DB interface {
	// NewStore creates a new KVStore backed by the database.
	NewStore() kvstore.KVStore
	// Close closes a DB.
	Close() error
}

// NewDB returns a new DB object. The mapdb engine keeps everything in memory and
// ignores dirname.
func NewDB(engine Engine, dirname string) (DB, error) {
	switch engine {
	case EnginePebble:
		return NewPebbleDB(dirname)
	case EngineMapDB:
		return NewMapDB(), nil
	default:
		return nil, ierrors.Wrapf(ErrUnknownEngine, "%q", engine)
	}
}
