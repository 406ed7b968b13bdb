package database

import (
	"github.com/cockroachdb/pebble"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	hivepebble "github.com/iotaledger/hive.go/kvstore/pebble"
)

type PebbleDB struct {
	*pebble.DB
}

var _ DB = &PebbleDB{}

func NewPebbleDB(dirname string) (*PebbleDB, error) {
	db, err := hivepebble.CreateDB(dirname)
	if err != nil {
		return nil, ierrors.Wrapf(err, "failed to open pebble database in %s", dirname)
	}

	return &PebbleDB{DB: db}, nil
}

func (db *PebbleDB) NewStore() kvstore.KVStore {
	return hivepebble.New(db.DB)
}

// Close closes a DB. It's crucial to call it to ensure all the pending updates make their way to disk.
func (db *PebbleDB) Close() error {
	return db.DB.Close()
}
